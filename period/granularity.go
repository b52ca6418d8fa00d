// Package period splits a timestamped amplitude sample into disjoint
// calendar-period partitions (daily through annual) with derived,
// locale-agnostic labels, so the mass-index estimation can be repeated
// independently per period.
package period

import (
	"fmt"
	"strings"

	"github.com/meteorscan/massindex/errs"
)

// Granularity selects the calendar window used to partition a sample.
type Granularity uint8

const (
	// None disables partitioning; the whole sample is analyzed at once.
	None Granularity = iota
	// Annual treats the whole sample as a single period.
	Annual
	// Semiannual groups by half-year (months 1-6 / 7-12).
	Semiannual
	// FourMonthly groups by third-of-year (jan-apr / may-aug / sep-dec).
	FourMonthly
	// Quarterly groups by calendar quarter.
	Quarterly
	// Bimonthly groups by month pair (jan-feb, mar-apr, ...).
	Bimonthly
	// Monthly groups by calendar month.
	Monthly
	// Weekly groups by ISO week number.
	Weekly
	// Daily groups by calendar date.
	Daily
)

var granularityNames = map[Granularity]string{
	None:        "none",
	Annual:      "annual",
	Semiannual:  "semiannual",
	FourMonthly: "four-monthly",
	Quarterly:   "quarterly",
	Bimonthly:   "bimonthly",
	Monthly:     "monthly",
	Weekly:      "weekly",
	Daily:       "daily",
}

// String returns the canonical name of the granularity.
func (g Granularity) String() string {
	if name, ok := granularityNames[g]; ok {
		return name
	}

	return "unknown"
}

// Valid reports whether g is one of the defined granularities.
func (g Granularity) Valid() bool {
	_, ok := granularityNames[g]

	return ok
}

// Parse maps a canonical granularity name (case-insensitive) to its value.
//
// Returns errs.ErrInvalidGranularity for unrecognized names.
func Parse(name string) (Granularity, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for g, n := range granularityNames {
		if n == want {
			return g, nil
		}
	}

	return None, fmt.Errorf("%w: %q", errs.ErrInvalidGranularity, name)
}
