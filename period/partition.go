package period

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/meteorscan/massindex/sample"
)

// WholeSampleLabel is the sentinel period label used when no partitioning is
// applied: unpartitioned runs, annual granularity, and the fallback for
// samples without usable timestamps.
const WholeSampleLabel = "whole_sample"

// Partition is a named calendar subset of a sample. Partitions produced by
// Split are pairwise disjoint and their union is the input sample.
type Partition struct {
	// Label is the derived, locale-agnostic period label, e.g. "01_january",
	// "02_08jan-14jan", "009_09jan" or "1_jan-mar".
	Label string
	// Sample holds the measurements whose timestamps fall in the period.
	Sample *sample.Sample
}

// monthAbbrs are the lowercase three-letter month tags used in derived
// labels.
var monthAbbrs = [12]string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// Split partitions a sample by the requested granularity.
//
// Granularities None and Annual yield a single whole-sample partition. A
// sample without timestamps also yields a single whole-sample partition, and
// the second return value reports that temporal partitioning was unavailable
// rather than raising an error.
//
// Partitions are returned in ascending calendar order. Periods with no
// detections are absent from the result entirely.
func Split(s *sample.Sample, g Granularity) ([]Partition, bool) {
	if g == None || g == Annual {
		return []Partition{{Label: WholeSampleLabel, Sample: s}}, false
	}
	if !s.HasTimestamps() || s.Len() == 0 {
		return []Partition{{Label: WholeSampleLabel, Sample: s}}, true
	}

	values := s.Values()
	times := s.Timestamps()

	groups := make(map[int][]int)
	for i, ts := range times {
		key := groupKey(g, ts)
		groups[key] = append(groups[key], i)
	}

	keys := make([]int, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	parts := make([]Partition, 0, len(keys))
	for _, key := range keys {
		indices := groups[key]

		subValues := make([]float64, len(indices))
		subTimes := make([]time.Time, len(indices))
		for j, idx := range indices {
			subValues[j] = values[idx]
			subTimes[j] = times[idx]
		}

		// Lengths are equal by construction, so the constructor cannot fail.
		sub, _ := sample.NewTimestamped(subValues, subTimes)
		parts = append(parts, Partition{
			Label:  label(g, key, subTimes),
			Sample: sub,
		})
	}

	return parts, false
}

// groupKey derives the grouping key for one timestamp. Keys for month-block
// granularities and weeks are within-year calendar indices; daily keys embed
// the year so distinct dates never merge.
func groupKey(g Granularity, ts time.Time) int {
	month := int(ts.Month())

	switch g {
	case Semiannual:
		return (month - 1) / 6
	case FourMonthly:
		return (month - 1) / 4
	case Quarterly:
		return (month - 1) / 3
	case Bimonthly:
		return (month - 1) / 2
	case Monthly:
		return month
	case Weekly:
		_, week := ts.ISOWeek()
		return week
	case Daily:
		return ts.Year()*1000 + ts.YearDay()
	default:
		return 0
	}
}

// label renders the period label for a group. Date-range labels (weekly,
// daily) derive from the actual timestamps observed in the group, not from
// theoretical calendar boundaries.
func label(g Granularity, key int, times []time.Time) string {
	switch g {
	case Semiannual:
		return monthBlockLabel(key, 6)
	case FourMonthly:
		return monthBlockLabel(key, 4)
	case Quarterly:
		return monthBlockLabel(key, 3)
	case Bimonthly:
		return monthBlockLabel(key, 2)
	case Monthly:
		return fmt.Sprintf("%02d_%s", key, strings.ToLower(time.Month(key).String()))
	case Weekly:
		first, last := timeRange(times)
		return fmt.Sprintf("%02d_%s-%s", key, dayTag(first), dayTag(last))
	case Daily:
		first, _ := timeRange(times)
		return fmt.Sprintf("%03d_%s", first.YearDay(), dayTag(first))
	default:
		return WholeSampleLabel
	}
}

// monthBlockLabel renders labels like "1_jan-mar" for a block of span months
// starting at block index key (0-based).
func monthBlockLabel(key, span int) string {
	first := key * span
	last := first + span - 1

	return fmt.Sprintf("%d_%s-%s", key+1, monthAbbrs[first], monthAbbrs[last])
}

// dayTag renders a date as "09jan".
func dayTag(ts time.Time) string {
	return fmt.Sprintf("%02d%s", ts.Day(), monthAbbrs[ts.Month()-1])
}

// timeRange returns the earliest and latest timestamps in a non-empty group.
func timeRange(times []time.Time) (first, last time.Time) {
	first, last = times[0], times[0]
	for _, ts := range times[1:] {
		if ts.Before(first) {
			first = ts
		}
		if ts.After(last) {
			last = ts
		}
	}

	return first, last
}
