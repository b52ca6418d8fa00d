// Package dist builds the empirical cumulative size-frequency distribution
// N(>A) of an amplitude sample and optionally re-expresses it over
// logarithmically spaced amplitude bins to suppress small-sample noise in the
// tail before fitting.
package dist

import (
	"cmp"
	"slices"
)

// Distribution is a cumulative size-frequency distribution: amplitudes in
// strictly descending bin order with the cumulative event count at or above
// each amplitude.
//
// For an unbinned distribution the counts are the ranks 1..N; for a binned
// distribution they are the running sum of bin occupancies accumulated from
// the highest-amplitude bin downward. In both cases counts grow as amplitude
// falls and the final count equals the total sample size.
type Distribution struct {
	// Amplitudes holds the representative amplitude per point, descending.
	Amplitudes []float64
	// Counts holds the cumulative count N(>A) per point, parallel to
	// Amplitudes.
	Counts []float64
}

// Len returns the number of regression points in the distribution.
func (d Distribution) Len() int {
	return len(d.Amplitudes)
}

// Total returns the total event count covered by the distribution, i.e. the
// last (largest) cumulative count, or 0 for an empty distribution.
func (d Distribution) Total() float64 {
	if len(d.Counts) == 0 {
		return 0
	}

	return d.Counts[len(d.Counts)-1]
}

// Build constructs the empirical cumulative distribution of a filtered
// amplitude vector: values sorted descending, with the k-th largest amplitude
// assigned cumulative count k. The input slice is not modified.
//
// An empty input yields an empty distribution; Build performs no minimum-size
// policy of its own.
func Build(values []float64) Distribution {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	slices.SortFunc(sorted, func(a, b float64) int { return cmp.Compare(b, a) })

	counts := make([]float64, len(sorted))
	for i := range counts {
		counts[i] = float64(i + 1)
	}

	return Distribution{Amplitudes: sorted, Counts: counts}
}
