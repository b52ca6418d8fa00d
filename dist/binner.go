package dist

import (
	"fmt"
	"math"
	"sort"

	"github.com/meteorscan/massindex/errs"
)

// DefaultBinCount is the default number of logarithmic bins.
const DefaultBinCount = 50

// Binner aggregates raw events into bins uniformly spaced in log-amplitude
// space, reducing a distribution of N raw points to at most binCount
// regression points.
type Binner struct {
	binCount int
}

// NewBinner creates a Binner with the given number of bins.
//
// Returns errs.ErrInvalidBinCount for counts below 1.
func NewBinner(binCount int) (*Binner, error) {
	if binCount < 1 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidBinCount, binCount)
	}

	return &Binner{binCount: binCount}, nil
}

// BinCount returns the configured number of bins.
func (b *Binner) BinCount() int {
	return b.binCount
}

// Rebin re-expresses an unbinned cumulative distribution over logarithmic
// amplitude bins.
//
// Bin edges are binCount+1 values logarithmically spaced between the minimum
// and maximum amplitude. Each bin is half-open [edge_i, edge_i+1) except the
// highest, which is closed so the maximum amplitude is never dropped. A
// retained bin is represented by the arithmetic mean of the amplitudes it
// contains and by the running sum of bin occupancies accumulated from the
// highest-amplitude bin downward; empty bins contribute no point.
//
// Returns errs.ErrDegenerateBins when the distribution spans a single
// amplitude value, since distinct edges cannot be constructed. The caller
// decides whether to fall back to the unbinned distribution.
func (b *Binner) Rebin(d Distribution) (Distribution, error) {
	n := d.Len()
	if n == 0 {
		return Distribution{}, nil
	}

	// Amplitudes are descending, so min/max sit at the ends.
	maxAmp := d.Amplitudes[0]
	minAmp := d.Amplitudes[n-1]
	if minAmp == maxAmp {
		return Distribution{}, fmt.Errorf("%w: %g", errs.ErrDegenerateBins, minAmp)
	}

	edges := logEdges(minAmp, maxAmp, b.binCount)

	sums := make([]float64, b.binCount)
	occupancy := make([]int, b.binCount)
	for _, v := range d.Amplitudes {
		i := binIndex(edges, v)
		sums[i] += v
		occupancy[i]++
	}

	out := Distribution{
		Amplitudes: make([]float64, 0, b.binCount),
		Counts:     make([]float64, 0, b.binCount),
	}

	// Accumulate from the highest-amplitude bin downward, mirroring the
	// unbinned cumulative semantics: the count at a bin is the number of
	// events at or above it.
	cumulative := 0
	for i := b.binCount - 1; i >= 0; i-- {
		if occupancy[i] == 0 {
			continue
		}
		cumulative += occupancy[i]
		out.Amplitudes = append(out.Amplitudes, sums[i]/float64(occupancy[i]))
		out.Counts = append(out.Counts, float64(cumulative))
	}

	return out, nil
}

// logEdges returns binCount+1 edges logarithmically spaced over
// [minAmp, maxAmp]. The first and last edges are pinned to the exact extrema
// so no value can fall outside the grid through rounding.
func logEdges(minAmp, maxAmp float64, binCount int) []float64 {
	logMin := math.Log10(minAmp)
	logMax := math.Log10(maxAmp)

	edges := make([]float64, binCount+1)
	edges[0] = minAmp
	edges[binCount] = maxAmp
	for i := 1; i < binCount; i++ {
		frac := float64(i) / float64(binCount)
		edges[i] = math.Pow(10, logMin+(logMax-logMin)*frac)
	}

	return edges
}

// binIndex locates the bin containing v on an ascending edge grid, treating
// every bin as [edge_i, edge_i+1) except the last, which includes its upper
// edge.
func binIndex(edges []float64, v float64) int {
	lastBin := len(edges) - 2

	// First edge >= v.
	i := sort.SearchFloat64s(edges, v)
	switch {
	case i >= len(edges)-1:
		return lastBin
	case edges[i] == v:
		// v sits on a left edge and belongs to the bin it opens.
		return min(i, lastBin)
	case i == 0:
		return 0
	default:
		return i - 1
	}
}
