package dist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild_SortsDescendingWithRankCounts(t *testing.T) {
	d := Build([]float64{25, 100, 6, 50, 12})

	require.Equal(t, []float64{100, 50, 25, 12, 6}, d.Amplitudes)
	require.Equal(t, []float64{1, 2, 3, 4, 5}, d.Counts)
	require.Equal(t, 5, d.Len())
	require.Equal(t, 5.0, d.Total())
}

func TestBuild_Ties(t *testing.T) {
	// Tied amplitudes each keep their own rank; the last count is still the
	// total sample size.
	d := Build([]float64{50, 50, 50})

	require.Equal(t, []float64{50, 50, 50}, d.Amplitudes)
	require.Equal(t, []float64{1, 2, 3}, d.Counts)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	in := []float64{1, 3, 2}
	Build(in)
	require.Equal(t, []float64{1, 3, 2}, in)
}

func TestBuild_Empty(t *testing.T) {
	d := Build(nil)
	require.Zero(t, d.Len())
	require.Zero(t, d.Total())
}
