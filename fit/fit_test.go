package fit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meteorscan/massindex/dist"
	"github.com/meteorscan/massindex/errs"
)

// TestPowerLaw_GoldenValues pins the estimator to reference values computed
// with an independent least-squares implementation for the 10-event sample
// {100, 50, 50, 25, 25, 25, 25, 12, 12, 6} with unbinned ranks 1..10.
func TestPowerLaw_GoldenValues(t *testing.T) {
	d := dist.Build([]float64{100, 50, 50, 25, 25, 25, 25, 12, 12, 6})

	s, err := PowerLaw(d.Amplitudes, d.Counts)
	require.NoError(t, err)

	require.InDelta(t, -0.833664122600447, s.Slope, 1e-9)
	require.InDelta(t, 1.81695478297946, s.Intercept, 1e-9)
	require.InDelta(t, -0.928233491871022, s.R, 1e-9)
	require.InDelta(t, 0.86161741543107, s.RSquared, 1e-9)
	require.InDelta(t, 1.06356526666076e-4, s.PValue, 1e-9)
	require.InDelta(t, 0.118121676628048, s.StdErr, 1e-9)
	require.Equal(t, 10, s.Points)
}

func TestPowerLaw_ExactPowerLaw(t *testing.T) {
	// N(>A) = 1000 * A^-1.5 sampled at a few amplitudes is exactly colinear
	// in log-log space: r² = 1, zero standard error, zero p-value, and no
	// division failure.
	amplitudes := []float64{1, 10, 100, 1000}
	counts := make([]float64, len(amplitudes))
	for i, a := range amplitudes {
		counts[i] = 1e6 * math.Pow(a, -1.5)
	}

	s, err := PowerLaw(amplitudes, counts)
	require.NoError(t, err)

	require.InDelta(t, -1.5, s.Slope, 1e-12)
	require.InDelta(t, 6.0, s.Intercept, 1e-12)
	require.InDelta(t, 1.0, s.RSquared, 1e-12)
	require.InDelta(t, 0.0, s.StdErr, 1e-12)
	require.InDelta(t, 0.0, s.PValue, 1e-9)
}

func TestPowerLaw_TwoPoints(t *testing.T) {
	s, err := PowerLaw([]float64{10, 100}, []float64{2, 1})
	require.NoError(t, err)

	require.Zero(t, s.StdErr, "two points leave no residual")
	require.Zero(t, s.PValue, "distinct points with df=0 have p = 0")

	// A horizontal pair has p = 1.
	s, err = PowerLaw([]float64{10, 100}, []float64{5, 5})
	require.NoError(t, err)
	require.Zero(t, s.Slope)
	require.Equal(t, 1.0, s.PValue)
	require.Zero(t, s.R, "horizontal line carries no correlation")
}

func TestPowerLaw_InsufficientPoints(t *testing.T) {
	_, err := PowerLaw([]float64{10}, []float64{1})
	require.ErrorIs(t, err, errs.ErrInsufficientData)

	_, err = PowerLaw(nil, nil)
	require.ErrorIs(t, err, errs.ErrInsufficientData)
}

func TestPowerLaw_DegenerateAmplitudes(t *testing.T) {
	// Constant amplitudes leave zero variance in x; the slope is undefined
	// and must fail explicitly rather than return NaN.
	counts := []float64{1, 2, 3, 4, 5}
	amplitudes := []float64{7, 7, 7, 7, 7}

	_, err := PowerLaw(amplitudes, counts)
	require.ErrorIs(t, err, errs.ErrDegenerateAmplitudes)
}

func TestPowerLaw_RejectsNonPositiveInputs(t *testing.T) {
	_, err := PowerLaw([]float64{10, 0}, []float64{1, 2})
	require.Error(t, err)

	_, err = PowerLaw([]float64{10, 20}, []float64{1, -2})
	require.Error(t, err)
}

func TestPowerLaw_LengthMismatch(t *testing.T) {
	_, err := PowerLaw([]float64{1, 2, 3}, []float64{1, 2})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}
