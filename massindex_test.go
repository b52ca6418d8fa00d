package massindex

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meteorscan/massindex/errs"
	"github.com/meteorscan/massindex/period"
	"github.com/meteorscan/massindex/sample"
)

// goldenAmplitudes is a reference sample whose unbinned log-log regression
// values were computed with an independent least-squares implementation.
var goldenAmplitudes = []float64{100, 50, 50, 25, 25, 25, 25, 12, 12, 6}

// powerLawValues synthesizes n amplitudes following N(>A) ∝ A^-(s-1) by
// inverting the cumulative distribution on a deterministic uniform grid.
func powerLawValues(n int, massIdx, minAmp float64) []float64 {
	exponent := -1.0 / (massIdx - 1)
	values := make([]float64, n)
	for i := range values {
		u := (float64(i) + 0.5) / float64(n)
		values[i] = minAmp * math.Pow(u, exponent)
	}

	return values
}

// ==============================================================================
// Whole-sample estimation
// ==============================================================================

func TestCompute_GoldenValues(t *testing.T) {
	result, err := Compute(goldenAmplitudes)
	require.NoError(t, err)

	require.InDelta(t, -0.833664122600447, result.Slope, 1e-9)
	require.InDelta(t, 1.81695478297946, result.Intercept, 1e-9)
	require.InDelta(t, -0.928233491871022, result.Correlation, 1e-9)
	require.InDelta(t, 0.86161741543107, result.RSquared, 1e-9)
	require.InDelta(t, 1.06356526666076e-4, result.PValue, 1e-9)
	require.InDelta(t, 0.118121676628048, result.StdErr, 1e-9)

	require.Equal(t, 10, result.SampleSize)
	require.Equal(t, 10, result.RegressionPoints)
	require.Equal(t, 6.0, result.AmplitudeMin)
	require.Equal(t, 100.0, result.AmplitudeMax)
	require.Equal(t, 33.0, result.AmplitudeMean)
	require.False(t, result.BinningApplied)
	require.False(t, result.BinningFellBack)
	require.Equal(t, period.WholeSampleLabel, result.PeriodLabel)
}

func TestCompute_MassIndexIsOneMinusSlope(t *testing.T) {
	result, err := Compute(goldenAmplitudes)
	require.NoError(t, err)

	// Exact algebraic identity, no rounding or clipping.
	require.Equal(t, 1-result.Slope, result.MassIndex)
}

func TestCompute_FitQualityBounds(t *testing.T) {
	samples := [][]float64{
		goldenAmplitudes,
		powerLawValues(200, 2.0, 1),
		powerLawValues(5000, 2.5, 3),
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
	}

	for _, values := range samples {
		result, err := Compute(values)
		require.NoError(t, err)
		require.GreaterOrEqual(t, result.RegressionPoints, 2)
		require.GreaterOrEqual(t, result.RSquared, 0.0)
		require.LessOrEqual(t, result.RSquared, 1.0)
	}
}

func TestCompute_RecoversKnownExponent(t *testing.T) {
	// A synthetic population drawn exactly from N(>A) ∝ A^-(s-1) must fit
	// back close to the generating exponent.
	result, err := Compute(powerLawValues(10000, 2.3, 1))
	require.NoError(t, err)

	require.InDelta(t, 2.3, result.MassIndex, 0.02)
	require.Greater(t, result.RSquared, 0.99)
}

func TestCompute_Idempotent(t *testing.T) {
	engine, err := NewEngine(WithBinning(true), WithBinCount(40))
	require.NoError(t, err)

	s := sample.New(powerLawValues(1000, 2.1, 2))

	first, err := engine.ComputeForSample(s)
	require.NoError(t, err)
	second, err := engine.ComputeForSample(s)
	require.NoError(t, err)

	require.Equal(t, first, second, "repeated computation must be bit-identical")
}

func TestCompute_EmptyAndInvalidInput(t *testing.T) {
	_, err := Compute(nil)
	require.ErrorIs(t, err, errs.ErrNoValidData)

	_, err = Compute([]float64{-1, 0, math.NaN(), math.Inf(1)})
	require.ErrorIs(t, err, errs.ErrNoValidData)
}

func TestCompute_InsufficientData(t *testing.T) {
	_, err := Compute([]float64{10, 20, 30})
	require.ErrorIs(t, err, errs.ErrInsufficientData)

	// The minimum is configurable; 3 values pass a minimum of 3.
	result, err := Compute([]float64{10, 20, 30}, WithMinSampleSize(3))
	require.NoError(t, err)
	require.Equal(t, 3, result.SampleSize)
}

func TestCompute_MinAmplitudeFloor(t *testing.T) {
	values := powerLawValues(100, 2.0, 1)

	result, err := Compute(values, WithMinAmplitude(2))
	require.NoError(t, err)

	require.Less(t, result.SampleSize, 100, "the floor must exclude values")
	require.GreaterOrEqual(t, result.AmplitudeMin, 2.0)
}

// ==============================================================================
// Binning
// ==============================================================================

func TestCompute_BinningReducesRegressionPoints(t *testing.T) {
	values := powerLawValues(10000, 2.0, 1)

	result, err := Compute(values, WithBinning(true), WithBinCount(50))
	require.NoError(t, err)

	require.True(t, result.BinningApplied)
	require.LessOrEqual(t, result.RegressionPoints, 50)
	require.Less(t, result.RegressionPoints, 10000)
	require.Equal(t, 10000, result.SampleSize, "SampleSize reflects the filtered sample, not the binned points")
}

func TestCompute_DegenerateBinningFallsBack(t *testing.T) {
	// 20 identical amplitudes: bin edges collapse, the engine falls back to
	// the unbinned distribution, and the unbinned fit itself is degenerate
	// (zero variance in log amplitude). The outcome is a typed error, never
	// a NaN slope.
	values := make([]float64, 20)
	for i := range values {
		values[i] = 42
	}

	_, err := Compute(values, WithBinning(true))
	require.ErrorIs(t, err, errs.ErrDegenerateAmplitudes)
}

func TestCompute_NearDegenerateBinningStillFits(t *testing.T) {
	// Two distinct amplitudes keep bin edges constructible; binning applies
	// and the fit proceeds.
	values := make([]float64, 20)
	for i := range values {
		values[i] = 10
		if i%2 == 0 {
			values[i] = 20
		}
	}

	result, err := Compute(values, WithBinning(true), WithBinCount(4))
	require.NoError(t, err)
	require.True(t, result.BinningApplied)
	require.False(t, result.BinningFellBack)
	require.Equal(t, 2, result.RegressionPoints)
}

// ==============================================================================
// Partitioned estimation
// ==============================================================================

func TestComputePartitioned_MonthlyFullYear(t *testing.T) {
	// ~30 detections per day over 2024; every month clears the minimum
	// sample size.
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	var values []float64
	var times []time.Time
	for day := 0; day < 366; day++ {
		base := powerLawValues(30, 2.0, 1)
		for i, v := range base {
			values = append(values, v)
			times = append(times, start.AddDate(0, 0, day).Add(time.Duration(i)*time.Minute))
		}
	}

	results, err := ComputePartitioned(values, times, period.Monthly)
	require.NoError(t, err)
	require.False(t, results.TemporalFallback)
	require.Equal(t, period.Monthly, results.Granularity)
	require.Len(t, results.Outcomes, 12)
	require.Equal(t, 12, results.Computed())

	// Partition completeness: member counts union to the total sample size.
	total := 0
	for label, outcome := range results.Outcomes {
		require.True(t, outcome.Computed(), "month %s should compute", label)
		require.Equal(t, label, outcome.Result.PeriodLabel)
		total += outcome.Result.SampleSize
	}
	require.Equal(t, len(values), total)

	require.Contains(t, results.Outcomes, "01_january")
	require.Contains(t, results.Outcomes, "12_december")
}

func TestComputePartitioned_SparsePartitionDoesNotAbortSiblings(t *testing.T) {
	// January has plenty of data, february only three detections: january
	// computes, february reports insufficient data.
	var values []float64
	var times []time.Time

	jan := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	for i, v := range powerLawValues(50, 2.0, 1) {
		values = append(values, v)
		times = append(times, jan.Add(time.Duration(i)*time.Hour))
	}
	feb := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)
	for i, v := range []float64{5, 10, 20} {
		values = append(values, v)
		times = append(times, feb.Add(time.Duration(i)*time.Hour))
	}

	results, err := ComputePartitioned(values, times, period.Monthly)
	require.NoError(t, err)
	require.Len(t, results.Outcomes, 2)
	require.Equal(t, 1, results.Computed())

	require.True(t, results.Outcomes["01_january"].Computed())
	require.ErrorIs(t, results.Outcomes["02_february"].Err, errs.ErrInsufficientData)
	require.Nil(t, results.Outcomes["02_february"].Result)
}

func TestComputeForPartitionedSample_MissingTimestamps(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	s := sample.New(powerLawValues(100, 2.0, 1))

	results, err := engine.ComputeForPartitionedSample(s, period.Weekly)
	require.NoError(t, err, "missing temporal data is a recorded fallback, not a failure")
	require.True(t, results.TemporalFallback)
	require.Len(t, results.Outcomes, 1)
	require.True(t, results.Outcomes[period.WholeSampleLabel].Computed())
}

func TestComputeForPartitionedSample_InvalidGranularity(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	_, err = engine.ComputeForPartitionedSample(sample.New(goldenAmplitudes), period.Granularity(99))
	require.ErrorIs(t, err, errs.ErrInvalidGranularity)
}

func TestComputePartitioned_LengthMismatch(t *testing.T) {
	_, err := ComputePartitioned([]float64{1, 2}, []time.Time{time.Now()}, period.Monthly)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

// ==============================================================================
// Configuration
// ==============================================================================

func TestNewEngine_Defaults(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	cfg := engine.Config()
	require.Zero(t, cfg.MinAmplitude)
	require.False(t, cfg.UseBinning)
	require.Equal(t, 50, cfg.BinCount)
	require.Equal(t, DefaultMinSampleSize, cfg.MinSampleSize)
}

func TestNewEngine_InvalidOptions(t *testing.T) {
	_, err := NewEngine(WithBinCount(0))
	require.ErrorIs(t, err, errs.ErrInvalidBinCount)

	_, err = NewEngine(WithMinSampleSize(1))
	require.ErrorIs(t, err, errs.ErrInvalidMinSampleSize)
}

func TestFitResult_String(t *testing.T) {
	result, err := Compute(goldenAmplitudes)
	require.NoError(t, err)
	require.Contains(t, result.String(), "whole_sample")
	require.Contains(t, result.String(), "s: 1.8337")
}
