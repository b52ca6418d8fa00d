// Package fit estimates the power-law exponent of a cumulative
// size-frequency distribution by ordinary least squares in log-log space.
//
// Given the pairs (log10 amplitude, log10 cumulative count) it computes the
// regression slope and intercept, the Pearson correlation and its square, the
// two-sided p-value for the null hypothesis slope = 0 (Student-t with n-2
// degrees of freedom), and the standard error of the slope. The mass index
// itself is the algebraic transform s = 1 - slope applied by the caller.
package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meteorscan/massindex/errs"
)

// tiny guards the (1-r)(1+r) denominator of the t statistic against exact
// colinearity, matching the reference estimator's behavior.
const tiny = 1e-20

// Stats is the outcome of a log-log least-squares fit. All fields carry full
// float64 precision; presentation rounding belongs to the caller.
type Stats struct {
	// Slope is the regression slope of log10(N) on log10(A).
	Slope float64
	// Intercept is the regression intercept.
	Intercept float64
	// R is the Pearson correlation coefficient between log10(A) and log10(N).
	R float64
	// RSquared is the coefficient of determination.
	RSquared float64
	// PValue is the two-sided p-value for the null hypothesis slope = 0.
	PValue float64
	// StdErr is the standard error of the slope estimate.
	StdErr float64
	// Points is the number of regression points used.
	Points int
}

// PowerLaw fits log10(counts) against log10(amplitudes) by ordinary least
// squares.
//
// Preconditions: the vectors are parallel, and every amplitude and count is
// strictly positive (log10 is undefined otherwise). Violations are programmer
// errors and reported as plain errors; degenerate but expected data
// conditions map to sentinels:
//
//   - fewer than 2 points -> errs.ErrInsufficientData
//   - zero variance in log10(amplitude) -> errs.ErrDegenerateAmplitudes
//
// Exactly colinear points produce r² = 1, a standard error of 0 and a
// p-value of 0 without raising a division error. With exactly 2 points the
// degrees of freedom are 0; the standard error is then 0 and the p-value is
// 0 when the points differ (|r| = 1) and 1 otherwise.
func PowerLaw(amplitudes, counts []float64) (Stats, error) {
	if len(amplitudes) != len(counts) {
		return Stats{}, fmt.Errorf("%w: %d amplitudes vs %d counts",
			errs.ErrLengthMismatch, len(amplitudes), len(counts))
	}

	n := len(amplitudes)
	if n < 2 {
		return Stats{}, fmt.Errorf("%w: %d regression points, need at least 2",
			errs.ErrInsufficientData, n)
	}

	logA := make([]float64, n)
	logN := make([]float64, n)
	for i := range amplitudes {
		if amplitudes[i] <= 0 || counts[i] <= 0 {
			return Stats{}, fmt.Errorf("non-positive regression input at point %d: amplitude=%g count=%g",
				i, amplitudes[i], counts[i])
		}
		logA[i] = math.Log10(amplitudes[i])
		logN[i] = math.Log10(counts[i])
	}

	if stat.Variance(logA, nil) == 0 {
		return Stats{}, fmt.Errorf("%w: all %d amplitudes equal", errs.ErrDegenerateAmplitudes, n)
	}

	intercept, slope := stat.LinearRegression(logA, logN, nil, false)
	r := stat.Correlation(logA, logN, nil)
	if math.IsNaN(r) {
		// Zero variance in log10(N); the regression line is horizontal and
		// carries no correlation.
		r = 0
	}

	s := Stats{
		Slope:     slope,
		Intercept: intercept,
		R:         r,
		RSquared:  r * r,
		Points:    n,
	}
	s.PValue, s.StdErr = slopeSignificance(logA, logN, slope, intercept, r)

	return s, nil
}

// slopeSignificance computes the two-sided p-value and the standard error of
// the slope from the fit residuals.
func slopeSignificance(x, y []float64, slope, intercept, r float64) (pValue, stdErr float64) {
	n := len(x)
	df := n - 2

	if df <= 0 {
		// Two points determine the line exactly. Mirror the reference
		// estimator: p = 1 for a horizontal pair, 0 otherwise.
		if y[0] == y[1] {
			return 1, 0
		}

		return 0, 0
	}

	meanX := stat.Mean(x, nil)
	var sxx, ssr float64
	for i := range x {
		dx := x[i] - meanX
		sxx += dx * dx
		resid := y[i] - (intercept + slope*x[i])
		ssr += resid * resid
	}

	// Colinear data: zero residual sum gives a zero standard error rather
	// than a division failure.
	stdErr = math.Sqrt(ssr / float64(df) / sxx)

	t := r * math.Sqrt(float64(df)/((1-r+tiny)*(1+r+tiny)))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	pValue = 2 * tDist.Survival(math.Abs(t))

	return pValue, stdErr
}
