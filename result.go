package massindex

import (
	"fmt"

	"github.com/meteorscan/massindex/period"
)

// FitResult is the engine's output record for one (period × configuration)
// estimation. Instances are immutable once returned, and every numeric field
// carries full float64 precision; rounding for reports belongs to the
// presentation layer.
type FitResult struct {
	// MassIndex is the estimated exponent s = 1 - Slope. It is a direct
	// algebraic transform of the slope; any value, including negative or
	// above 3, is passed through for the caller to interpret.
	MassIndex float64
	// Slope is the log-log regression slope.
	Slope float64
	// Intercept is the log-log regression intercept.
	Intercept float64
	// Correlation is the Pearson correlation coefficient r.
	Correlation float64
	// RSquared is the goodness of fit r².
	RSquared float64
	// PValue is the two-sided p-value for the null hypothesis slope = 0.
	PValue float64
	// StdErr is the standard error of the slope estimate.
	StdErr float64

	// SampleSize is the number of measurements that survived filtering.
	SampleSize int
	// RegressionPoints is the number of points used in the regression
	// (equals SampleSize unbinned, at most BinCount binned).
	RegressionPoints int
	// AmplitudeMin, AmplitudeMax and AmplitudeMean describe the filtered
	// sample.
	AmplitudeMin  float64
	AmplitudeMax  float64
	AmplitudeMean float64

	// BinningApplied reports whether the regression ran on a binned
	// distribution.
	BinningApplied bool
	// BinningFellBack reports that binning was requested but degenerate bin
	// edges forced a fallback to the unbinned distribution. It is never true
	// together with BinningApplied.
	BinningFellBack bool

	// PeriodLabel identifies the calendar partition this record covers, or
	// period.WholeSampleLabel for an unpartitioned run.
	PeriodLabel string
	// SampleFingerprint is the xxHash64 identity of the filtered sample the
	// fit ran on.
	SampleFingerprint uint64
}

// String returns a one-line summary of the result.
func (r *FitResult) String() string {
	return fmt.Sprintf("FitResult{Period: %s, s: %.4f, r²: %.4f, n: %d, points: %d}",
		r.PeriodLabel, r.MassIndex, r.RSquared, r.SampleSize, r.RegressionPoints)
}

// Outcome is the per-partition result of a partitioned run: either a
// computed FitResult or a typed error explaining why the partition could not
// be fitted (errs.ErrNoValidData, errs.ErrInsufficientData,
// errs.ErrDegenerateAmplitudes). One partition's failure never affects its
// siblings.
type Outcome struct {
	Result *FitResult
	Err    error
}

// Computed reports whether the partition produced a FitResult.
func (o Outcome) Computed() bool {
	return o.Err == nil
}

// PartitionedResult maps every non-empty calendar partition to its outcome.
type PartitionedResult struct {
	// Granularity is the partitioning that was requested.
	Granularity period.Granularity
	// Outcomes maps period labels to per-partition outcomes. Periods with no
	// detections are absent.
	Outcomes map[string]Outcome
	// TemporalFallback reports that partitioning was requested but the
	// sample carried no usable timestamps, so the engine fell back to a
	// single whole-sample partition.
	TemporalFallback bool
}

// Computed returns the number of partitions that produced a FitResult.
func (r *PartitionedResult) Computed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Computed() {
			n++
		}
	}

	return n
}
