package massindex

import (
	"errors"
	"fmt"
	"time"

	"github.com/meteorscan/massindex/dist"
	"github.com/meteorscan/massindex/errs"
	"github.com/meteorscan/massindex/fit"
	"github.com/meteorscan/massindex/internal/options"
	"github.com/meteorscan/massindex/period"
	"github.com/meteorscan/massindex/sample"
)

// Engine computes mass-index estimates from amplitude samples. It is
// stateless between invocations and safe for concurrent use; all methods are
// pure functions of the sample and the configuration captured at
// construction.
type Engine struct {
	cfg    Config
	binner *dist.Binner
}

// NewEngine creates an engine with the given options applied over the
// defaults (no amplitude floor, no binning, 50 bins, minimum sample size 10).
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	binner, err := dist.NewBinner(cfg.BinCount)
	if err != nil {
		return nil, err
	}

	return &Engine{cfg: cfg, binner: binner}, nil
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// ComputeForSample estimates the mass index of a whole sample.
//
// The sample is filtered (non-positive and non-finite values dropped, then
// the configured amplitude floor applied), checked against the minimum
// sample size, converted to a cumulative size-frequency distribution,
// optionally re-binned, and fitted. The input sample is never modified.
//
// Expected data conditions surface as sentinel errors rather than fabricated
// statistics:
//
//   - errs.ErrNoValidData: nothing survives filtering
//   - errs.ErrInsufficientData: fewer filtered values than the minimum
//   - errs.ErrDegenerateAmplitudes: all filtered values identical
func (e *Engine) ComputeForSample(s *sample.Sample) (*FitResult, error) {
	return e.compute(s, period.WholeSampleLabel)
}

// ComputeForPartitionedSample splits a timestamped sample into
// calendar-period partitions and estimates the mass index of each partition
// independently.
//
// A sample without timestamps is not an error: the engine records a temporal
// fallback and analyzes the whole sample under period.WholeSampleLabel.
// Per-partition failures (sparse or degenerate periods) are recorded in the
// partition's Outcome and never abort sibling partitions.
func (e *Engine) ComputeForPartitionedSample(s *sample.Sample, g period.Granularity) (*PartitionedResult, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidGranularity, g)
	}

	parts, fellBack := period.Split(s, g)

	out := &PartitionedResult{
		Granularity:      g,
		Outcomes:         make(map[string]Outcome, len(parts)),
		TemporalFallback: fellBack,
	}
	for _, p := range parts {
		result, err := e.compute(p.Sample, p.Label)
		out.Outcomes[p.Label] = Outcome{Result: result, Err: err}
	}

	return out, nil
}

// compute runs the filter → distribution → (binning) → fit pipeline and
// assembles the result record.
func (e *Engine) compute(s *sample.Sample, label string) (*FitResult, error) {
	filtered := s.Filter(e.cfg.MinAmplitude)

	if filtered.Len() == 0 {
		return nil, fmt.Errorf("%w (period %s)", errs.ErrNoValidData, label)
	}
	if filtered.Len() < e.cfg.MinSampleSize {
		return nil, fmt.Errorf("%w: %d values in period %s, need %d",
			errs.ErrInsufficientData, filtered.Len(), label, e.cfg.MinSampleSize)
	}

	d := dist.Build(filtered.Values())

	binned := false
	fellBack := false
	if e.cfg.UseBinning {
		rebinned, err := e.binner.Rebin(d)
		switch {
		case errors.Is(err, errs.ErrDegenerateBins):
			// Degenerate edges: fall back to the unbinned distribution and
			// record that binning did not actually happen.
			fellBack = true
		case err != nil:
			return nil, err
		default:
			d = rebinned
			binned = true
		}
	}

	if d.Len() < 2 {
		return nil, fmt.Errorf("%w: %d regression points in period %s, need at least 2",
			errs.ErrInsufficientData, d.Len(), label)
	}

	stats, err := fit.PowerLaw(d.Amplitudes, d.Counts)
	if err != nil {
		return nil, err
	}

	return &FitResult{
		MassIndex:   1 - stats.Slope,
		Slope:       stats.Slope,
		Intercept:   stats.Intercept,
		Correlation: stats.R,
		RSquared:    stats.RSquared,
		PValue:      stats.PValue,
		StdErr:      stats.StdErr,

		SampleSize:       filtered.Len(),
		RegressionPoints: stats.Points,
		AmplitudeMin:     filtered.Min(),
		AmplitudeMax:     filtered.Max(),
		AmplitudeMean:    filtered.Mean(),

		BinningApplied:  binned,
		BinningFellBack: fellBack,

		PeriodLabel:       label,
		SampleFingerprint: filtered.Fingerprint(),
	}, nil
}

// Compute is a convenience wrapper that estimates the mass index of a raw
// amplitude vector with a one-off engine.
func Compute(values []float64, opts ...Option) (*FitResult, error) {
	engine, err := NewEngine(opts...)
	if err != nil {
		return nil, err
	}

	return engine.ComputeForSample(sample.New(values))
}

// ComputePartitioned is a convenience wrapper that partitions a timestamped
// amplitude vector by the given granularity and estimates the mass index per
// period with a one-off engine.
func ComputePartitioned(values []float64, times []time.Time, g period.Granularity, opts ...Option) (*PartitionedResult, error) {
	engine, err := NewEngine(opts...)
	if err != nil {
		return nil, err
	}

	s, err := sample.NewTimestamped(values, times)
	if err != nil {
		return nil, err
	}

	return engine.ComputeForPartitionedSample(s, g)
}
