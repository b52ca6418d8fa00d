// Package massindex estimates the mass index of a meteor-echo amplitude
// population: the exponent s of the power-law cumulative size-frequency
// distribution N(>A) ∝ A^-(s-1), fitted by least squares in log-log space.
//
// The engine is a pure, synchronous computation over an in-memory sample. It
// performs no I/O: adapters load raw radar data into a sample.Sample and
// consume the returned FitResult records (persisting, plotting and formatting
// are theirs).
//
// # Basic Usage
//
// Estimating the mass index of a whole sample:
//
//	import "github.com/meteorscan/massindex"
//
//	result, err := massindex.Compute(amplitudes)
//	if err != nil {
//	    // errors.Is(err, errs.ErrInsufficientData) etc.
//	}
//	fmt.Printf("s = %.4f (r² = %.4f)\n", result.MassIndex, result.RSquared)
//
// With logarithmic binning and an amplitude floor:
//
//	result, err := massindex.Compute(amplitudes,
//	    massindex.WithBinning(true),
//	    massindex.WithBinCount(50),
//	    massindex.WithMinAmplitude(2.5),
//	)
//
// Per-month estimation of a timestamped dataset:
//
//	results, err := massindex.ComputePartitioned(amplitudes, timestamps, period.Monthly)
//	for label, outcome := range results.Outcomes {
//	    if outcome.Computed() {
//	        fmt.Printf("%s: s = %.4f\n", label, outcome.Result.MassIndex)
//	    }
//	}
//
// # Package Structure
//
// This package provides the engine and convenient top-level wrappers. The
// leaf packages can be used directly for finer control:
//
//   - sample: the amplitude sample data model
//   - dist: cumulative distribution construction and logarithmic binning
//   - fit: the log-log least-squares estimator
//   - period: calendar-period partitioning
//   - snapshot: compact binary caching of samples
//   - errs: sentinel error values
package massindex
