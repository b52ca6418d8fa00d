// Package errs defines the sentinel error values shared across massindex
// packages.
//
// All expected data conditions (empty samples, sparse partitions, degenerate
// amplitude distributions) are represented by sentinel values so that callers
// can distinguish them with errors.Is. Wrapped variants produced with
// fmt.Errorf("...: %w", ...) preserve the sentinel identity.
package errs

import "errors"

// Sample and estimation errors.
var (
	// ErrNoValidData indicates a sample that is empty, or that contains no
	// positive finite amplitude after filtering.
	ErrNoValidData = errors.New("no valid amplitude data")

	// ErrInsufficientData indicates a filtered sample (or a binned
	// distribution) with fewer values than the configured minimum required
	// for a reliable fit.
	ErrInsufficientData = errors.New("insufficient data for mass index estimation")

	// ErrDegenerateAmplitudes indicates that every amplitude in the sample is
	// identical, so log-log regression has zero variance in the independent
	// variable and the slope is undefined.
	ErrDegenerateAmplitudes = errors.New("degenerate amplitudes: zero variance in log-amplitude")

	// ErrDegenerateBins indicates that logarithmic bin edges cannot be
	// constructed because the sample spans a single amplitude value.
	ErrDegenerateBins = errors.New("degenerate bin edges: amplitude min equals max")

	// ErrLengthMismatch indicates parallel value/timestamp vectors of
	// different lengths. This is a programmer error, not a data condition.
	ErrLengthMismatch = errors.New("values and timestamps length mismatch")
)

// Configuration errors.
var (
	// ErrInvalidBinCount indicates a non-positive logarithmic bin count.
	ErrInvalidBinCount = errors.New("invalid bin count")

	// ErrInvalidMinSampleSize indicates a minimum sample size below 2, which
	// would permit regressions with fewer than two points.
	ErrInvalidMinSampleSize = errors.New("invalid minimum sample size")

	// ErrInvalidGranularity indicates an unrecognized period granularity.
	ErrInvalidGranularity = errors.New("invalid period granularity")
)

// Snapshot errors.
var (
	// ErrInvalidSnapshot indicates snapshot data with a bad magic number,
	// unsupported version, or truncated payload.
	ErrInvalidSnapshot = errors.New("invalid snapshot format")

	// ErrSnapshotChecksum indicates that the snapshot checksum does not match
	// its payload.
	ErrSnapshotChecksum = errors.New("snapshot checksum mismatch")

	// ErrUnsupportedCompression indicates an unknown snapshot compression id.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)
