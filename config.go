package massindex

import (
	"fmt"

	"github.com/meteorscan/massindex/dist"
	"github.com/meteorscan/massindex/errs"
	"github.com/meteorscan/massindex/internal/options"
)

// DefaultMinSampleSize is the smallest filtered sample the engine will fit.
// Below this the estimate is statistically unreliable and the engine reports
// errs.ErrInsufficientData instead of fabricating statistics.
const DefaultMinSampleSize = 10

// Config holds the engine's estimation parameters.
type Config struct {
	// MinAmplitude is an optional inclusive filter floor; values below it are
	// excluded before estimation. Zero (or negative) disables the floor.
	MinAmplitude float64
	// UseBinning enables logarithmic re-binning of the cumulative
	// distribution before fitting.
	UseBinning bool
	// BinCount is the number of logarithmic bins when binning is enabled.
	BinCount int
	// MinSampleSize is the minimum filtered sample size required for a fit.
	MinSampleSize int
}

// defaultConfig returns the engine defaults: no floor, no binning, 50 bins,
// minimum sample size 10.
func defaultConfig() Config {
	return Config{
		BinCount:      dist.DefaultBinCount,
		MinSampleSize: DefaultMinSampleSize,
	}
}

// Option is a functional option for the engine configuration.
type Option = options.Option[*Config]

// WithMinAmplitude sets the inclusive amplitude filter floor.
func WithMinAmplitude(floor float64) Option {
	return options.NoError(func(cfg *Config) {
		cfg.MinAmplitude = floor
	})
}

// WithBinning enables or disables logarithmic re-binning.
func WithBinning(enabled bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.UseBinning = enabled
	})
}

// WithBinCount sets the number of logarithmic bins. The count must be
// positive.
func WithBinCount(count int) Option {
	return options.New(func(cfg *Config) error {
		if count < 1 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidBinCount, count)
		}
		cfg.BinCount = count

		return nil
	})
}

// WithMinSampleSize sets the minimum filtered sample size required for a
// fit. The size must be at least 2, since a regression needs two points.
func WithMinSampleSize(size int) Option {
	return options.New(func(cfg *Config) error {
		if size < 2 {
			return fmt.Errorf("%w: %d, need at least 2", errs.ErrInvalidMinSampleSize, size)
		}
		cfg.MinSampleSize = size

		return nil
	})
}
