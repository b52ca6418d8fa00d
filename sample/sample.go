// Package sample defines the amplitude sample consumed by the mass-index
// engine: an immutable vector of radar-echo amplitude measurements with an
// optional parallel vector of detection timestamps.
//
// Samples are constructed once by an I/O adapter and then read by the engine.
// Every derivation (filtering, period partitioning) produces a new Sample;
// the engine never mutates a caller's data in place.
package sample

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/meteorscan/massindex/errs"
)

// Sample is an immutable amplitude sample, optionally timestamped.
//
// The zero value is an empty sample. Use New or NewTimestamped to build a
// sample from adapter-owned slices; both copy their inputs so later mutation
// of the caller's slices cannot affect the sample.
type Sample struct {
	values []float64
	times  []time.Time
}

// New creates an untimestamped sample from a vector of amplitude
// measurements. The input slice is copied.
func New(values []float64) *Sample {
	s := &Sample{values: make([]float64, len(values))}
	copy(s.values, values)

	return s
}

// NewTimestamped creates a timestamped sample from parallel amplitude and
// detection-time vectors. Both slices are copied.
//
// Returns errs.ErrLengthMismatch when the vectors differ in length; this is
// an adapter bug, not a data condition.
func NewTimestamped(values []float64, times []time.Time) (*Sample, error) {
	if len(values) != len(times) {
		return nil, fmt.Errorf("%w: %d values vs %d timestamps",
			errs.ErrLengthMismatch, len(values), len(times))
	}

	s := &Sample{
		values: make([]float64, len(values)),
		times:  make([]time.Time, len(times)),
	}
	copy(s.values, values)
	copy(s.times, times)

	return s, nil
}

// Len returns the number of measurements in the sample.
func (s *Sample) Len() int {
	return len(s.values)
}

// Values returns the amplitude vector.
//
// The returned slice is the sample's internal storage and must be treated as
// read-only by the caller.
func (s *Sample) Values() []float64 {
	return s.values
}

// Timestamps returns the detection-time vector, or nil for an untimestamped
// sample. The returned slice must be treated as read-only.
func (s *Sample) Timestamps() []time.Time {
	return s.times
}

// HasTimestamps reports whether the sample carries a parallel timestamp
// vector, i.e. whether temporal partitioning is available.
func (s *Sample) HasTimestamps() bool {
	return s.times != nil
}

// Filter returns a new sample containing only the positive, finite
// amplitudes at or above floor. A floor of 0 (or below) keeps every positive
// finite value. Timestamps stay parallel to the retained values.
func (s *Sample) Filter(floor float64) *Sample {
	out := &Sample{values: make([]float64, 0, len(s.values))}
	if s.times != nil {
		out.times = make([]time.Time, 0, len(s.times))
	}

	for i, v := range s.values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			continue
		}
		if v < floor {
			continue
		}
		out.values = append(out.values, v)
		if s.times != nil {
			out.times = append(out.times, s.times[i])
		}
	}

	return out
}

// Min returns the smallest amplitude, or 0 for an empty sample.
func (s *Sample) Min() float64 {
	if len(s.values) == 0 {
		return 0
	}
	m := s.values[0]
	for _, v := range s.values[1:] {
		if v < m {
			m = v
		}
	}

	return m
}

// Max returns the largest amplitude, or 0 for an empty sample.
func (s *Sample) Max() float64 {
	if len(s.values) == 0 {
		return 0
	}
	m := s.values[0]
	for _, v := range s.values[1:] {
		if v > m {
			m = v
		}
	}

	return m
}

// Mean returns the arithmetic mean amplitude, or 0 for an empty sample.
func (s *Sample) Mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.values {
		sum += v
	}

	return sum / float64(len(s.values))
}

// Fingerprint returns a 64-bit xxHash of the sample's canonical byte image:
// every amplitude as little-endian IEEE-754 bits followed by every timestamp
// as little-endian unix microseconds. Two samples with identical content
// always produce the same fingerprint, so it can serve as a result-cache key
// or snapshot identity.
func (s *Sample) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range s.values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	for _, t := range s.times {
		binary.LittleEndian.PutUint64(buf[:], uint64(t.UnixMicro()))
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}
