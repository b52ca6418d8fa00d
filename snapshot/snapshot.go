// Package snapshot serializes amplitude samples into a compact, checksummed
// binary form so adapters can cache a consolidated dataset between analysis
// sessions without re-running their ETL.
//
// Layout (little-endian throughout):
//
//	magic      [4]byte  "MXSN"
//	version    uint8    currently 1
//	flags      uint8    bits 0-3: compression id, bit 4: timestamps present
//	count      uint32   number of measurements
//	valueLen   uint32   compressed value payload length
//	values     []byte   count float64 amplitude bits, compressed
//	tsLen      uint32   compressed timestamp payload length (if flagged)
//	timestamps []byte   count int64 unix-microsecond values, compressed (if flagged)
//	checksum   uint64   xxHash64 of everything above
//
// The value and timestamp payloads are columnar: homogeneous columns compress
// far better than interleaved records.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/meteorscan/massindex/errs"
	"github.com/meteorscan/massindex/sample"
)

var magic = [4]byte{'M', 'X', 'S', 'N'}

const (
	version = 1

	flagCompressionMask = 0x0f
	flagHasTimestamps   = 0x10

	headerSize   = 4 + 1 + 1 + 4 // magic + version + flags + count
	checksumSize = 8
)

// Encode serializes a sample with the given payload compression.
func Encode(s *sample.Sample, compression Compression) ([]byte, error) {
	codec, err := codecFor(compression)
	if err != nil {
		return nil, err
	}

	values := s.Values()
	valuePayload := make([]byte, 0, len(values)*8)
	for _, v := range values {
		valuePayload = binary.LittleEndian.AppendUint64(valuePayload, math.Float64bits(v))
	}
	valuePayload, err = codec.Compress(valuePayload)
	if err != nil {
		return nil, fmt.Errorf("compress values: %w", err)
	}

	var tsPayload []byte
	if s.HasTimestamps() {
		times := s.Timestamps()
		tsPayload = make([]byte, 0, len(times)*8)
		for _, ts := range times {
			tsPayload = binary.LittleEndian.AppendUint64(tsPayload, uint64(ts.UnixMicro()))
		}
		tsPayload, err = codec.Compress(tsPayload)
		if err != nil {
			return nil, fmt.Errorf("compress timestamps: %w", err)
		}
	}

	flags := uint8(compression) & flagCompressionMask
	if s.HasTimestamps() {
		flags |= flagHasTimestamps
	}

	size := headerSize + 4 + len(valuePayload) + checksumSize
	if s.HasTimestamps() {
		size += 4 + len(tsPayload)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, magic[:]...)
	buf = append(buf, version, flags)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Len()))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(valuePayload)))
	buf = append(buf, valuePayload...)
	if s.HasTimestamps() {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tsPayload)))
		buf = append(buf, tsPayload...)
	}
	buf = binary.LittleEndian.AppendUint64(buf, xxhash.Sum64(buf))

	return buf, nil
}

// Decode restores a sample from snapshot data.
//
// Returns errs.ErrInvalidSnapshot for malformed or truncated data,
// errs.ErrSnapshotChecksum when the trailing hash does not match, and
// errs.ErrUnsupportedCompression for unknown compression ids.
func Decode(data []byte) (*sample.Sample, error) {
	if len(data) < headerSize+4+checksumSize {
		return nil, fmt.Errorf("%w: %d bytes is below the minimum snapshot size",
			errs.ErrInvalidSnapshot, len(data))
	}
	if [4]byte(data[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic", errs.ErrInvalidSnapshot)
	}
	if data[4] != version {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidSnapshot, data[4])
	}

	body := data[:len(data)-checksumSize]
	stored := binary.LittleEndian.Uint64(data[len(data)-checksumSize:])
	if xxhash.Sum64(body) != stored {
		return nil, errs.ErrSnapshotChecksum
	}

	flags := data[5]
	codec, err := codecFor(Compression(flags & flagCompressionMask))
	if err != nil {
		return nil, err
	}
	hasTimestamps := flags&flagHasTimestamps != 0

	count := int(binary.LittleEndian.Uint32(data[6:10]))

	rest := body[headerSize:]
	valuePayload, rest, err := readPayload(rest)
	if err != nil {
		return nil, err
	}
	valueBytes, err := codec.Decompress(valuePayload)
	if err != nil {
		return nil, fmt.Errorf("decompress values: %w", err)
	}
	if len(valueBytes) != count*8 {
		return nil, fmt.Errorf("%w: value payload holds %d bytes, want %d",
			errs.ErrInvalidSnapshot, len(valueBytes), count*8)
	}

	values := make([]float64, count)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(valueBytes[i*8:]))
	}

	if !hasTimestamps {
		if len(rest) != 0 {
			return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidSnapshot, len(rest))
		}

		return sample.New(values), nil
	}

	tsPayload, rest, err := readPayload(rest)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidSnapshot, len(rest))
	}
	tsBytes, err := codec.Decompress(tsPayload)
	if err != nil {
		return nil, fmt.Errorf("decompress timestamps: %w", err)
	}
	if len(tsBytes) != count*8 {
		return nil, fmt.Errorf("%w: timestamp payload holds %d bytes, want %d",
			errs.ErrInvalidSnapshot, len(tsBytes), count*8)
	}

	times := make([]time.Time, count)
	for i := range times {
		micros := int64(binary.LittleEndian.Uint64(tsBytes[i*8:]))
		times[i] = time.UnixMicro(micros).UTC()
	}

	return sample.NewTimestamped(values, times)
}

// readPayload consumes one length-prefixed payload from buf.
func readPayload(buf []byte) (payload, rest []byte, err error) {
	if len(buf) < 4 {
		return nil, nil, fmt.Errorf("%w: truncated payload length", errs.ErrInvalidSnapshot)
	}
	n := int(binary.LittleEndian.Uint32(buf))
	buf = buf[4:]
	if len(buf) < n {
		return nil, nil, fmt.Errorf("%w: payload length %d exceeds remaining %d bytes",
			errs.ErrInvalidSnapshot, n, len(buf))
	}

	return buf[:n], buf[n:], nil
}
