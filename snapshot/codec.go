package snapshot

import (
	"fmt"

	"github.com/meteorscan/massindex/errs"
)

// Compression identifies the algorithm applied to snapshot payloads.
type Compression uint8

const (
	// CompressionNone stores payloads uncompressed.
	CompressionNone Compression = 0x1
	// CompressionZstd applies Zstandard compression (best ratio).
	CompressionZstd Compression = 0x2
	// CompressionS2 applies S2 compression (best speed/ratio balance).
	CompressionS2 Compression = 0x3
	// CompressionLZ4 applies LZ4 block compression (fastest).
	CompressionLZ4 Compression = 0x4
)

// String returns the canonical name of the compression type.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Codec compresses and decompresses snapshot payloads.
//
// Compressed payloads are self-contained byte slices owned by the caller;
// inputs are never modified.
type Codec interface {
	// Compress compresses a payload.
	Compress(data []byte) ([]byte, error)
	// Decompress restores a payload previously produced by Compress.
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[Compression]Codec{
	CompressionNone: noopCodec{},
	CompressionZstd: zstdCodec{},
	CompressionS2:   s2Codec{},
	CompressionLZ4:  lz4Codec{},
}

// codecFor returns the built-in Codec for a compression type.
func codecFor(c Compression) (Codec, error) {
	if codec, ok := builtinCodecs[c]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnsupportedCompression, uint8(c))
}
