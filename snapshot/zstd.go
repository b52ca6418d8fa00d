package snapshot

// zstdCodec compresses payloads with Zstandard, the best choice for cold
// storage of consolidated datasets. The implementation is selected at build
// time: gozstd (cgo bindings to libzstd) when cgo is available, otherwise the
// pure-Go klauspost implementation.
type zstdCodec struct{}

var _ Codec = zstdCodec{}
