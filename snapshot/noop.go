package snapshot

// noopCodec passes payloads through untouched. Useful when a snapshot is
// short-lived or the amplitudes are effectively incompressible.
type noopCodec struct{}

var _ Codec = noopCodec{}

func (noopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (noopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
