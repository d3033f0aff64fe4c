package compress

import "github.com/arloliu/cram/format"

// RawCodec stores blocks verbatim. It is never picked by trial selection
// (some candidate always ties or wins) but blocks written raw by other
// producers must still round-trip through the method table.
type RawCodec struct{}

var _ Codec = RawCodec{}

// Method returns format.MethodRaw.
func (RawCodec) Method() format.Method { return format.MethodRaw }

// Compress returns data unchanged. The returned slice aliases the input.
func (RawCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged. The returned slice aliases the input.
func (RawCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
