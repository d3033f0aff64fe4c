package compress

import (
	"github.com/arloliu/cram/format"
	"github.com/arloliu/cram/rans"
)

// RansCodec is the static rANS entropy coder at a fixed context order. The
// order only steers compression; decompression reads the order from the
// block itself, so either value decodes blocks of both orders.
type RansCodec struct {
	Order rans.Order
}

// The two rANS codecs the selector trials.
var (
	RansOrder0 = RansCodec{Order: rans.Order0}
	RansOrder1 = RansCodec{Order: rans.Order1}
)

var _ Codec = RansCodec{}

// Method returns format.MethodRans.
func (RansCodec) Method() format.Method { return format.MethodRans }

// Compress encodes data as a rANS block at the codec's context order.
func (c RansCodec) Compress(data []byte) ([]byte, error) {
	return rans.Compress(data, c.Order)
}

// Decompress decodes a rANS block of either context order.
func (RansCodec) Decompress(data []byte) ([]byte, error) {
	return rans.Decompress(data)
}
