package compress

import (
	"fmt"

	"github.com/arloliu/cram/errs"
	"github.com/arloliu/cram/format"
)

// Compressor turns a raw block into its compressed form.
type Compressor interface {
	// Compress compresses data and returns the result. The input is never
	// modified; the returned slice is owned by the caller.
	Compress(data []byte) ([]byte, error)
}

// Decompressor inverts a Compressor of the same method.
type Decompressor interface {
	// Decompress restores the original bytes from data. Corrupt or
	// foreign input returns an error, never a panic.
	Decompress(data []byte) ([]byte, error)
}

// Codec is one external block compression method: a byte-to-byte transform
// pair plus the method identity recorded in the compression header.
type Codec interface {
	Compressor
	Decompressor

	// Method returns the wire method identity of this codec.
	Method() format.Method
}

// ForMethod returns the codec implementing the given method. The rANS
// method decodes either context order; for compression it defaults to
// order 1 (use RansCodec directly to pin an order).
func ForMethod(method format.Method) (Codec, error) {
	switch method {
	case format.MethodRaw:
		return RawCodec{}, nil
	case format.MethodGzip:
		return GzipCodec{}, nil
	case format.MethodBzip2:
		return Bzip2Codec{}, nil
	case format.MethodLzma:
		return LzmaCodec{}, nil
	case format.MethodRans:
		return RansOrder1, nil
	default:
		return nil, fmt.Errorf("compress: method %d: %w", method, errs.ErrUnknownMethod)
	}
}
