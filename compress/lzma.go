package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/arloliu/cram/format"
)

// LzmaCodec is LZMA2 in an xz container.
type LzmaCodec struct{}

var _ Codec = LzmaCodec{}

// Method returns format.MethodLzma.
func (LzmaCodec) Method() format.Method { return format.MethodLzma }

// Compress compresses data as an xz stream.
func (LzmaCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("lzma compress: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lzma compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lzma compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress restores an xz stream.
func (LzmaCodec) Decompress(data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("lzma decompress: %w", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lzma decompress: %w", err)
	}

	return out, nil
}
