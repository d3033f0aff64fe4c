package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"

	"github.com/arloliu/cram/format"
)

// Bzip2Codec is Burrows-Wheeler block compression at the maximum block
// size. The standard library only decompresses bzip2, so both directions
// go through dsnet/compress.
type Bzip2Codec struct{}

var _ Codec = Bzip2Codec{}

// Method returns format.MethodBzip2.
func (Bzip2Codec) Method() format.Method { return format.MethodBzip2 }

// Compress compresses data as a bzip2 stream.
func (Bzip2Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return nil, fmt.Errorf("bzip2 compress: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("bzip2 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("bzip2 compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress restores a bzip2 stream.
func (Bzip2Codec) Decompress(data []byte) ([]byte, error) {
	r, err := bzip2.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("bzip2 decompress: %w", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bzip2 decompress: %w", err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("bzip2 decompress: %w", err)
	}

	return out, nil
}
