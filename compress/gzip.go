package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/cram/format"
)

// gzipWriterPool pools gzip writers at maximum level; Reset makes reuse
// free and the deflate state is the expensive part of each writer.
var gzipWriterPool = sync.Pool{
	New: func() any {
		w, err := gzip.NewWriterLevel(io.Discard, gzip.BestCompression)
		if err != nil {
			// BestCompression is a valid level.
			panic(fmt.Sprintf("compress: gzip writer: %v", err))
		}
		return w
	},
}

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// GzipCodec is deflate in a gzip wrapper at maximum compression level, the
// general-purpose method of the format.
type GzipCodec struct{}

var _ Codec = GzipCodec{}

// Method returns format.MethodGzip.
func (GzipCodec) Method() format.Method { return format.MethodGzip }

// Compress compresses data with gzip at the maximum level.
func (GzipCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	w, _ := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(w)
	w.Reset(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress restores gzip-compressed data.
func (GzipCodec) Decompress(data []byte) ([]byte, error) {
	r, _ := gzipReaderPool.Get().(*gzip.Reader)
	defer gzipReaderPool.Put(r)

	if err := r.Reset(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}

	return out, nil
}
