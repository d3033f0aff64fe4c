// Package cram implements the adaptive codec-selection core of a CRAM-style
// genomic compression format: per-series and per-tag encoding planning, and
// the static rANS entropy coder backing the block compressors.
//
// # Core Features
//
//   - Fixed policy table assigning an encoding scheme and block compressor
//     to every data series of the format
//   - Empirical per-tag selection: competing codecs are trial-compressed on
//     real tag data and the smallest output wins
//   - Shared tag-id dictionary with stable row indices across a batch
//   - Base substitution matrix with per-reference-base rank codes
//   - Byte-oriented rANS entropy coder, order 0 and order 1, four-way
//     interleaved and bit-exact across encode and decode
//
// # Basic Usage
//
// Planning a compression header for a batch of records:
//
//	import "github.com/arloliu/cram"
//
//	factory, _ := cram.NewFactory()
//	hdr, err := factory.Build(records, nil, true)
//	if err != nil {
//	    return err
//	}
//	// hdr describes every series and tag stream; the records now carry
//	// their tag dictionary indices and substitution codes.
//
// Compressing a standalone block with the trial selector:
//
//	codec, _ := cram.BestCodec(blob)
//	compressed, _ := codec.Compress(blob)
//
// # Package Structure
//
// This package re-exports the most common entry points. The header package
// owns planning, compress the block codecs and trial selection, rans the
// entropy coder, record the input model, and slice the container slice
// metadata.
package cram

import (
	"github.com/arloliu/cram/compress"
	"github.com/arloliu/cram/header"
	"github.com/arloliu/cram/record"
)

// NewFactory creates a header planner. See header.NewFactory.
func NewFactory(opts ...header.Option) (*header.Factory, error) {
	return header.NewFactory(opts...)
}

// BestCodec trial-compresses data with the competing block codecs and
// returns the winner. See compress.BestCodec.
func BestCodec(data []byte) (compress.Codec, error) {
	return compress.BestCodec(data)
}

// NewTagID builds a packed tag id from the two name bytes and the value
// type byte. See record.TagID.
func NewTagID(n1, n2, valueType byte) record.TagID {
	return record.NewTagID(n1, n2, valueType)
}
