// Package compress provides the external block compressors of the format
// and the trial selector the header planner uses to pick among them.
//
// # Overview
//
// Every external data block is compressed by exactly one method from the
// closed method enum:
//
//   - Raw: verbatim bytes
//   - Gzip: deflate at maximum level, the general-purpose default
//   - Bzip2: Burrows-Wheeler block compression
//   - Lzma: LZMA in an xz container
//   - Rans: the static rANS coder, order 0 or order 1
//
// Codecs are byte-to-byte transforms; the block framing around them is
// owned by the container writer.
//
// # Selection
//
// BestCodec trial-compresses one blob with the competing candidates (gzip,
// rANS order 0, rANS order 1) and returns the codec producing the smallest
// output. Size ties go to rANS order 0, then order 1, then gzip: when
// nothing is saved either way, prefer the cheaper decode. Trials run to
// completion; selecting on a prefix would let a skewed sample pick the
// wrong codec for the whole block.
//
// # Concurrency
//
// All codecs are stateless values, safe for concurrent use; reusable
// encoder and decoder state lives in pools internal to each codec.
package compress
