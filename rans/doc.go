// Package rans implements the static rANS entropy coder used for external
// data blocks: byte-oriented, four-way interleaved, with order-0 and
// order-1 context models.
//
// # Overview
//
// rANS (range asymmetric numeral systems) encodes a symbol stream into a
// single integer state. Encoding symbol s maps state x to
//
//	x' = (x / freq[s]) << scaleBits + start[s] + (x % freq[s])
//
// where freq and start come from a frequency table whose entries sum to
// 1 << scaleBits. Decoding inverts the map by reading the low scaleBits of
// the state. States are kept inside a fixed interval by byte-at-a-time
// renormalization, so the coder streams bytes instead of growing integers.
//
// # Block format
//
// A compressed block is a 9-byte prefix followed by the frequency table and
// the interleaved payload:
//
//	offset 0: order byte (0 or 1)
//	offset 1: compressed size, uint32 little-endian (table + payload)
//	offset 5: raw size, uint32 little-endian
//
// Four states encode the input interleaved: byte position p belongs to
// state p mod 4. Symbols are encoded in reverse so the decoder reads
// forward; the four final states are flushed little-endian ahead of the
// payload, state 0 first in stream order.
//
// Order 0 models bytes independently. Order 1 conditions each byte on its
// predecessor: the input is split into four quarters, each quarter's first
// byte coded in context 0, and the tail remainder rides on state 3.
// Frequency tables are serialized with run-length forms both over symbols
// and, for order 1, over contexts.
//
// The renormalization interval and frequency precision are fixed for the
// block format (lower bound 1<<23, 12-bit frequencies); the symbol
// primitives themselves accept any precision from 8 to 16 bits.
//
// # Behavior at the edges
//
//   - Compressing an empty input yields an empty block; decompressing an
//     empty block yields an empty output.
//   - Inputs shorter than four bytes always use the order-0 layout,
//     whatever order was requested.
//   - Corrupt input surfaces errs sentinels (ErrTruncatedInput,
//     ErrCorruptPayload, ErrInvalidOrder); decode never panics on foreign
//     bytes.
//
// # Concurrency
//
// Compress and Decompress are stateless and safe for concurrent use.
// Working buffers come from internal pools and never escape.
package rans
