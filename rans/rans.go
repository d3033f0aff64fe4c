package rans

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/cram/errs"
)

// Order selects the context model of a compressed block.
type Order uint8

const (
	// Order0 models each byte independently.
	Order0 Order = 0
	// Order1 conditions each byte on its predecessor.
	Order1 Order = 1
)

func (o Order) String() string {
	switch o {
	case Order0:
		return "Order0"
	case Order1:
		return "Order1"
	default:
		return "Unknown"
	}
}

const (
	// lowBound is the lower edge of the renormalization interval.
	lowBound = 1 << 23
	// scaleBits is the frequency precision of the block format.
	scaleBits = 12
	// totFreq is the frequency table sum the block format assumes.
	totFreq = 1 << scaleBits

	prefixLen    = 9
	minOrder1Len = 4

	// maxRawSize bounds the declared raw size of a block before the output
	// buffer is allocated, so corrupt prefixes cannot demand absurd
	// allocations.
	maxRawSize = 1 << 30
)

// Compress encodes data with the requested context order and returns the
// complete block (prefix, frequency table, payload).
//
// Inputs shorter than four bytes are always encoded with order 0; an empty
// input yields an empty block.
func Compress(data []byte, order Order) ([]byte, error) {
	if order != Order0 && order != Order1 {
		return nil, fmt.Errorf("rans: compress: %w (%d)", errs.ErrInvalidOrder, order)
	}
	if len(data) == 0 {
		return []byte{}, nil
	}
	if order == Order1 && len(data) >= minOrder1Len {
		return compressOrder1(data), nil
	}

	return compressOrder0(data), nil
}

// Decompress decodes a block produced by Compress. The order is read from
// the block prefix. An empty block yields an empty output.
func Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	if len(data) < prefixLen {
		return nil, fmt.Errorf("rans: block prefix: %w", errs.ErrTruncatedInput)
	}

	order := Order(data[0])
	compSize := binary.LittleEndian.Uint32(data[1:5])
	rawSize := binary.LittleEndian.Uint32(data[5:9])

	if order != Order0 && order != Order1 {
		return nil, fmt.Errorf("rans: block prefix: %w (order byte %d)", errs.ErrInvalidOrder, data[0])
	}
	if int(compSize) != len(data)-prefixLen {
		return nil, fmt.Errorf("rans: declared size %d, payload size %d: %w",
			compSize, len(data)-prefixLen, errs.ErrCorruptPayload)
	}
	if rawSize > maxRawSize {
		return nil, fmt.Errorf("rans: declared raw size %d: %w", rawSize, errs.ErrCorruptPayload)
	}

	br := &byteReader{src: data, pos: prefixLen}
	out := make([]byte, rawSize)

	var err error
	if order == Order1 {
		err = decompressOrder1(br, out)
	} else {
		err = decompressOrder0(br, out)
	}
	if err != nil {
		return nil, fmt.Errorf("rans: decompress order %d: %w", order, err)
	}

	return out, nil
}

// assemble lays out the final block from its three parts.
func assemble(order Order, table, payload []byte, rawSize int) []byte {
	out := make([]byte, prefixLen+len(table)+len(payload))
	out[0] = byte(order)
	binary.LittleEndian.PutUint32(out[1:5], uint32(len(table)+len(payload)))
	binary.LittleEndian.PutUint32(out[5:9], uint32(rawSize))
	copy(out[prefixLen:], table)
	copy(out[prefixLen+len(table):], payload)

	return out
}

// reverseBuffer writes bytes back to front; bytes() returns the written
// suffix. The caller sizes buf for the worst case, so put never grows it.
type reverseBuffer struct {
	buf []byte
	pos int
}

func newReverseBuffer(buf []byte) *reverseBuffer {
	return &reverseBuffer{buf: buf, pos: len(buf)}
}

func (rb *reverseBuffer) put(c byte) {
	rb.pos--
	rb.buf[rb.pos] = c
}

func (rb *reverseBuffer) bytes() []byte {
	return rb.buf[rb.pos:]
}

// flush pushes a final encoder state ahead of the already-written payload,
// little-endian in stream order.
func flush(x uint32, rb *reverseBuffer) {
	rb.put(byte(x >> 24))
	rb.put(byte(x >> 16))
	rb.put(byte(x >> 8))
	rb.put(byte(x))
}

// byteReader is a bounds-checked forward reader over a compressed block.
type byteReader struct {
	src []byte
	pos int
}

func (br *byteReader) uint8() (byte, error) {
	if br.pos >= len(br.src) {
		return 0, errs.ErrTruncatedInput
	}
	c := br.src[br.pos]
	br.pos++

	return c, nil
}

func (br *byteReader) peek() (byte, bool) {
	if br.pos >= len(br.src) {
		return 0, false
	}

	return br.src[br.pos], true
}

// state reads one flushed encoder state, little-endian.
func (br *byteReader) state() (uint32, error) {
	if br.pos+4 > len(br.src) {
		return 0, errs.ErrTruncatedInput
	}
	x := binary.LittleEndian.Uint32(br.src[br.pos:])
	br.pos += 4

	return x, nil
}

// renorm refills a decoder state from the stream until it re-enters the
// renormalization interval.
func (br *byteReader) renorm(x uint32) (uint32, error) {
	for x < lowBound {
		c, err := br.uint8()
		if err != nil {
			return 0, err
		}
		x = x<<8 | uint32(c)
	}

	return x, nil
}
