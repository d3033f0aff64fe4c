// Package encoding defines the serialized encoding parameters attached to
// each data series and tag stream in a compression header.
//
// Params is deliberately a closed union: the only way to build a value is
// through the constructors below, one per scheme the planner emits. The
// argument bytes use the ITF-8 integer form throughout, matching the layout
// the container writer serializes verbatim.
package encoding

import (
	"bytes"
	"fmt"

	"github.com/arloliu/cram/format"
	"github.com/arloliu/cram/internal/itf8"
)

// Params couples an encoding scheme id with its serialized arguments.
type Params struct {
	ID   format.EncodingID
	Args []byte
}

// Null returns the explicit no-encoding scheme. Series left unregistered by
// the planner carry it.
func Null() Params {
	return Params{ID: format.EncodingNull}
}

// External returns the external scheme: values live verbatim in the block
// identified by blockID.
func External(blockID int32) Params {
	return Params{
		ID:   format.EncodingExternal,
		Args: itf8.Append(nil, blockID),
	}
}

// HuffmanConstant returns a canonical Huffman scheme whose alphabet is the
// single value with a zero-length code, i.e. a constant that costs no bits.
func HuffmanConstant(value int32) Params {
	args := itf8.Append(nil, 1)
	args = itf8.Append(args, value)
	args = itf8.Append(args, 1)
	args = itf8.Append(args, 0)

	return Params{ID: format.EncodingHuffman, Args: args}
}

// ByteArrayStop returns the stop-byte scheme: values stream into the block
// identified by blockID, each terminated by the stop byte.
func ByteArrayStop(stop byte, blockID int32) Params {
	args := append([]byte{stop}, itf8.Append(nil, blockID)...)

	return Params{ID: format.EncodingByteArrayStop, Args: args}
}

// ByteArrayLen returns the length-prefixed scheme: lenParams encodes each
// value's length, valParams the value bytes. Both sub-schemes are nested
// verbatim, each prefixed by its id and argument size.
func ByteArrayLen(lenParams, valParams Params) Params {
	args := itf8.Append(nil, int32(lenParams.ID))
	args = itf8.Append(args, int32(len(lenParams.Args)))
	args = append(args, lenParams.Args...)
	args = itf8.Append(args, int32(valParams.ID))
	args = itf8.Append(args, int32(len(valParams.Args)))
	args = append(args, valParams.Args...)

	return Params{ID: format.EncodingByteArrayLen, Args: args}
}

// IsNull reports whether p is the null scheme.
func (p Params) IsNull() bool {
	return p.ID == format.EncodingNull
}

// Equal reports whether two params have the same scheme and arguments.
func (p Params) Equal(o Params) bool {
	return p.ID == o.ID && bytes.Equal(p.Args, o.Args)
}

func (p Params) String() string {
	if len(p.Args) == 0 {
		return p.ID.String()
	}

	return fmt.Sprintf("%s(%x)", p.ID, p.Args)
}
