// Package record defines the alignment record model consumed by header
// planning: fixed per-record fields, optional tags with packed three-byte
// ids, and read features.
package record

import (
	"fmt"
	"sort"

	"github.com/arloliu/cram/format"
)

// TagID packs a two-character tag name and its value type byte into one
// integer: name[0]<<16 | name[1]<<8 | type. The packed form doubles as the
// external block id of the tag's data stream.
type TagID int32

// NewTagID builds a TagID from the two name bytes and the value type byte.
func NewTagID(n1, n2, valueType byte) TagID {
	return TagID(int32(n1)<<16 | int32(n2)<<8 | int32(valueType))
}

// Name returns the two-character tag name.
func (id TagID) Name() string {
	return string([]byte{byte(id >> 16), byte(id >> 8)})
}

// Type returns the value type byte (the low byte of the packed id).
func (id TagID) Type() byte {
	return byte(id)
}

// Bytes returns the packed big-endian three-byte form used in the tag
// dictionary.
func (id TagID) Bytes() [3]byte {
	return [3]byte{byte(id >> 16), byte(id >> 8), byte(id)}
}

// String renders the id as "NN:t", e.g. "XA:i".
func (id TagID) String() string {
	return fmt.Sprintf("%s:%c", id.Name(), id.Type())
}

// Tag is one record tag: a packed id and the serialized value bytes. The
// value is opaque to planning; only its length and, for some types, its raw
// bytes are inspected.
type Tag struct {
	ID    TagID
	Value []byte
}

// Len returns the serialized value size in bytes.
func (t Tag) Len() int {
	return len(t.Value)
}

// Record is one alignment record, reduced to the fields the compression
// layer reads. Tag values arrive already serialized.
//
// Planning mutates a record in three documented ways: Tags is sorted
// ascending by packed id, TagListIndex receives the record's tag dictionary
// row, and substitution features with an unset code receive their rank code.
type Record struct {
	ReadName       []byte
	Flags          int32
	AlignmentStart int32
	ReadLength     int32
	ReadGroup      int32
	MappingQuality int32
	TemplateSize   int32
	Bases          []byte
	Scores         []byte

	Tags     []Tag
	Features []Feature

	// TagListIndex is the row of this record's tag id set in the tag
	// dictionary. Valid after planning.
	TagListIndex int
}

// SortTags orders the record's tags ascending by packed tag id.
func (r *Record) SortTags() {
	sort.Slice(r.Tags, func(i, j int) bool {
		return r.Tags[i].ID < r.Tags[j].ID
	})
}

// ValidTagType reports whether the value type byte belongs to the tag value
// alphabet.
func ValidTagType(valueType byte) bool {
	switch valueType {
	case format.TagChar, format.TagInt8, format.TagUint8,
		format.TagInt16, format.TagUint16,
		format.TagInt32, format.TagUint32, format.TagFloat,
		format.TagString, format.TagArray:
		return true
	default:
		return false
	}
}
