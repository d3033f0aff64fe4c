package header

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/cram/compress"
	"github.com/arloliu/cram/encoding"
	"github.com/arloliu/cram/format"
	"github.com/arloliu/cram/record"
)

// CompressionHeader is the planning artifact for one record batch: which
// encoding scheme carries each data series and tag stream, which compressor
// each external block uses, the shared tag dictionary and the substitution
// matrix. It is built once per batch and immutable afterwards; the
// container writer owns its on-wire serialization.
type CompressionHeader struct {
	// Encodings holds one entry per data series; series the policy table
	// leaves out carry the explicit null scheme.
	Encodings map[format.DataSeries]encoding.Params

	// TagEncodings holds the chosen scheme per observed tag id.
	TagEncodings map[record.TagID]encoding.Params

	// Compressors maps every external block id referenced from Encodings or
	// TagEncodings to its block compressor. Fixed series count up from
	// block id 0; tag streams use the packed tag id.
	Compressors map[int32]compress.Codec

	// ExternalIDs lists the external block ids in registration order.
	ExternalIDs []int32

	// TagDictionary rows are the distinct sorted tag-id lists of the batch,
	// ordered by length then unsigned byte collation. Records refer to rows
	// through their TagListIndex.
	TagDictionary [][]record.TagID

	SubstitutionMatrix *SubstitutionMatrix

	// APDelta records whether the alignment-position series is stored as
	// successive deltas, true for coordinate-sorted batches.
	APDelta bool
}

// Fingerprint hashes the header's logical content with xxHash64. Two
// headers fingerprint equal exactly when every map, the dictionary, the
// matrix and the sortedness flag agree; container writers use it for
// dedup and diagnostics.
func (h *CompressionHeader) Fingerprint() uint64 {
	d := xxhash.New()
	var scratch [8]byte

	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(scratch[:], uint64(v))
		_, _ = d.Write(scratch[:])
	}
	writeParams := func(p encoding.Params) {
		writeInt(int64(p.ID))
		writeInt(int64(len(p.Args)))
		_, _ = d.Write(p.Args)
	}

	for _, s := range format.AllDataSeries() {
		writeParams(h.Encodings[s])
	}

	tagIDs := make([]record.TagID, 0, len(h.TagEncodings))
	for id := range h.TagEncodings {
		tagIDs = append(tagIDs, id)
	}
	sort.Slice(tagIDs, func(i, j int) bool { return tagIDs[i] < tagIDs[j] })
	for _, id := range tagIDs {
		writeInt(int64(id))
		writeParams(h.TagEncodings[id])
	}

	for _, id := range h.ExternalIDs {
		writeInt(int64(id))
		writeInt(int64(h.Compressors[id].Method()))
	}

	writeInt(int64(len(h.TagDictionary)))
	for _, row := range h.TagDictionary {
		writeInt(int64(len(row)))
		for _, id := range row {
			writeInt(int64(id))
		}
	}

	if h.SubstitutionMatrix != nil {
		wire := h.SubstitutionMatrix.Encode()
		_, _ = d.Write(wire[:])
	}
	if h.APDelta {
		writeInt(1)
	}

	return d.Sum64()
}
