package header

import (
	"fmt"
	"sort"

	"github.com/arloliu/cram/compress"
	"github.com/arloliu/cram/encoding"
	"github.com/arloliu/cram/errs"
	"github.com/arloliu/cram/format"
	"github.com/arloliu/cram/internal/options"
	"github.com/arloliu/cram/internal/pool"
	"github.com/arloliu/cram/record"
)

// stopByte delimits read names and string-typed tag values.
const stopByte = '\t'

// byteArrayStopThreshold is the minimum observed value length before a
// variable-size array tag is worth a sentinel-byte encoding: below it the
// explicit length stream is cheap and a sentinel buys nothing.
const byteArrayStopThreshold = 100

// tagEncoding is one memoized selection: the scheme and the block
// compressor chosen for a tag id.
type tagEncoding struct {
	params encoding.Params
	codec  compress.Codec
}

// Factory plans compression headers. It owns two pieces of mutable state:
// the per-tag-id selection memo, which survives across batches so repeated
// tags skip re-trialing, and a scratch buffer for concatenating tag
// values, held from the shared tag-value pool for the duration of one
// Build. A Factory is not safe for concurrent use; give each planning
// goroutine its own.
type Factory struct {
	bestEncodings map[record.TagID]tagEncoding
	scratch       *pool.ByteBuffer

	generalCodec compress.Codec
}

// Option configures a Factory.
type Option = options.Option[*Factory]

// WithGeneralPurposeMethod selects the general-purpose block method the
// policy table and fixed-size tags use instead of gzip. The rANS roles of
// the policy table are fixed, so MethodRans is rejected.
func WithGeneralPurposeMethod(method format.Method) Option {
	return options.New(func(f *Factory) error {
		if method == format.MethodRans {
			return fmt.Errorf("header: general-purpose method must not be rans: %w", errs.ErrUnknownMethod)
		}
		codec, err := compress.ForMethod(method)
		if err != nil {
			return fmt.Errorf("header: general-purpose method: %w", err)
		}
		f.generalCodec = codec

		return nil
	})
}

// NewFactory creates a header planner with an empty selection memo.
func NewFactory(opts ...Option) (*Factory, error) {
	f := &Factory{
		bestEncodings: make(map[record.TagID]tagEncoding),
		generalCodec:  compress.GzipCodec{},
	}
	if err := options.Apply(f, opts...); err != nil {
		return nil, err
	}

	return f, nil
}

// Build plans the compression header for one batch of records.
//
// matrix overrides the derived substitution matrix when non-nil; sorted
// states that the batch is coordinate-sorted, which stores the
// alignment-position series as successive deltas.
//
// Build mutates the records as documented outputs of planning: tags are
// sorted ascending by packed id, TagListIndex receives each record's tag
// dictionary row, and unassigned substitution codes are filled from the
// matrix. The mutations complete before Build returns.
func (f *Factory) Build(records []*record.Record, matrix *SubstitutionMatrix, sorted bool) (*CompressionHeader, error) {
	f.scratch = pool.GetTagValueBuffer()
	defer func() {
		pool.PutTagValueBuffer(f.scratch)
		f.scratch = nil
	}()

	h := &CompressionHeader{
		Encodings:    make(map[format.DataSeries]encoding.Params, len(seriesPolicy)),
		TagEncodings: make(map[record.TagID]encoding.Params),
		Compressors:  make(map[int32]compress.Codec),
		APDelta:      sorted,
	}

	for _, s := range format.AllDataSeries() {
		h.Encodings[s] = encoding.Null()
	}
	f.applySeriesPolicy(h)

	h.TagDictionary = buildTagDictionary(records)

	if matrix == nil {
		matrix = buildSubstitutionMatrix(records)
	}
	h.SubstitutionMatrix = matrix
	fillSubstitutionCodes(records, matrix)

	for _, id := range distinctTagIDs(records) {
		enc, err := f.selectForTag(records, id)
		if err != nil {
			return nil, err
		}
		blockID := int32(id)
		h.TagEncodings[id] = enc.params
		h.Compressors[blockID] = enc.codec
		h.ExternalIDs = append(h.ExternalIDs, blockID)
	}

	return h, nil
}

// seriesPolicy fixes the encoding and compressor of every registered data
// series. The choices are baked in, not derived from data: these series
// have known statistical shapes. Quality scores and bases ride order-1
// rANS (strong neighbour correlation), near-constant integer runs such as
// the reference id settle for order 0, byte-array series with no byte
// structure stay on the general-purpose method. BB and QQ are absent and
// keep the null scheme.
var seriesPolicy = []struct {
	series format.DataSeries
	kind   seriesKind
	method seriesMethod
}{
	{format.SeriesBA, kindExternal, methodRans1},
	{format.SeriesQS, kindExternal, methodRans1},
	{format.SeriesRN, kindByteArrayStop, methodGeneral},
	{format.SeriesIN, kindByteArrayStop, methodGeneral},
	{format.SeriesSC, kindByteArrayStop, methodGeneral},
	{format.SeriesBF, kindExternal, methodRans1},
	{format.SeriesCF, kindExternal, methodRans1},
	{format.SeriesRL, kindExternal, methodRans1},
	{format.SeriesRG, kindExternal, methodRans1},
	{format.SeriesNF, kindExternal, methodRans1},
	{format.SeriesNS, kindExternal, methodRans1},
	{format.SeriesTS, kindExternal, methodRans1},
	{format.SeriesRI, kindExternal, methodRans0},
	{format.SeriesAP, kindExternal, methodRans0},
	{format.SeriesTC, kindExternal, methodGeneral},
	{format.SeriesTN, kindExternal, methodGeneral},
	{format.SeriesFN, kindExternal, methodGeneral},
	{format.SeriesFP, kindExternal, methodGeneral},
	{format.SeriesDL, kindExternal, methodGeneral},
	{format.SeriesHC, kindExternal, methodGeneral},
	{format.SeriesPD, kindExternal, methodGeneral},
	{format.SeriesRS, kindExternal, methodGeneral},
	{format.SeriesMQ, kindExternal, methodGeneral},
	{format.SeriesMF, kindExternal, methodGeneral},
	{format.SeriesNP, kindExternal, methodGeneral},
	{format.SeriesTL, kindExternal, methodGeneral},
	{format.SeriesFC, kindExternal, methodGeneral},
	{format.SeriesBS, kindExternal, methodGeneral},
}

type seriesKind uint8

const (
	kindExternal seriesKind = iota
	kindByteArrayStop
)

type seriesMethod uint8

const (
	methodGeneral seriesMethod = iota
	methodRans0
	methodRans1
)

// applySeriesPolicy registers the fixed policy table, handing out external
// block ids monotonically from zero in table order.
func (f *Factory) applySeriesPolicy(h *CompressionHeader) {
	for blockID, entry := range seriesPolicy {
		id := int32(blockID)

		switch entry.kind {
		case kindExternal:
			h.Encodings[entry.series] = encoding.External(id)
		case kindByteArrayStop:
			h.Encodings[entry.series] = encoding.ByteArrayStop(stopByte, id)
		}

		switch entry.method {
		case methodRans0:
			h.Compressors[id] = compress.RansOrder0
		case methodRans1:
			h.Compressors[id] = compress.RansOrder1
		default:
			h.Compressors[id] = f.generalCodec
		}
		h.ExternalIDs = append(h.ExternalIDs, id)
	}
}

// fillSubstitutionCodes assigns the matrix rank code to every substitution
// feature that arrived without one.
func fillSubstitutionCodes(records []*record.Record, matrix *SubstitutionMatrix) {
	for _, rec := range records {
		for _, feat := range rec.Features {
			sub, ok := feat.(*record.Substitution)
			if !ok || sub.Code != record.NoCode {
				continue
			}
			sub.Code = int8(matrix.Code(sub.RefBase, sub.Base))
		}
	}
}

// distinctTagIDs returns every tag id observed in the batch, ascending.
// Records are already tag-sorted by the dictionary pass, so ascending order
// also matches within-record order.
func distinctTagIDs(records []*record.Record) []record.TagID {
	seen := make(map[record.TagID]struct{})
	for _, rec := range records {
		for _, tag := range rec.Tags {
			seen[tag.ID] = struct{}{}
		}
	}

	ids := make([]record.TagID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// selectForTag chooses the encoding scheme and block compressor for one tag
// id, memoized on the Factory. A memo hit reuses the decision of an earlier
// batch even though this batch's value distribution may differ; the trade
// is deliberate, re-trialing identical tags every batch costs more than the
// occasional stale choice.
func (f *Factory) selectForTag(records []*record.Record, id record.TagID) (tagEncoding, error) {
	if enc, ok := f.bestEncodings[id]; ok {
		return enc, nil
	}

	enc, err := f.analyzeTag(records, id)
	if err != nil {
		return tagEncoding{}, err
	}
	f.bestEncodings[id] = enc

	return enc, nil
}

// analyzeTag analyzes one tag id over the batch: the concatenated value
// bytes of every occurrence are trial-compressed to pick the block codec,
// then the scheme follows from the tag's value type and, for the variable
// types, the observed size distribution.
func (f *Factory) analyzeTag(records []*record.Record, id record.TagID) (tagEncoding, error) {
	blockID := int32(id)

	f.scratch.Reset()
	minLen, maxLen := -1, -1
	for _, rec := range records {
		for _, tag := range rec.Tags {
			if tag.ID != id {
				continue
			}
			_, _ = f.scratch.Write(tag.Value)
			if minLen < 0 || tag.Len() < minLen {
				minLen = tag.Len()
			}
			if tag.Len() > maxLen {
				maxLen = tag.Len()
			}
		}
	}

	codec, err := compress.BestCodec(f.scratch.Bytes())
	if err != nil {
		return tagEncoding{}, fmt.Errorf("header: tag %s: %w", id, err)
	}

	fixed := func(length int32) tagEncoding {
		return tagEncoding{
			params: encoding.ByteArrayLen(encoding.HuffmanConstant(length), encoding.External(blockID)),
			codec:  codec,
		}
	}

	switch id.Type() {
	case format.TagChar, format.TagInt8, format.TagUint8:
		return fixed(1), nil
	case format.TagInt16, format.TagUint16:
		return fixed(2), nil
	case format.TagInt32, format.TagUint32, format.TagFloat:
		return fixed(4), nil
	case format.TagString, format.TagArray:
		return f.analyzeVariableTag(id, codec, minLen, maxLen), nil
	default:
		return tagEncoding{}, fmt.Errorf("header: tag %s: type byte %q: %w",
			id.Name(), id.Type(), errs.ErrUnknownTagType)
	}
}

// analyzeVariableTag handles the 'Z' and 'B' types, whose serialized size
// varies per occurrence; the scheme follows the size distribution the
// caller observed. The concatenated values are still in the scratch buffer
// when the stop-byte scan needs them.
func (f *Factory) analyzeVariableTag(id record.TagID, codec compress.Codec, minLen, maxLen int) tagEncoding {
	blockID := int32(id)

	if minLen == maxLen {
		// Homogeneous after all: a constant length costs no bits.
		return tagEncoding{
			params: encoding.ByteArrayLen(encoding.HuffmanConstant(int32(minLen)), encoding.External(blockID)),
			codec:  codec,
		}
	}

	if id.Type() == format.TagString {
		return tagEncoding{
			params: encoding.ByteArrayStop(stopByte, blockID),
			codec:  codec,
		}
	}

	// Array values long enough that an unused byte value, if one exists,
	// beats carrying an explicit length stream.
	if minLen > byteArrayStopThreshold {
		if stop, ok := unusedByte(f.scratch.Bytes()); ok {
			return tagEncoding{
				params: encoding.ByteArrayStop(stop, blockID),
				codec:  codec,
			}
		}
	}

	return tagEncoding{
		params: encoding.ByteArrayLen(encoding.External(blockID), encoding.External(blockID)),
		codec:  codec,
	}
}

// unusedByte finds a byte value absent from data, usable as a stop
// sentinel.
func unusedByte(data []byte) (byte, bool) {
	var seen [256]bool
	for _, c := range data {
		seen[c] = true
	}
	for v := 0; v < 256; v++ {
		if !seen[v] {
			return byte(v), true
		}
	}

	return 0, false
}
