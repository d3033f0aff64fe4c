// Package format defines the closed enums of the compression format: the
// fixed data series list, the encoding scheme identifiers, the external
// block compression methods, and the tag value type alphabet.
//
// The numeric values are part of the versioned wire contract owned by the
// container writer; they must not be renumbered.
package format

type (
	// DataSeries identifies one of the fixed record data series.
	DataSeries uint8
	// EncodingID identifies an encoding scheme in the compression header.
	EncodingID uint8
	// Method identifies an external block compression method.
	Method uint8
)

// The fixed data series, in canonical order. Two-letter mnemonics follow the
// wire format.
const (
	SeriesBF DataSeries = iota // SeriesBF carries the record bit flags.
	SeriesCF                   // SeriesCF carries the compression bit flags.
	SeriesRI                   // SeriesRI carries the reference id (multiref containers).
	SeriesRL                   // SeriesRL carries the read length.
	SeriesAP                   // SeriesAP carries the alignment position or delta.
	SeriesRG                   // SeriesRG carries the read group index.
	SeriesRN                   // SeriesRN carries the read name bytes.
	SeriesMF                   // SeriesMF carries the mate bit flags.
	SeriesNS                   // SeriesNS carries the mate reference sequence id.
	SeriesNP                   // SeriesNP carries the mate alignment start.
	SeriesTS                   // SeriesTS carries the template size.
	SeriesNF                   // SeriesNF carries the distance to the next fragment.
	SeriesTC                   // SeriesTC carries the tag count (v2 compatibility).
	SeriesTN                   // SeriesTN carries tag names and types (v2 compatibility).
	SeriesTL                   // SeriesTL carries the tag dictionary row index.
	SeriesFN                   // SeriesFN carries the read feature count.
	SeriesFC                   // SeriesFC carries the read feature operator bytes.
	SeriesFP                   // SeriesFP carries in-read feature positions.
	SeriesDL                   // SeriesDL carries deletion lengths.
	SeriesBB                   // SeriesBB carries verbatim base runs.
	SeriesQQ                   // SeriesQQ carries verbatim quality runs.
	SeriesBS                   // SeriesBS carries base substitution codes.
	SeriesIN                   // SeriesIN carries insertion bytes.
	SeriesRS                   // SeriesRS carries reference skip lengths.
	SeriesPD                   // SeriesPD carries padding lengths.
	SeriesHC                   // SeriesHC carries hard clip lengths.
	SeriesSC                   // SeriesSC carries soft clip bytes.
	SeriesMQ                   // SeriesMQ carries mapping qualities.
	SeriesBA                   // SeriesBA carries read base bytes.
	SeriesQS                   // SeriesQS carries quality score bytes.

	numDataSeries = iota
)

var seriesNames = [numDataSeries]string{
	"BF", "CF", "RI", "RL", "AP", "RG", "RN", "MF", "NS", "NP",
	"TS", "NF", "TC", "TN", "TL", "FN", "FC", "FP", "DL", "BB",
	"QQ", "BS", "IN", "RS", "PD", "HC", "SC", "MQ", "BA", "QS",
}

// AllDataSeries returns the full series list in canonical order.
//
// The returned slice is freshly allocated; callers may keep or reorder it.
func AllDataSeries() []DataSeries {
	all := make([]DataSeries, numDataSeries)
	for i := range all {
		all[i] = DataSeries(i)
	}

	return all
}

func (s DataSeries) String() string {
	if int(s) < len(seriesNames) {
		return seriesNames[s]
	}

	return "Unknown"
}

// Encoding scheme identifiers. Only Null, External, Huffman, ByteArrayLen
// and ByteArrayStop are ever produced by the planner; the remaining ids
// complete the versioned scheme list.
const (
	EncodingNull          EncodingID = 0
	EncodingExternal      EncodingID = 1
	EncodingGolomb        EncodingID = 2
	EncodingHuffman       EncodingID = 3
	EncodingByteArrayLen  EncodingID = 4
	EncodingByteArrayStop EncodingID = 5
	EncodingBeta          EncodingID = 6
	EncodingSubexp        EncodingID = 7
	EncodingGolombRice    EncodingID = 8
	EncodingGamma         EncodingID = 9
)

func (e EncodingID) String() string {
	switch e {
	case EncodingNull:
		return "Null"
	case EncodingExternal:
		return "External"
	case EncodingGolomb:
		return "Golomb"
	case EncodingHuffman:
		return "Huffman"
	case EncodingByteArrayLen:
		return "ByteArrayLen"
	case EncodingByteArrayStop:
		return "ByteArrayStop"
	case EncodingBeta:
		return "Beta"
	case EncodingSubexp:
		return "Subexp"
	case EncodingGolombRice:
		return "GolombRice"
	case EncodingGamma:
		return "Gamma"
	default:
		return "Unknown"
	}
}

// External block compression methods.
const (
	MethodRaw   Method = 0 // MethodRaw stores the block verbatim.
	MethodGzip  Method = 1 // MethodGzip is deflate in a gzip wrapper.
	MethodBzip2 Method = 2 // MethodBzip2 is the Burrows-Wheeler block compressor.
	MethodLzma  Method = 3 // MethodLzma is LZMA in an xz wrapper.
	MethodRans  Method = 4 // MethodRans is the static rANS coder (order in the payload).
)

func (m Method) String() string {
	switch m {
	case MethodRaw:
		return "Raw"
	case MethodGzip:
		return "Gzip"
	case MethodBzip2:
		return "Bzip2"
	case MethodLzma:
		return "Lzma"
	case MethodRans:
		return "Rans"
	default:
		return "Unknown"
	}
}

// Tag value type bytes, as stored in the low byte of a packed tag id. The
// alphabet follows the alignment record format; any other byte is rejected
// during planning.
const (
	TagChar   byte = 'A'
	TagInt8   byte = 'c'
	TagUint8  byte = 'C'
	TagInt16  byte = 's'
	TagUint16 byte = 'S'
	TagInt32  byte = 'i'
	TagUint32 byte = 'I'
	TagFloat  byte = 'f'
	TagString byte = 'Z'
	TagArray  byte = 'B'
)
