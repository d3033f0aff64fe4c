package header

import (
	"github.com/arloliu/cram/record"
)

// Bases of the substitution alphabet in canonical order. Codes are always
// assigned and packed in this order.
var substBases = [5]byte{'A', 'C', 'G', 'T', 'N'}

// freqTableSize covers every base byte the format uses, lower-case and
// ambiguity codes included.
const freqTableSize = 200

// SubstitutionMatrix maps reference-base/read-base pairs to compact rank
// codes. Codes are local to each reference base: 0 names that base's most
// frequently observed alternative, not a globally sorted value.
type SubstitutionMatrix struct {
	// codes[r][b] is the rank of alternative b for reference base r, both
	// indexed in canonical base order.
	codes [5][4]byte
	// bases[r][c] inverts codes: the base byte ranked c under reference
	// base r.
	bases [5][4]byte
}

// baseIndex maps a base byte to its canonical index, folding lower case.
// Bytes outside the alphabet map to N: substitutions on ambiguity codes are
// modeled with the catch-all base, as the frequency table does.
func baseIndex(b byte) int {
	switch b {
	case 'A', 'a':
		return 0
	case 'C', 'c':
		return 1
	case 'G', 'g':
		return 2
	case 'T', 't':
		return 3
	default:
		return 4
	}
}

// NewSubstitutionMatrix derives the rank codes from a frequency table
// indexed by raw reference-base and read-base byte values. For every
// reference base the four alternatives are ranked by descending frequency,
// ties resolved in canonical base order, so codes form the dense range 0-3.
func NewSubstitutionMatrix(freq *[freqTableSize][freqTableSize]int64) *SubstitutionMatrix {
	m := &SubstitutionMatrix{}

	for r, refBase := range substBases {
		// Fold counts onto the canonical alphabet; lower-case observations
		// belong to the same base.
		var counts [5]int64
		for b := 0; b < freqTableSize; b++ {
			row := int(refBase)
			counts[baseIndex(byte(b))] += freq[row][b] + freq[row+'a'-'A'][b]
		}

		// Rank the four alternatives by descending count; the selection scan
		// is stable in canonical order, so ties land on the earlier base.
		var used [5]bool
		used[r] = true
		for code := byte(0); code < 4; code++ {
			pick := -1
			for b := 0; b < 5; b++ {
				if used[b] {
					continue
				}
				if pick < 0 || counts[b] > counts[pick] {
					pick = b
				}
			}
			used[pick] = true
			m.bases[r][code] = substBases[pick]
			m.codes[r][altSlot(r, pick)] = code
		}
	}

	return m
}

// altSlot maps a canonical base index to its slot among the four
// alternatives of reference base r (the canonical order with r removed).
func altSlot(r, b int) int {
	if b > r {
		return b - 1
	}

	return b
}

// Code returns the rank code of read base under the reference base.
// Look-ups are case-insensitive; a read base equal to the reference base is
// not a substitution and degenerates to the catch-all alternative.
func (m *SubstitutionMatrix) Code(refBase, base byte) byte {
	r := baseIndex(refBase)
	b := baseIndex(base)
	if b == r {
		b = 4
		if r == 4 {
			b = 0
		}
	}

	return m.codes[r][altSlot(r, b)]
}

// Base returns the read base ranked code under the reference base.
func (m *SubstitutionMatrix) Base(refBase, code byte) byte {
	return m.bases[baseIndex(refBase)][code&3]
}

// Encode packs the matrix into its five-byte wire form: one byte per
// reference base in canonical order, holding the 2-bit codes of the four
// alternatives in canonical order from the high bits down.
func (m *SubstitutionMatrix) Encode() [5]byte {
	var out [5]byte
	for r := range substBases {
		var b byte
		for slot := 0; slot < 4; slot++ {
			b = b<<2 | m.codes[r][slot]&3
		}
		out[r] = b
	}

	return out
}

// ParseSubstitutionMatrix rebuilds a matrix from its five-byte wire form.
func ParseSubstitutionMatrix(wire [5]byte) *SubstitutionMatrix {
	m := &SubstitutionMatrix{}
	for r := range substBases {
		for slot := 0; slot < 4; slot++ {
			code := wire[r] >> (2 * (3 - slot)) & 3
			m.codes[r][slot] = code

			alt := slot
			if alt >= r {
				alt++
			}
			m.bases[r][code] = substBases[alt]
		}
	}

	return m
}

// buildSubstitutionMatrix tabulates every substitution feature in the batch
// and derives the rank codes from the observed frequencies.
func buildSubstitutionMatrix(records []*record.Record) *SubstitutionMatrix {
	freq := &[freqTableSize][freqTableSize]int64{}
	for _, rec := range records {
		for _, f := range rec.Features {
			sub, ok := f.(*record.Substitution)
			if !ok {
				continue
			}
			if int(sub.RefBase) < freqTableSize && int(sub.Base) < freqTableSize {
				freq[sub.RefBase][sub.Base]++
			}
		}
	}

	return NewSubstitutionMatrix(freq)
}
