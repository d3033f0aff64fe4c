package rans

// encSymbol holds the constants for encoding one symbol, precomputed once
// per block so the per-symbol step divides by multiplying.
type encSymbol struct {
	xMax     uint32 // renormalization threshold for this symbol
	rcpFreq  uint32 // fixed-point reciprocal of the frequency
	bias     uint32
	cmplFreq uint32 // (1 << bits) - freq
	rcpShift uint32
}

// init precomputes the encoding constants from the symbol's cumulative
// start, frequency and table precision. freq must be at least 1 and the
// whole table must sum to 1 << bits.
func (s *encSymbol) init(start, freq, bits uint32) {
	s.xMax = ((lowBound >> bits) << 8) * freq
	s.cmplFreq = (1 << bits) - freq

	if freq < 2 {
		// A unit frequency has no usable reciprocal; q must come out as
		// x-1, so fold the correction into the bias.
		s.rcpFreq = ^uint32(0)
		s.rcpShift = 0
		s.bias = start + (1 << bits) - 1
	} else {
		// shift = ceil(log2(freq))
		shift := uint32(0)
		for freq > 1<<shift {
			shift++
		}
		s.rcpFreq = uint32(((uint64(1) << (shift + 31)) + uint64(freq) - 1) / uint64(freq))
		s.rcpShift = shift - 1
		s.bias = start
	}

	// The reciprocal multiply is done in 64 bits; folding the +32 into the
	// shift keeps the step to one multiply and one shift.
	s.rcpShift += 32
}

// put encodes the symbol into rb (written back to front) and returns the
// new state. Renormalization emits at most two bytes; the second test is
// the designed upper bound, not a loop.
func (s *encSymbol) put(x uint32, rb *reverseBuffer) uint32 {
	if s.xMax == 0 {
		panic("rans: encoding a zero-frequency symbol")
	}

	if x >= s.xMax {
		rb.put(byte(x))
		x >>= 8
		if x >= s.xMax {
			rb.put(byte(x))
			x >>= 8
		}
	}

	q := uint32((uint64(x) * uint64(s.rcpFreq)) >> s.rcpShift)

	return x + s.bias + q*s.cmplFreq
}

// decSymbol holds the table entry for decoding one symbol.
type decSymbol struct {
	start uint32
	freq  uint32
}

// advance maps the state past one decoded symbol. The caller renormalizes
// afterwards.
func (d decSymbol) advance(x uint32, bits uint32) uint32 {
	mask := uint32(1)<<bits - 1

	return d.freq*(x>>bits) + (x & mask) - d.start
}
