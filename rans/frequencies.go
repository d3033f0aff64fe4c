package rans

import "github.com/arloliu/cram/errs"

// countFrequencies tallies byte occurrences into freq.
func countFrequencies(data []byte, freq *[256]int) {
	for _, c := range data {
		freq[c]++
	}
}

// normalizeFrequencies rescales freq, whose non-zero entries sum to total,
// so they sum to exactly totFreq with every present symbol keeping at least
// a unit share. The rounding error lands on the largest symbol; if shaving
// it there would cost the symbol its entire share, the whole table is
// rescaled slightly low and the pass repeats.
func normalizeFrequencies(freq *[256]int, total int) {
	p := float64(totFreq) / float64(total)
	for {
		sum := 0
		m, maxIdx := 0, 0
		for j, f := range freq {
			if f == 0 {
				continue
			}
			if m < f {
				m, maxIdx = f, j
			}
			if f = int(float64(f) * p); f == 0 {
				f = 1
			}
			freq[j] = f
			sum += f
		}

		excess := sum - totFreq
		if excess <= 0 || freq[maxIdx] > excess {
			freq[maxIdx] -= excess
			return
		}
		p = 0.98
	}
}

// writeFrequencies appends the wire form of one frequency table to out and
// returns the extended slice: present symbols ascending, each symbol byte
// followed by its frequency, with a run-length byte replacing the symbol
// bytes of a consecutive run, and a terminating zero.
func writeFrequencies(out []byte, freq *[256]int) []byte {
	rle := 0
	for j := 0; j < 256; j++ {
		f := freq[j]
		if f == 0 {
			continue
		}

		if rle > 0 {
			rle--
		} else {
			out = append(out, byte(j))
			if j > 0 && freq[j-1] > 0 {
				// Second consecutive symbol: emit the length of the rest
				// of the run instead of each symbol byte.
				for rle = j + 1; rle < 256 && freq[rle] > 0; rle++ {
				}
				rle -= j + 1
				out = append(out, byte(rle))
			}
		}

		if f >= 128 {
			out = append(out, byte(128|f>>8), byte(f))
		} else {
			out = append(out, byte(f))
		}
	}

	return append(out, 0)
}

// readFrequencies parses one frequency table into freq, mirroring
// writeFrequencies. When zeroIsFull is set, a stored frequency of zero
// means a full-range symbol (legacy form for single-symbol contexts).
func readFrequencies(br *byteReader, freq *[256]int, zeroIsFull bool) error {
	sym, err := br.uint8()
	if err != nil {
		return err
	}

	j := int(sym)
	rle := 0
	for {
		f, err := readFreq(br)
		if err != nil {
			return err
		}
		if f == 0 && zeroIsFull {
			f = totFreq
		}
		freq[j] = f

		if rle > 0 {
			rle--
			j++
			if j > 255 {
				return errs.ErrCorruptPayload
			}

			continue
		}

		next, ok := br.peek()
		if !ok {
			return errs.ErrTruncatedInput
		}
		if int(next) == j+1 {
			// Explicit run start: the symbol byte, then the run length.
			_, _ = br.uint8()
			r, err := br.uint8()
			if err != nil {
				return err
			}
			j = int(next)
			rle = int(r)

			continue
		}

		_, _ = br.uint8()
		if next == 0 {
			return nil
		}
		j = int(next)
	}
}

// readFreq parses the one- or two-byte frequency form.
func readFreq(br *byteReader) (int, error) {
	c, err := br.uint8()
	if err != nil {
		return 0, err
	}

	f := int(c)
	if f >= 128 {
		c2, err := br.uint8()
		if err != nil {
			return 0, err
		}
		f = (f&127)<<8 | int(c2)
	}

	return f, nil
}
