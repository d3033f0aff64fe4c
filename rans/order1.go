package rans

import (
	"github.com/arloliu/cram/errs"
	"github.com/arloliu/cram/internal/pool"
)

// compressOrder1 encodes data as an order-1 block: each byte is modeled in
// the context of its predecessor. len(data) >= 4.
func compressOrder1(data []byte) []byte {
	// Context frequency rows, one per preceding byte value. The input is
	// split into four quarters, one per state; each quarter's first byte is
	// coded in context 0, so those pairs are counted there too.
	freq := &[256][256]int{}
	var total [256]int

	last := 0
	for _, c := range data {
		freq[last][c]++
		total[last]++
		last = int(c)
	}

	q := len(data) >> 2
	freq[0][data[q]]++
	freq[0][data[2*q]]++
	freq[0][data[3*q]]++
	total[0] += 3

	var syms [256]*encTable
	table := make([]byte, 0, 1024)
	rle := 0
	for i := 0; i < 256; i++ {
		if total[i] == 0 {
			continue
		}
		normalizeFrequencies(&freq[i], total[i])
		syms[i] = (&encTable{}).build(&freq[i])

		// Context byte with the same run-length form the inner tables use.
		if rle > 0 {
			rle--
		} else {
			table = append(table, byte(i))
			if i > 0 && total[i-1] > 0 {
				for rle = i + 1; rle < 256 && total[rle] > 0; rle++ {
				}
				rle -= i + 1
				table = append(table, byte(rle))
			}
		}
		table = writeFrequencies(table, &freq[i])
	}
	table = append(table, 0)

	bb := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(bb)
	bb.ExtendOrGrow(2*len(data) + 16)
	rb := newReverseBuffer(bb.Bytes())

	var x [4]uint32
	for i := range x {
		x[i] = lowBound
	}

	// Encoding runs in reverse per quarter: state s walks quarter s from its
	// end, encoding each byte in the context of its predecessor. State 3
	// carries the tail remainder beyond 4*q first.
	l := [4]byte{data[q-1], data[2*q-1], data[3*q-1], data[len(data)-1]}
	for i := len(data) - 2; i >= 4*q-1; i-- {
		c := data[i]
		x[3] = syms[c][l[3]].put(x[3], rb)
		l[3] = c
	}

	for i := q - 2; i >= 0; i-- {
		for s := 3; s >= 0; s-- {
			c := data[s*q+i]
			x[s] = syms[c][l[s]].put(x[s], rb)
			l[s] = c
		}
	}

	// Each quarter's first byte goes out in context 0.
	for s := 3; s >= 0; s-- {
		x[s] = syms[0][l[s]].put(x[s], rb)
	}

	flush(x[3], rb)
	flush(x[2], rb)
	flush(x[1], rb)
	flush(x[0], rb)

	return assemble(Order1, table, rb.bytes(), len(data))
}

// decompressOrder1 decodes an order-1 payload into out, whose length is the
// declared raw size.
func decompressOrder1(br *byteReader, out []byte) error {
	tables, err := readContextTables(br)
	if err != nil {
		return err
	}

	var x [4]uint32
	for i := range x {
		s, err := br.state()
		if err != nil {
			return err
		}
		x[i] = s
	}

	q := len(out) >> 2
	var l [4]byte
	pos := [4]int{0, q, 2 * q, 3 * q}

	step := func(s int) error {
		t := tables[l[s]]
		if t == nil {
			return errs.ErrCorruptPayload
		}
		c, d, err := t.decodeAt(x[s])
		if err != nil {
			return err
		}
		out[pos[s]] = c
		pos[s]++
		l[s] = c

		xs, err := br.renorm(d.advance(x[s], scaleBits))
		if err != nil {
			return err
		}
		x[s] = xs

		return nil
	}

	for i := 0; i < q; i++ {
		for s := 0; s < 4; s++ {
			if err := step(s); err != nil {
				return err
			}
		}
	}

	// Tail remainder rides on state 3.
	for pos[3] < len(out) {
		if err := step(3); err != nil {
			return err
		}
	}

	return nil
}

// readContextTables parses the order-1 table block: context bytes in the
// run-length form, each wrapping an inner order-0 frequency table. A stored
// frequency of zero inside a context means the full interval (legacy form
// for single-symbol contexts).
func readContextTables(br *byteReader) (*[256]*decTable, error) {
	tables := &[256]*decTable{}

	ctx, err := br.uint8()
	if err != nil {
		return nil, err
	}

	j := int(ctx)
	rle := 0
	for {
		var freq [256]int
		if err := readFrequencies(br, &freq, true); err != nil {
			return nil, err
		}
		if tables[j] != nil {
			return nil, errs.ErrCorruptPayload
		}
		t := &decTable{}
		if err := t.build(&freq); err != nil {
			return nil, err
		}
		tables[j] = t

		if rle > 0 {
			rle--
			j++
			if j > 255 {
				return nil, errs.ErrCorruptPayload
			}

			continue
		}

		next, ok := br.peek()
		if !ok {
			return nil, errs.ErrTruncatedInput
		}
		if int(next) == j+1 {
			_, _ = br.uint8()
			r, err := br.uint8()
			if err != nil {
				return nil, err
			}
			j = int(next)
			rle = int(r)

			continue
		}

		_, _ = br.uint8()
		if next == 0 {
			return tables, nil
		}
		j = int(next)
	}
}
