package rans

import (
	"github.com/arloliu/cram/errs"
	"github.com/arloliu/cram/internal/pool"
)

// encTable holds the encoder symbols of one context: one entry per byte
// value, with cumulative starts assigned in ascending symbol order.
type encTable [256]encSymbol

// build fills the table from a normalized frequency table (summing to
// totFreq) and returns it.
func (t *encTable) build(freq *[256]int) *encTable {
	start := uint32(0)
	for j, f := range freq {
		if f == 0 {
			continue
		}
		t[j].init(start, uint32(f), scaleBits)
		start += uint32(f)
	}

	return t
}

// decTable holds the decoder side of one context: per-symbol ranges plus
// the slot-to-symbol lookup covering the whole scaled interval.
type decTable struct {
	syms  [256]decSymbol
	slots [totFreq]byte
}

// build fills the table from a parsed frequency table. Frequencies must fit
// the scaled interval; overflow means the payload contradicts itself.
func (t *decTable) build(freq *[256]int) error {
	start := 0
	for j, f := range freq {
		if f == 0 {
			continue
		}
		if start+f > totFreq {
			return errs.ErrCorruptPayload
		}
		t.syms[j] = decSymbol{start: uint32(start), freq: uint32(f)}
		for s := start; s < start+f; s++ {
			t.slots[s] = byte(j)
		}
		start += f
	}

	return nil
}

// decodeAt maps the low slot bits of state x to a symbol and checks the
// slot actually falls inside the symbol's range, so unmapped slots from a
// short table surface as corruption instead of garbage output.
func (t *decTable) decodeAt(x uint32) (byte, decSymbol, error) {
	slot := x & (totFreq - 1)
	c := t.slots[slot]
	d := t.syms[c]
	if slot-d.start >= d.freq {
		return 0, d, errs.ErrCorruptPayload
	}

	return c, d, nil
}

// compressOrder0 encodes data as an order-0 block. len(data) > 0.
func compressOrder0(data []byte) []byte {
	var freq [256]int
	countFrequencies(data, &freq)
	normalizeFrequencies(&freq, len(data))

	var syms encTable
	syms.build(&freq)

	table := writeFrequencies(make([]byte, 0, 256), &freq)

	// Each encode step emits at most two bytes, plus four flushed states.
	bb := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(bb)
	bb.ExtendOrGrow(2*len(data) + 16)
	rb := newReverseBuffer(bb.Bytes())

	var x [4]uint32
	for i := range x {
		x[i] = lowBound
	}

	// Byte position p belongs to state p mod 4; symbols go in reverse so
	// the decoder reads forward.
	for i := len(data) - 1; i >= 0; i-- {
		j := i & 3
		x[j] = syms[data[i]].put(x[j], rb)
	}

	// State 3 flushes first so state 0 leads the stream.
	flush(x[3], rb)
	flush(x[2], rb)
	flush(x[1], rb)
	flush(x[0], rb)

	return assemble(Order0, table, rb.bytes(), len(data))
}

// decompressOrder0 decodes an order-0 payload into out, whose length is the
// declared raw size.
func decompressOrder0(br *byteReader, out []byte) error {
	var freq [256]int
	if err := readFrequencies(br, &freq, false); err != nil {
		return err
	}

	table := &decTable{}
	if err := table.build(&freq); err != nil {
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

	for i := range out {
		j := i & 3
		c, d, err := table.decodeAt(x[j])
		if err != nil {
			return err
		}
		out[i] = c

		xj, err := br.renorm(d.advance(x[j], scaleBits))
		if err != nil {
			return err
		}
		x[j] = xj
	}

	return nil
}
