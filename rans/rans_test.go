package rans

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cram/errs"
)

func testInputs() map[string][]byte {
	rng := rand.New(rand.NewSource(42))

	random := make([]byte, 4096)
	rng.Read(random)

	skewed := make([]byte, 8192)
	for i := range skewed {
		// Quality-score-like distribution: few symbols dominate.
		skewed[i] = byte('!' + rng.Intn(8))
		if rng.Intn(100) == 0 {
			skewed[i] = byte('!' + rng.Intn(40))
		}
	}

	allValues := make([]byte, 256)
	for i := range allValues {
		allValues[i] = byte(i)
	}

	return map[string][]byte{
		"single byte":     {0x41},
		"two bytes":       {0x41, 0x43},
		"three bytes":     {0x41, 0x43, 0x47},
		"four bytes":      {0x41, 0x43, 0x47, 0x54},
		"uniform run":     bytes.Repeat([]byte{0x7F}, 1000),
		"short text":      []byte("GATTACA"),
		"repetitive":      bytes.Repeat([]byte("ACGTACGGT"), 300),
		"skewed":          skewed,
		"random":          random,
		"all byte values": allValues,
		"remainder 1":     bytes.Repeat([]byte("ACGT"), 16)[:61],
		"remainder 2":     bytes.Repeat([]byte("ACGT"), 16)[:62],
		"remainder 3":     bytes.Repeat([]byte("ACGT"), 16)[:63],
	}
}

func TestCompressRoundTrip(t *testing.T) {
	for _, order := range []Order{Order0, Order1} {
		for name, data := range testInputs() {
			t.Run(order.String()+"/"+name, func(t *testing.T) {
				comp, err := Compress(data, order)
				require.NoError(t, err)

				got, err := Decompress(comp)
				require.NoError(t, err)
				require.Equal(t, data, got)
			})
		}
	}
}

func TestCompressEmpty(t *testing.T) {
	for _, order := range []Order{Order0, Order1} {
		comp, err := Compress(nil, order)
		require.NoError(t, err)
		require.Empty(t, comp)

		got, err := Decompress(comp)
		require.NoError(t, err)
		require.Empty(t, got)
	}
}

func TestCompressInvalidOrder(t *testing.T) {
	_, err := Compress([]byte("abc"), Order(2))
	require.ErrorIs(t, err, errs.ErrInvalidOrder)
}

func TestCompressShortInputForcesOrder0(t *testing.T) {
	for _, data := range [][]byte{{1}, {1, 2}, {1, 2, 3}} {
		comp, err := Compress(data, Order1)
		require.NoError(t, err)
		require.Equal(t, byte(Order0), comp[0], "len %d", len(data))

		got, err := Decompress(comp)
		require.NoError(t, err)
		require.Equal(t, data, got)
	}
}

func TestBlockPrefix(t *testing.T) {
	data := bytes.Repeat([]byte("ACGT"), 100)
	for _, order := range []Order{Order0, Order1} {
		comp, err := Compress(data, order)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(comp), prefixLen)

		require.Equal(t, byte(order), comp[0])
		require.Equal(t, uint32(len(comp)-prefixLen), binary.LittleEndian.Uint32(comp[1:5]))
		require.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(comp[5:9]))
	}
}

func TestDecompressCorruptInput(t *testing.T) {
	valid, err := Compress(bytes.Repeat([]byte("ACGT"), 64), Order1)
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{
			name:    "short prefix",
			mutate:  func(b []byte) []byte { return b[:5] },
			wantErr: errs.ErrTruncatedInput,
		},
		{
			name: "bad order byte",
			mutate: func(b []byte) []byte {
				b[0] = 7
				return b
			},
			wantErr: errs.ErrInvalidOrder,
		},
		{
			name:    "truncated payload",
			mutate:  func(b []byte) []byte { return b[:len(b)-4] },
			wantErr: errs.ErrCorruptPayload,
		},
		{
			name: "declared size mismatch",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[1:5], uint32(len(b)))
				return b
			},
			wantErr: errs.ErrCorruptPayload,
		},
		{
			name: "absurd raw size",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[5:9], 1<<31-1)
				return b
			},
			wantErr: errs.ErrCorruptPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := append([]byte(nil), valid...)
			_, err := Decompress(tt.mutate(b))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecompressForeignBytesNeverPanics(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		b := make([]byte, rng.Intn(64))
		rng.Read(b)
		if len(b) >= prefixLen {
			// Keep the prefix self-consistent so decoding reaches the
			// table and payload parsers.
			b[0] = byte(rng.Intn(2))
			binary.LittleEndian.PutUint32(b[1:5], uint32(len(b)-prefixLen))
			binary.LittleEndian.PutUint32(b[5:9], uint32(rng.Intn(256)))
		}
		require.NotPanics(t, func() {
			_, _ = Decompress(b) //nolint:errcheck // corrupt by design
		})
	}
}

func TestOrder1BeatsOrder0OnContextualData(t *testing.T) {
	// A first-order source: the successor is usually predictable from its
	// predecessor, while the order-0 marginal stays near uniform.
	data := make([]byte, 16384)
	rng := rand.New(rand.NewSource(99))
	prev := byte(0)
	for i := range data {
		if rng.Intn(100) < 95 {
			data[i] = prev + 1
		} else {
			data[i] = byte(rng.Intn(256))
		}
		prev = data[i]
	}

	c0, err := Compress(data, Order0)
	require.NoError(t, err)
	c1, err := Compress(data, Order1)
	require.NoError(t, err)
	require.Less(t, len(c1), len(c0))
}

// encodeOne runs the symbol primitives directly with a single state, the
// way the block coder does per interleaved lane.
func encodeOne(t *testing.T, data []byte, freq *[256]int, bits uint32) []byte {
	t.Helper()

	var syms [256]encSymbol
	start := uint32(0)
	for j, f := range freq {
		if f == 0 {
			continue
		}
		syms[j].init(start, uint32(f), bits)
		start += uint32(f)
	}
	require.Equal(t, uint32(1)<<bits, start, "frequencies must sum to 1<<bits")

	buf := make([]byte, 2*len(data)+4)
	rb := newReverseBuffer(buf)

	x := uint32(lowBound)
	for i := len(data) - 1; i >= 0; i-- {
		x = syms[data[i]].put(x, rb)
	}
	flush(x, rb)

	return rb.bytes()
}

func decodeOne(t *testing.T, stream []byte, n int, freq *[256]int, bits uint32) []byte {
	t.Helper()

	var syms [256]decSymbol
	slots := make([]byte, 1<<bits)
	start := uint32(0)
	for j, f := range freq {
		if f == 0 {
			continue
		}
		syms[j] = decSymbol{start: start, freq: uint32(f)}
		for s := start; s < start+uint32(f); s++ {
			slots[s] = byte(j)
		}
		start += uint32(f)
	}

	br := &byteReader{src: stream}
	x, err := br.state()
	require.NoError(t, err)

	mask := uint32(1)<<bits - 1
	out := make([]byte, n)
	for i := range out {
		c := slots[x&mask]
		out[i] = c

		x = syms[c].advance(x, bits)
		x, err = br.renorm(x)
		require.NoError(t, err)
	}
	require.Equal(t, uint32(lowBound), x, "state must unwind to its seed")

	return out
}

func TestSymbolPrimitivesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))

	for _, bits := range []uint32{8, 12, 16} {
		// A four-symbol alphabet with uneven shares; the remainder of the
		// interval lands on the last symbol.
		var freq [256]int
		tot := 1 << bits
		freq['A'] = tot / 2
		freq['C'] = tot / 4
		freq['G'] = tot / 8
		freq['T'] = tot - freq['A'] - freq['C'] - freq['G']

		data := make([]byte, 2000)
		alphabet := []byte("ACGT")
		for i := range data {
			data[i] = alphabet[rng.Intn(4)]
		}

		stream := encodeOne(t, data, &freq, bits)
		got := decodeOne(t, stream, len(data), &freq, bits)
		require.Equal(t, data, got, "bits=%d", bits)
	}
}

func TestSymbolPrimitivesUnitFrequency(t *testing.T) {
	// Frequency 1 exercises the degenerate reciprocal path.
	var freq [256]int
	freq['x'] = 1
	freq['y'] = 1
	freq['z'] = (1 << scaleBits) - 2

	data := []byte("zzxzzyzzzxyzzz")
	stream := encodeOne(t, data, &freq, scaleBits)
	got := decodeOne(t, stream, len(data), &freq, scaleBits)
	require.Equal(t, data, got)
}

func TestEncodeZeroFrequencySymbolPanics(t *testing.T) {
	var s encSymbol // never initialized: xMax == 0
	rb := newReverseBuffer(make([]byte, 8))
	require.Panics(t, func() {
		s.put(lowBound, rb)
	})
}

func TestNormalizeFrequencies(t *testing.T) {
	tests := []struct {
		name string
		fill func(f *[256]int) int
	}{
		{
			name: "two symbols",
			fill: func(f *[256]int) int {
				f['a'], f['b'] = 3, 1
				return 4
			},
		},
		{
			name: "single symbol",
			fill: func(f *[256]int) int {
				f['q'] = 17
				return 17
			},
		},
		{
			name: "many rare symbols force rescale",
			fill: func(f *[256]int) int {
				total := 0
				for i := 0; i < 256; i++ {
					f[i] = 1
					total++
				}
				f[0] = 100000
				return total + 99999
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var freq [256]int
			total := tt.fill(&freq)
			normalizeFrequencies(&freq, total)

			sum := 0
			for _, f := range freq {
				require.GreaterOrEqual(t, f, 0)
				sum += f
			}
			require.Equal(t, totFreq, sum)
		})
	}
}

func TestFrequencyTableRoundTrip(t *testing.T) {
	var freq [256]int
	freq['A'] = 2000
	freq['B'] = 1000
	freq['C'] = 500
	freq['D'] = 96
	freq['z'] = 500

	wire := writeFrequencies(nil, &freq)

	var got [256]int
	br := &byteReader{src: wire}
	require.NoError(t, readFrequencies(br, &got, false))
	require.Equal(t, freq, got)
	require.Equal(t, len(wire), br.pos, "table must consume its own terminator")
}

func BenchmarkCompressOrder0(b *testing.B) {
	data := benchData()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Compress(data, Order0) //nolint:errcheck
	}
}

func BenchmarkCompressOrder1(b *testing.B) {
	data := benchData()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Compress(data, Order1) //nolint:errcheck
	}
}

func BenchmarkDecompressOrder1(b *testing.B) {
	comp, _ := Compress(benchData(), Order1) //nolint:errcheck
	b.SetBytes(int64(len(benchData())))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Decompress(comp) //nolint:errcheck
	}
}

func benchData() []byte {
	rng := rand.New(rand.NewSource(5))
	data := make([]byte, 64*1024)
	for i := range data {
		data[i] = byte('!' + rng.Intn(40))
	}

	return data
}
