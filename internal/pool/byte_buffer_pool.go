// Package pool provides pooled byte buffers for the planner scratch space
// and for codec working storage.
package pool

import "sync"

// Default capacities and retention thresholds for the two buffer classes.
// Tag value buffers hold the concatenated values of one tag across a whole
// batch; block buffers hold per-block codec working state.
const (
	TagValueBufferDefaultSize  = 1024 * 1024     // 1MiB
	TagValueBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
	BlockBufferDefaultSize     = 1024 * 64       // 64KiB
	BlockBufferMaxThreshold    = 1024 * 1024     // 1MiB
)

// ByteBuffer is a growable byte slice with explicit capacity control.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, retaining the allocation for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Write appends data to the buffer, growing it as needed. It implements
// io.Writer and never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteByte appends a single byte. It implements io.ByteWriter and never
// fails.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. Small buffers grow by whole block classes, larger ones by a
// quarter of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := BlockBufferDefaultSize
	if cap(bb.B) > 4*BlockBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ExtendOrGrow extends the buffer length by n bytes, growing the capacity
// first when needed. The extended region is not zeroed.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	start := len(bb.B)
	if cap(bb.B)-start < n {
		bb.Grow(n)
	}
	bb.B = bb.B[:start+n]
}

// ByteBufferPool is a pool of ByteBuffers with an upper retention bound, so
// one oversized batch does not pin its peak allocation forever.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of the given initial
// capacity. Buffers whose capacity grew past maxThreshold are dropped on
// Put; a threshold of zero disables the bound.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	tagValueDefaultPool = NewByteBufferPool(TagValueBufferDefaultSize, TagValueBufferMaxThreshold)
	blockDefaultPool    = NewByteBufferPool(BlockBufferDefaultSize, BlockBufferMaxThreshold)
)

// GetTagValueBuffer retrieves a ByteBuffer from the tag value pool.
func GetTagValueBuffer() *ByteBuffer {
	return tagValueDefaultPool.Get()
}

// PutTagValueBuffer returns a ByteBuffer to the tag value pool.
func PutTagValueBuffer(bb *ByteBuffer) {
	tagValueDefaultPool.Put(bb)
}

// GetBlockBuffer retrieves a ByteBuffer from the block pool.
func GetBlockBuffer() *ByteBuffer {
	return blockDefaultPool.Get()
}

// PutBlockBuffer returns a ByteBuffer to the block pool.
func PutBlockBuffer(bb *ByteBuffer) {
	blockDefaultPool.Put(bb)
}
