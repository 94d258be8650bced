// Package bio provides the byte-level I/O primitives the codec is built on:
// a pooled growable byte buffer for encoding, a byte-slice cursor for
// decoding, and the big-endian / little-endian / packed-integer routines
// every higher-level encoder and decoder in package codec calls into.
package bio

import "sync"

// defaultBufferSize is the initial capacity handed out by the buffer pool.
// Tuned for typical single-value encodes; large composite values simply
// grow past it.
const (
	defaultBufferSize = 256
	maxPooledCapacity  = 1 << 20 // 1MiB; larger buffers are discarded rather than pooled
)

// Buffer is a growable byte slice used to accumulate an encoded value.
// It is not safe for concurrent use.
type Buffer struct {
	b []byte
}

// NewBuffer allocates a Buffer with the given starting capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{b: make([]byte, 0, capacity)}
}

// Bytes returns the accumulated bytes. The slice is valid until the next
// mutating call on the Buffer.
func (buf *Buffer) Bytes() []byte { return buf.b }

// Len returns the number of bytes written so far.
func (buf *Buffer) Len() int { return len(buf.b) }

// Reset empties the buffer while retaining its backing array.
func (buf *Buffer) Reset() { buf.b = buf.b[:0] }

// Grow ensures at least n more bytes can be appended without reallocating.
func (buf *Buffer) Grow(n int) {
	if cap(buf.b)-len(buf.b) >= n {
		return
	}

	growBy := defaultBufferSize
	if cap(buf.b) > 4*defaultBufferSize {
		growBy = cap(buf.b) / 4
	}
	if growBy < n {
		growBy = n
	}

	next := make([]byte, len(buf.b), len(buf.b)+growBy)
	copy(next, buf.b)
	buf.b = next
}

// WriteByte appends a single byte, growing the buffer if necessary.
func (buf *Buffer) WriteByte(b byte) {
	buf.Grow(1)
	buf.b = append(buf.b, b)
}

// Write appends p, growing the buffer if necessary.
func (buf *Buffer) Write(p []byte) {
	buf.Grow(len(p))
	buf.b = append(buf.b, p...)
}

var bufferPool = sync.Pool{
	New: func() any { return NewBuffer(defaultBufferSize) },
}

// GetBuffer retrieves a reset Buffer from the shared pool.
func GetBuffer() *Buffer {
	buf, _ := bufferPool.Get().(*Buffer)
	return buf
}

// PutBuffer returns buf to the shared pool. Buffers that grew unreasonably
// large are dropped instead of retained, so one oversized value doesn't
// pin megabytes of memory for the lifetime of the process.
func PutBuffer(buf *Buffer) {
	if buf == nil {
		return
	}
	if cap(buf.b) > maxPooledCapacity {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
