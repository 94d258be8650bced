package bio

import (
	"math"
	"math/bits"
)

// Writer accumulates the byte encoding of a single top-level value.
//
// Raw multi-byte scalars (Uint16/Uint32/Uint64/Float32/Float64) are written
// big-endian, per the fixed wire format. The width-adaptive Fx/MFx integer
// payloads go through WriteUintLE instead, since those forms are
// little-endian by design.
type Writer struct {
	buf *Buffer
}

// NewWriter returns a Writer backed by a buffer drawn from the shared pool.
// Call Release when the writer is no longer needed.
func NewWriter() *Writer {
	return &Writer{buf: GetBuffer()}
}

// Bytes returns the bytes written so far. The slice is only valid until the
// next write or until Release is called.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

// Release returns the writer's buffer to the shared pool. The Writer must
// not be used afterward.
func (w *Writer) Release() {
	PutBuffer(w.buf)
	w.buf = nil
}

// WriteByte appends a single raw byte.
func (w *Writer) WriteByte(b byte) { w.buf.WriteByte(b) }

// WriteBytes appends p verbatim.
func (w *Writer) WriteBytes(p []byte) { w.buf.Write(p) }

// WriteUint16 appends v as two big-endian bytes.
func (w *Writer) WriteUint16(v uint16) {
	w.buf.Write([]byte{byte(v >> 8), byte(v)})
}

// WriteUint32 appends v as four big-endian bytes.
func (w *Writer) WriteUint32(v uint32) {
	w.buf.Write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

// WriteUint64 appends v as eight big-endian bytes.
func (w *Writer) WriteUint64(v uint64) {
	w.buf.Write([]byte{
		byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
		byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v),
	})
}

// WriteFloat32 appends v as its IEEE-754 bit pattern, big-endian.
func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }

// WriteFloat64 appends v as its IEEE-754 bit pattern, big-endian.
func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(math.Float64bits(v)) }

// WriteUintLE appends the low `width` bytes of v, little-endian. It is used
// exclusively for the Fx/MFx width-adaptive integer payloads, which are the
// one place the wire format departs from big-endian.
func (w *Writer) WriteUintLE(v uint64, width int) {
	w.buf.Grow(width)
	for i := range width {
		w.buf.WriteByte(byte(v >> (8 * i)))
	}
}

// PackUint32 appends n using the codec's variable-length packed-integer
// format: 7-bit groups, most-significant group first, continuation bit
// (0x80) set on every byte but the last. This is NOT the LEB128 varint
// used by encoding/binary; the group order is reversed.
func (w *Writer) PackUint32(n uint32) {
	if n == 0 {
		w.buf.WriteByte(0)
		return
	}

	shift := 31 - bits.LeadingZeros32(n)
	shift -= shift % 7

	for shift > 0 {
		w.buf.WriteByte(byte(n>>uint(shift))&0x7F | 0x80)
		shift -= 7
	}
	w.buf.WriteByte(byte(n & 0x7F))
}

// PackUint64 is the 64-bit analog of PackUint32.
func (w *Writer) PackUint64(n uint64) {
	if n == 0 {
		w.buf.WriteByte(0)
		return
	}

	shift := 63 - bits.LeadingZeros64(n)
	shift -= shift % 7

	for shift > 0 {
		w.buf.WriteByte(byte(n>>uint(shift))&0x7F | 0x80)
		shift -= 7
	}
	w.buf.WriteByte(byte(n & 0x7F))
}
