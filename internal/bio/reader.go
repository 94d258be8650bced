package bio

import (
	"math"

	"github.com/arloliu/wirekv/errs"
)

// maxPackedIntBytes and maxPackedLongBytes bound how many continuation
// bytes UnpackUint32/UnpackUint64 will consume before declaring the stream
// corrupt: ceil(32/7) and ceil(64/7) respectively.
const (
	maxPackedIntBytes  = 5
	maxPackedLongBytes = 10
)

// Reader is a cursor over a byte slice produced by a Writer. It never
// allocates or copies the input; all reads are bounds-checked views into
// the original slice.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.data) - r.off }

// Off returns the current read offset, for diagnostics and back-reference bookkeeping.
func (r *Reader) Off() int { return r.off }

// ReadByte consumes and returns a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.off >= len(r.data) {
		return 0, errs.ErrUnexpectedEnd
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

// PeekByte returns the next byte without consuming it. ok is false at end of input.
func (r *Reader) PeekByte() (b byte, ok bool) {
	if r.off >= len(r.data) {
		return 0, false
	}
	return r.data[r.off], true
}

// ReadBytes consumes and returns the next n bytes. The returned slice
// aliases the Reader's underlying data and must not be retained past the
// lifetime of that data if it may be reused.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.data) {
		return nil, errs.ErrUnexpectedEnd
	}
	p := r.data[r.off : r.off+n]
	r.off += n
	return p, nil
}

// ReadUint16 consumes two big-endian bytes.
func (r *Reader) ReadUint16() (uint16, error) {
	p, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(p[0])<<8 | uint16(p[1]), nil
}

// ReadUint32 consumes four big-endian bytes.
func (r *Reader) ReadUint32() (uint32, error) {
	p, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3]), nil
}

// ReadUint64 consumes eight big-endian bytes.
func (r *Reader) ReadUint64() (uint64, error) {
	p, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := range 8 {
		v = v<<8 | uint64(p[i])
	}
	return v, nil
}

// ReadFloat32 consumes a big-endian IEEE-754 single.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 consumes a big-endian IEEE-754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadUintLE consumes width little-endian bytes and returns them as a
// uint64, zero-extended. It mirrors Writer.WriteUintLE for the Fx/MFx
// payloads.
func (r *Reader) ReadUintLE(width int) (uint64, error) {
	p, err := r.ReadBytes(width)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i, b := range p {
		v |= uint64(b) << (8 * i)
	}
	return v, nil
}

// UnpackUint32 reads a packed unsigned integer: 7-bit groups,
// most-significant group first, continuation bit (0x80) set on every byte
// but the last. Returns errs.ErrCorrupt if the sequence does not terminate
// within 5 bytes.
func (r *Reader) UnpackUint32() (uint32, error) {
	var v uint32
	for i := 0; i < maxPackedIntBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, errs.ErrCorrupt
}

// UnpackUint64 is the 64-bit analog of UnpackUint32, terminating within 10 bytes.
func (r *Reader) UnpackUint64() (uint64, error) {
	var v uint64
	for i := 0; i < maxPackedLongBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		v = v<<7 | uint64(b&0x7F)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, errs.ErrCorrupt
}
