package codec

import (
	"github.com/arloliu/wirekv/internal/bio"
	satoriuuid "github.com/satori/go.uuid"
)

// writeInstant writes a 64-bit millisecond timestamp (DATE tag payload).
func writeInstant(w *bio.Writer, v Instant) {
	w.WriteByte(byte(TagDate))
	w.WriteUint64(uint64(v))
}

func readInstant(r *bio.Reader) (Instant, error) {
	u, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return Instant(u), nil
}

// writeUUID writes the two 64-bit halves in (most-significant,
// least-significant) order, matching java.util.UUID's wire layout.
func writeUUID(w *bio.Writer, v UUID) {
	w.WriteByte(byte(TagUUID))
	w.WriteUint64(v.Hi)
	w.WriteUint64(v.Lo)
}

func readUUID(r *bio.Reader) (UUID, error) {
	hi, err := r.ReadUint64()
	if err != nil {
		return UUID{}, err
	}
	lo, err := r.ReadUint64()
	if err != nil {
		return UUID{}, err
	}
	return UUID{Hi: hi, Lo: lo}, nil
}

// FromSatori converts a github.com/satori/go.uuid value into the codec's
// wire-shaped UUID (most-significant/least-significant 64-bit halves), so
// callers that already carry satori UUIDs can hand them to Write directly
// instead of building a UUID literal by hand.
func FromSatori(u satoriuuid.UUID) UUID {
	b := u.Bytes()
	return UUID{
		Hi: beUint64(b[0:8]),
		Lo: beUint64(b[8:16]),
	}
}

// ToSatori is the inverse of FromSatori.
func (u UUID) ToSatori() satoriuuid.UUID {
	var b [16]byte
	putBeUint64(b[0:8], u.Hi)
	putBeUint64(b[8:16], u.Lo)
	out, _ := satoriuuid.FromBytes(b[:])
	return out
}

func beUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func putBeUint64(b []byte, v uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}
