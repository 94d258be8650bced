package bio

import (
	"testing"

	"github.com/arloliu/wirekv/errs"
	"github.com/stretchr/testify/require"
)

func TestPackedUint32RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 17, 127, 128, 255, 256, 16384, 1_000_000, 0xFFFFFFFF}
	for _, v := range values {
		w := NewWriter()
		w.PackUint32(v)
		r := NewReader(w.Bytes())
		got, err := r.UnpackUint32()
		require.NoError(t, err)
		require.Equal(t, v, got)
		w.Release()
	}
}

func TestPackedUint32SingleByteForSmallValues(t *testing.T) {
	w := NewWriter()
	w.PackUint32(0x61)
	require.Equal(t, []byte{0x61}, w.Bytes())
	w.Release()
}

func TestPackedUint32MatchesMSBFirstGroups(t *testing.T) {
	// 300 = 0b1_0010_1100 -> groups of 7 bits, MSB first: 0b10 (continuation), 0b0101100
	w := NewWriter()
	w.PackUint32(300)
	require.Equal(t, []byte{0x82, 0x2C}, w.Bytes())
	w.Release()
}

func TestPackedUint64RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 128, 1 << 35, 1 << 62, 0xFFFFFFFFFFFFFFFF}
	for _, v := range values {
		w := NewWriter()
		w.PackUint64(v)
		r := NewReader(w.Bytes())
		got, err := r.UnpackUint64()
		require.NoError(t, err)
		require.Equal(t, v, got)
		w.Release()
	}
}

func TestUnpackUint32CorruptOnRunaway(t *testing.T) {
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80}
	r := NewReader(data)
	_, err := r.UnpackUint32()
	require.ErrorIs(t, err, errs.ErrCorrupt)
}

func TestRawBigEndianRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteUint16(0xABCD)
	w.WriteUint32(0x01020304)
	w.WriteUint64(0x0102030405060708)
	w.WriteFloat32(3.5)
	w.WriteFloat64(-2.25)

	r := NewReader(w.Bytes())
	u16, err := r.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0xABCD), u16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x01020304), u32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), u64)

	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	require.Equal(t, float32(3.5), f32)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, -2.25, f64)

	w.Release()
}

func TestWriteUintLERoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteUintLE(0x0F4240, 3) // 1_000_000
	require.Equal(t, []byte{0x40, 0x42, 0x0F}, w.Bytes())

	r := NewReader(w.Bytes())
	v, err := r.ReadUintLE(3)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0F4240), v)
	w.Release()
}
