package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayRoundTrip(t *testing.T) {
	cases := []Value{
		ByteArray{},
		ByteArray{7, 7, 7},
		ByteArray{1, 2, 3, 0xFF, 0x80},
		BoolArray{true, false, false, false, false, false, false, false},
		BoolArray{},
		BoolArray{true, true, true, false, true, false, false, false, true},
		ShortArray{-1, 0, 1, 30000, -30000},
		CharArray{0, 1, 65535},
		FloatArray{-1, 0, 1, 3.5},
		DoubleArray{-1, 0, 1, 2.71828},
		IntArray{1, 2, -1},
		IntArray{},
		IntArray{1000, -1000, 40000},
		IntArray{1 << 30, -(1 << 30)},
		LongArray{0, 1, -1},
		LongArray{},
		LongArray{1 << 40, -(1 << 40)},
		LongArray{1 << 20, -(1 << 20)},
		LongArray{1, 2, 3},
	}
	for _, v := range cases {
		got := roundTrip(t, v)
		require.Equal(t, v, got, "round-trip mismatch for %#v", v)
	}
}

func TestByteArrayAllEqualEncoding(t *testing.T) {
	b, err := Write(ByteArray{7, 7, 7})
	require.NoError(t, err)
	require.Equal(t, []byte{byte(TagArrayByteAllEqual), 0x03, 0x07}, b)
}

func TestIntArrayByteEncoding(t *testing.T) {
	b, err := Write(IntArray{1, 2, -1})
	require.NoError(t, err)
	require.Equal(t, []byte{byte(TagArrayIntByte), 0x03, 0x01, 0x02, 0xFF}, b)
}

func TestBoolArrayBitOrder(t *testing.T) {
	b, err := Write(BoolArray{true, false, false, false, false, false, false, false})
	require.NoError(t, err)
	require.Equal(t, []byte{byte(TagArrayBoolean), 0x08, 0x01}, b)
}
