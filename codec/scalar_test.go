package codec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wirekv/errs"
)

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	b, err := Write(v)
	require.NoError(t, err)
	got, err := Decode(b)
	require.NoError(t, err)
	return got
}

func TestScalarRoundTrip(t *testing.T) {
	cases := []Value{
		Null,
		Bool(true),
		Bool(false),
		Byte(-1), Byte(0), Byte(1), Byte(42), Byte(-100),
		Char(0), Char(1), Char(200), Char(40000),
		Short(-1), Short(0), Short(1), Short(100), Short(-100), Short(30000), Short(-30000),
		Int(-9), Int(16), Int(17), Int(256), Int(-1_000_000), Int(2_000_000_000),
		Long(-9), Long(16), Long(17), Long(1 << 40), Long(-(1 << 40)),
		Float32(-1), Float32(0), Float32(1), Float32(200), Float32(3.14159),
		Float64(-1), Float64(0), Float64(1), Float64(200), Float64(100000), Float64(2.718281828),
		Str(""), Str("abc"), Str("a longer string that exceeds the inline tag budget"),
		Instant(1_700_000_000_000),
		UUID{Hi: 0x0102030405060708, Lo: 0x090A0B0C0D0E0F10},
		ClassToken("com.example.Widget"),
	}

	for _, v := range cases {
		got := roundTrip(t, v)
		require.Equal(t, v, got, "round-trip mismatch for %#v", v)
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	vals := []*big.Int{
		big.NewInt(0),
		big.NewInt(-123456789),
		new(big.Int).Lsh(big.NewInt(1), 200),
		new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 200)),
	}
	for _, v := range vals {
		got := roundTrip(t, BigInt{V: v})
		gotBI, ok := got.(BigInt)
		require.True(t, ok)
		require.Zero(t, v.Cmp(gotBI.V), "BigInt round-trip mismatch for %s", v.String())
	}
}

func TestBigDecimalRoundTrip(t *testing.T) {
	cases := []BigDecimal{
		{Unscaled: big.NewInt(12345), Scale: 2},
		{Unscaled: big.NewInt(-12345), Scale: -3},
	}
	for _, v := range cases {
		got := roundTrip(t, v)
		gotBD, ok := got.(BigDecimal)
		require.True(t, ok)
		require.Zero(t, v.Unscaled.Cmp(gotBD.Unscaled))
		require.Equal(t, v.Scale, gotBD.Scale)
	}
}

func TestEncodeIntLiteralAndWidthTags(t *testing.T) {
	tests := []struct {
		v    int32
		want []byte
	}{
		{-9, []byte{byte(TagIntLiteralBase)}},
		{16, []byte{byte(TagIntLiteralBase + 25)}},
		{17, []byte{byte(TagIntF1), 0x11}},
		{256, []byte{byte(TagIntF2), 0x00, 0x01}},
		{-1_000_000, []byte{byte(TagIntMF3), 0x40, 0x42, 0x0F}},
	}
	for _, tt := range tests {
		b, err := Write(Int(tt.v))
		require.NoError(t, err)
		require.Equal(t, tt.want, b, "encode(%d)", tt.v)
	}
}

func TestEncodeNullAndBool(t *testing.T) {
	b, err := Write(Null)
	require.NoError(t, err)
	require.Equal(t, []byte{byte(TagNull)}, b)

	b, err = Write(Bool(true))
	require.NoError(t, err)
	require.Equal(t, []byte{byte(TagBooleanTrue)}, b)
}

func TestEncodeStringInline(t *testing.T) {
	b, err := Write(Str(""))
	require.NoError(t, err)
	require.Equal(t, []byte{byte(TagString0)}, b)

	b, err = Write(Str("abc"))
	require.NoError(t, err)
	require.Equal(t, []byte{byte(TagString0 + 3), 0x61, 0x62, 0x63}, b)
}

func TestPoisonTagIsCorrupt(t *testing.T) {
	_, err := Decode([]byte{0x00})
	require.ErrorIs(t, err, errs.ErrCorrupt)
}

func TestReadHintedCapacityZeroReturnsNull(t *testing.T) {
	v, err := Read([]byte{0xFF}, 0)
	require.NoError(t, err)
	require.Equal(t, Null, v)
}
