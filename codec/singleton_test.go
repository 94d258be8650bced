package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingletonEncodeShape(t *testing.T) {
	b, err := Write(Singletons.StringKeyCodec)
	require.NoError(t, err)
	require.Equal(t, []byte{byte(TagMapDB), byte(SubIDStringKeyCodec)}, b)
}

func TestSingletonRoundTripIsStablePointer(t *testing.T) {
	for _, s := range []*Singleton{
		Singletons.PositiveLongKeyCodec,
		Singletons.PositiveIntKeyCodec,
		Singletons.StringKeyCodec,
		Singletons.LongScalarCodec,
		Singletons.IntScalarCodec,
		Singletons.EmptyCodec,
		Singletons.ComparableComparator,
		Singletons.ComparableComparatorNullOK,
		Singletons.ThisCodec,
		Singletons.BooleanCodec,
		Singletons.ByteArrayCodec,
		Singletons.NoSizeStringCodec,
		Singletons.BasicKeyCodec,
		Singletons.Tuple2KeyCodec,
		Singletons.Tuple3KeyCodec,
		Singletons.Tuple4KeyCodec,
	} {
		b, err := Write(s)
		require.NoError(t, err)
		got, err := Decode(b)
		require.NoError(t, err)
		gotS, ok := got.(*Singleton)
		require.True(t, ok)
		require.Same(t, s, gotS, "decoding sub-id %d must return the exact registry pointer", s.SubID)
	}
}

func TestUnknownSingletonSubIDIsError(t *testing.T) {
	_, err := Decode([]byte{byte(TagMapDB), 0xFF, 0x01})
	require.Error(t, err)
}

func TestFlatParameterizedSingletonDefaultsToRegistryPointer(t *testing.T) {
	// Singletons.BasicKeyCodec etc. carry no Components, so they must still
	// round-trip to the exact registry pointer rather than a fresh struct.
	b, err := Write(Singletons.Tuple2KeyCodec)
	require.NoError(t, err)
	require.Equal(t, []byte{byte(TagMapDB), byte(SubIDTuple2KeyCodec), 0x00}, b)

	got, err := Decode(b)
	require.NoError(t, err)
	gotS, ok := got.(*Singleton)
	require.True(t, ok)
	require.Same(t, Singletons.Tuple2KeyCodec, gotS)
}

func TestBasicKeyCodecRoundTripsItsElementCodec(t *testing.T) {
	s := NewBasicKeyCodec(Singletons.ThisCodec)
	got := roundTrip(t, s)
	gotS, ok := got.(*Singleton)
	require.True(t, ok)
	require.Equal(t, SubIDBasicKeyCodec, gotS.SubID)
	require.Equal(t, []Value{Singletons.ThisCodec}, gotS.Components)
}

func TestTupleKeyCodecsRoundTripTheirComparatorsAndElementCodecs(t *testing.T) {
	t2 := NewTuple2KeyCodec(
		Singletons.ComparableComparator, Singletons.LongScalarCodec,
		Singletons.ComparableComparatorNullOK, Singletons.StringKeyCodec,
	)
	got := roundTrip(t, t2)
	require.Equal(t, t2, got)

	t3 := NewTuple3KeyCodec(
		Singletons.ComparableComparator, Singletons.LongScalarCodec,
		Singletons.ComparableComparator, Singletons.IntScalarCodec,
		Null, Singletons.StringKeyCodec,
	)
	require.Equal(t, t3, roundTrip(t, t3))

	t4 := NewTuple4KeyCodec(
		Singletons.ComparableComparator, Singletons.LongScalarCodec,
		Singletons.ComparableComparator, Singletons.IntScalarCodec,
		Null, Singletons.StringKeyCodec,
		Singletons.ComparableComparatorNullOK, Singletons.BooleanCodec,
	)
	require.Equal(t, t4, roundTrip(t, t4))
}

func TestParameterizedSingletonDistinctFromFlatOnWire(t *testing.T) {
	flat, err := Write(Singletons.BasicKeyCodec)
	require.NoError(t, err)

	parameterized, err := Write(NewBasicKeyCodec(Singletons.ThisCodec))
	require.NoError(t, err)

	require.NotEqual(t, flat, parameterized, "a parameterized basic key codec must not be indistinguishable on the wire from the bare registry constant")
}

func TestLRUClassResolverCachesHits(t *testing.T) {
	calls := 0
	resolver, err := NewLRUClassResolver(8, func(name ClassToken) (any, error) {
		calls++
		return string(name) + "#resolved", nil
	})
	require.NoError(t, err)

	v1, err := resolver.Resolve("com.example.Foo")
	require.NoError(t, err)
	require.Equal(t, "com.example.Foo#resolved", v1)

	v2, err := resolver.Resolve("com.example.Foo")
	require.NoError(t, err)
	require.Equal(t, v1, v2)
	require.Equal(t, 1, calls, "second resolve of the same token must hit the cache")
}
