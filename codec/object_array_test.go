package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectArrayGeneralRoundTrip(t *testing.T) {
	oa := &ObjectArray{ComponentType: "java.lang.Object", Elems: []Value{Int(1), Str("a"), Null}}
	got := roundTrip(t, oa)
	require.Equal(t, oa, got)

	b, err := Write(oa)
	require.NoError(t, err)
	require.Equal(t, byte(TagArrayObject), b[0])
}

func TestObjectArrayAllNullFastPath(t *testing.T) {
	oa := &ObjectArray{ComponentType: "java.lang.String", Elems: []Value{Null, Null, Null}}
	b, err := Write(oa)
	require.NoError(t, err)
	require.Equal(t, byte(TagArrayObjectAllNull), b[0])

	got := roundTrip(t, oa)
	gotOA, ok := got.(*ObjectArray)
	require.True(t, ok)
	require.Equal(t, oa.ComponentType, gotOA.ComponentType)
	require.Equal(t, oa.Elems, gotOA.Elems)
}

func TestObjectArrayPackedLongFastPath(t *testing.T) {
	oa := &ObjectArray{Elems: []Value{Long(1), Null, Long(1 << 40)}}
	b, err := Write(oa)
	require.NoError(t, err)
	require.Equal(t, byte(TagArrayObjectPackedLong), b[0])
	require.Equal(t, byte(3), b[1])

	got := roundTrip(t, oa)
	gotOA, ok := got.(*ObjectArray)
	require.True(t, ok)
	require.Equal(t, oa.Elems, gotOA.Elems)
}

func TestObjectArrayNoRefsFastPath(t *testing.T) {
	oa := &ObjectArray{ComponentType: "java.lang.Object", Elems: []Value{Int(1), Str("leaf")}, NoRefs: true}
	b, err := Write(oa)
	require.NoError(t, err)
	require.Equal(t, byte(TagArrayObjectNoRefs), b[0])

	got := roundTrip(t, oa)
	gotOA, ok := got.(*ObjectArray)
	require.True(t, ok)
	require.True(t, gotOA.NoRefs)
	require.Equal(t, oa.ComponentType, gotOA.ComponentType)
	require.Equal(t, oa.Elems, gotOA.Elems)
}
