package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListRoundTrip(t *testing.T) {
	lst := &List{Elems: []Value{Int(1), Str("a"), Null, Bool(true)}}
	got := roundTrip(t, lst)
	require.Equal(t, lst, got)
}

func TestListPackedLongFastPath(t *testing.T) {
	lst := &List{Elems: []Value{Long(5), Null, Long(0), Long(1 << 40)}}
	b, err := Write(lst)
	require.NoError(t, err)
	require.Equal(t, byte(TagArrayListPackedLong), b[0])
	require.Equal(t, byte(4), b[1])

	got := roundTrip(t, lst)
	require.Equal(t, lst, got)
}

func TestListFallsBackWhenNotPackedLongEligible(t *testing.T) {
	lst := &List{Elems: []Value{Long(-1), Long(2)}}
	b, err := Write(lst)
	require.NoError(t, err)
	require.Equal(t, byte(TagArrayList), b[0])

	got := roundTrip(t, lst)
	require.Equal(t, lst, got)
}

func TestLinkedListPreservesOrder(t *testing.T) {
	ll := &LinkedList{Elems: []Value{Int(3), Int(1), Int(2)}}
	got := roundTrip(t, ll)
	require.Equal(t, ll, got)
}

func TestHashSetRoundTripIsOrderStable(t *testing.T) {
	a := &HashSet{Elems: []Value{Int(1), Int(2), Int(3), Str("x")}}
	b := &HashSet{Elems: []Value{Str("x"), Int(3), Int(2), Int(1)}}

	encA, err := Write(a)
	require.NoError(t, err)
	encB, err := Write(b)
	require.NoError(t, err)
	require.Equal(t, encA, encB, "two HashSets with the same elements must encode identically regardless of insertion order")

	got := roundTrip(t, a)
	gotSet, ok := got.(*HashSet)
	require.True(t, ok)
	require.ElementsMatch(t, a.Elems, gotSet.Elems)
}

func TestLinkedHashSetPreservesInsertionOrder(t *testing.T) {
	lhs := &LinkedHashSet{Elems: []Value{Int(3), Int(1), Int(2)}}
	got := roundTrip(t, lhs)
	require.Equal(t, lhs, got)
}

func TestTreeSetWithNilComparator(t *testing.T) {
	ts := &TreeSet{Elems: []Value{Int(1), Int(2), Int(3)}}
	got := roundTrip(t, ts)
	gotTS, ok := got.(*TreeSet)
	require.True(t, ok)
	require.Nil(t, gotTS.Comparator)
	require.Equal(t, ts.Elems, gotTS.Elems)
}

func TestTreeSetWithComparator(t *testing.T) {
	ts := &TreeSet{Comparator: Singletons.ComparableComparator, Elems: []Value{Int(1), Int(2)}}
	got := roundTrip(t, ts)
	require.Equal(t, ts, got)
}

func TestHashMapRoundTrip(t *testing.T) {
	m := &HashMap{Entries: []MapEntry{
		{Key: Str("a"), Val: Int(1)},
		{Key: Str("b"), Val: Int(2)},
	}}
	got := roundTrip(t, m)
	gotM, ok := got.(*HashMap)
	require.True(t, ok)
	require.ElementsMatch(t, m.Entries, gotM.Entries)
}

func TestLinkedHashMapPreservesOrder(t *testing.T) {
	m := &LinkedHashMap{Entries: []MapEntry{
		{Key: Str("z"), Val: Int(1)},
		{Key: Str("a"), Val: Int(2)},
	}}
	got := roundTrip(t, m)
	require.Equal(t, m, got)
}

func TestTreeMapRoundTrip(t *testing.T) {
	m := &TreeMap{Entries: []MapEntry{
		{Key: Int(1), Val: Str("one")},
		{Key: Int(2), Val: Str("two")},
	}}
	got := roundTrip(t, m)
	require.Equal(t, m, got)
}

func TestPropertiesRoundTrip(t *testing.T) {
	p := &Properties{Entries: []StringEntry{
		{Key: "host", Val: "localhost"},
		{Key: "port", Val: "5432"},
	}}
	got := roundTrip(t, p)
	require.Equal(t, p, got)
}

func TestTupleRoundTrip(t *testing.T) {
	t2 := &Tuple2{A: Str("k"), B: Long(42)}
	b, err := Write(t2)
	require.NoError(t, err)
	require.Equal(t, []byte{byte(TagTuple2), byte(TagString0 + 1), 0x6B, byte(TagLongF1), 0x2A}, b)

	got := roundTrip(t, t2)
	require.Equal(t, t2, got)

	t3 := &Tuple3{A: Int(1), B: Int(2), C: Int(3)}
	require.Equal(t, t3, roundTrip(t, t3))

	t4 := &Tuple4{A: Int(1), B: Int(2), C: Int(3), D: Int(4)}
	require.Equal(t, t4, roundTrip(t, t4))
}
