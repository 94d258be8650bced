package codec

import "math/big"

// Kind identifies the dynamic shape of a Value, independent of its tag
// byte. Several Kinds may share encoding logic but always decode back to
// the same concrete Go type they were encoded from.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindByte
	KindShort
	KindChar
	KindInt
	KindLong
	KindFloat32
	KindFloat64
	KindBigInt
	KindBigDecimal
	KindString
	KindInstant
	KindUUID
	KindClassToken
	KindByteArray
	KindBoolArray
	KindShortArray
	KindCharArray
	KindFloatArray
	KindDoubleArray
	KindIntArray
	KindLongArray
	KindObjectArray
	KindList
	KindLinkedList
	KindHashSet
	KindLinkedHashSet
	KindTreeSet
	KindHashMap
	KindLinkedHashMap
	KindTreeMap
	KindProperties
	KindTuple2
	KindTuple3
	KindTuple4
	KindSingleton
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindByte:
		return "Byte"
	case KindShort:
		return "Short"
	case KindChar:
		return "Char"
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindBigInt:
		return "BigInt"
	case KindBigDecimal:
		return "BigDecimal"
	case KindString:
		return "String"
	case KindInstant:
		return "Instant"
	case KindUUID:
		return "UUID"
	case KindClassToken:
		return "ClassToken"
	case KindByteArray:
		return "ByteArray"
	case KindBoolArray:
		return "BoolArray"
	case KindShortArray:
		return "ShortArray"
	case KindCharArray:
		return "CharArray"
	case KindFloatArray:
		return "FloatArray"
	case KindDoubleArray:
		return "DoubleArray"
	case KindIntArray:
		return "IntArray"
	case KindLongArray:
		return "LongArray"
	case KindObjectArray:
		return "ObjectArray"
	case KindList:
		return "List"
	case KindLinkedList:
		return "LinkedList"
	case KindHashSet:
		return "HashSet"
	case KindLinkedHashSet:
		return "LinkedHashSet"
	case KindTreeSet:
		return "TreeSet"
	case KindHashMap:
		return "HashMap"
	case KindLinkedHashMap:
		return "LinkedHashMap"
	case KindTreeMap:
		return "TreeMap"
	case KindProperties:
		return "Properties"
	case KindTuple2:
		return "Tuple2"
	case KindTuple3:
		return "Tuple3"
	case KindTuple4:
		return "Tuple4"
	case KindSingleton:
		return "Singleton"
	default:
		return "Unknown"
	}
}

// Value is the universe U the codec serializes: every argument to Write and
// every result of Read implements it.
type Value interface {
	Kind() Kind
}

// Null is the distinguished absence value. Use the Null value (not a zero
// nullValue{}) when constructing values by hand.
var Null Value = nullValue{}

type nullValue struct{}

func (nullValue) Kind() Kind { return KindNull }

// Bool is a boolean scalar.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

// Byte is a signed 8-bit scalar, distinct from the general Int family.
type Byte int8

func (Byte) Kind() Kind { return KindByte }

// Short is a signed 16-bit scalar.
type Short int16

func (Short) Kind() Kind { return KindShort }

// Char is an unsigned 16-bit code unit, treated distinctly from integers.
type Char uint16

func (Char) Kind() Kind { return KindChar }

// Int is a signed 32-bit scalar.
type Int int32

func (Int) Kind() Kind { return KindInt }

// Long is a signed 64-bit scalar.
type Long int64

func (Long) Kind() Kind { return KindLong }

// Float32 is an IEEE-754 single-precision scalar.
type Float32 float32

func (Float32) Kind() Kind { return KindFloat32 }

// Float64 is an IEEE-754 double-precision scalar.
type Float64 float64

func (Float64) Kind() Kind { return KindFloat64 }

// BigInt is an arbitrary-precision signed integer.
type BigInt struct{ V *big.Int }

func (BigInt) Kind() Kind { return KindBigInt }

// BigDecimal is an unscaled arbitrary-precision integer paired with a
// signed base-10 scale: the represented value is Unscaled * 10^-Scale.
type BigDecimal struct {
	Unscaled *big.Int
	Scale    int32
}

func (BigDecimal) Kind() Kind { return KindBigDecimal }

// Str is a finite sequence of 16-bit code units. Go strings are UTF-8, so a
// Str holding valid UTF-8 round-trips exactly, runes outside the basic
// multilingual plane included (they travel as surrogate pairs); bytes that
// are not valid UTF-8 are written as U+FFFD. See doc.go for the encoding of
// individual code units.
type Str string

func (Str) Kind() Kind { return KindString }

// Instant is milliseconds since the Unix epoch.
type Instant int64

func (Instant) Kind() Kind { return KindInstant }

// UUID is a 128-bit identifier split into most-significant and
// least-significant 64-bit halves, matching the wire layout exactly.
type UUID struct {
	Hi uint64
	Lo uint64
}

func (UUID) Kind() Kind { return KindUUID }

// ClassToken is an opaque component-type identifier; a qualified name is
// sufficient for the core, which never interprets it and writes and reads
// it as a plain string. Write and Read do not call the configured
// class-token resolver.
type ClassToken string

func (ClassToken) Kind() Kind { return KindClassToken }

// ByteArray is a homogeneous array of signed bytes.
type ByteArray []byte

func (ByteArray) Kind() Kind { return KindByteArray }

// BoolArray is a homogeneous array of booleans, bit-packed on the wire.
type BoolArray []bool

func (BoolArray) Kind() Kind { return KindBoolArray }

// ShortArray is a homogeneous array of signed 16-bit scalars.
type ShortArray []int16

func (ShortArray) Kind() Kind { return KindShortArray }

// CharArray is a homogeneous array of 16-bit code units.
type CharArray []uint16

func (CharArray) Kind() Kind { return KindCharArray }

// FloatArray is a homogeneous array of 32-bit floats.
type FloatArray []float32

func (FloatArray) Kind() Kind { return KindFloatArray }

// DoubleArray is a homogeneous array of 64-bit floats.
type DoubleArray []float64

func (DoubleArray) Kind() Kind { return KindDoubleArray }

// IntArray is a homogeneous array of signed 32-bit integers.
type IntArray []int32

func (IntArray) Kind() Kind { return KindIntArray }

// LongArray is a homogeneous array of signed 64-bit integers.
type LongArray []int64

func (LongArray) Kind() Kind { return KindLongArray }

// ObjectArray is a heterogeneous array carrying a component-type token, the
// identity unit for back-reference tracking and the three object-array
// fast paths (all-null, packed-long, no-refs).
type ObjectArray struct {
	ComponentType ClassToken
	Elems         []Value

	// NoRefs, when true, instructs the encoder to walk Elems with
	// reference tracking disabled for this array's children (the
	// ARRAY_OBJECT_NO_REFS fast path). It has no effect on decode beyond
	// round-tripping: the decoder always reads children with whatever
	// tracker discipline the tag on the wire calls for.
	NoRefs bool
}

func (*ObjectArray) Kind() Kind { return KindObjectArray }

// List is an ordered, index-addressable sequence (ARRAYLIST).
type List struct{ Elems []Value }

func (*List) Kind() Kind { return KindList }

// LinkedList is an ordered sequence whose tag is distinct from List on the
// wire even though both round-trip as Go slices.
type LinkedList struct{ Elems []Value }

func (*LinkedList) Kind() Kind { return KindLinkedList }

// HashSet is a set of Values with no ordering guarantee across a round
// trip beyond set-equality.
type HashSet struct{ Elems []Value }

func (*HashSet) Kind() Kind { return KindHashSet }

// LinkedHashSet is a set of Values that additionally preserves insertion
// order across a round trip.
type LinkedHashSet struct{ Elems []Value }

func (*LinkedHashSet) Kind() Kind { return KindLinkedHashSet }

// TreeSet is an ordered set carrying an explicit comparator Value, written
// before its elements. A nil Comparator means natural ordering.
type TreeSet struct {
	Comparator Value
	Elems      []Value
}

func (*TreeSet) Kind() Kind { return KindTreeSet }

// MapEntry is one key/value pair of a map container, kept as a slice
// (rather than a Go map) so that LinkedHashMap can preserve insertion
// order and so that keys outside Go's comparable-type restriction (e.g. a
// *List key) are representable.
type MapEntry struct {
	Key Value
	Val Value
}

// HashMap is a key/value mapping with no ordering guarantee across a round
// trip beyond map-equality.
type HashMap struct{ Entries []MapEntry }

func (*HashMap) Kind() Kind { return KindHashMap }

// LinkedHashMap is a key/value mapping that preserves insertion order
// across a round trip.
type LinkedHashMap struct{ Entries []MapEntry }

func (*LinkedHashMap) Kind() Kind { return KindLinkedHashMap }

// TreeMap is an ordered key/value mapping carrying an explicit comparator
// Value, written before its entries. A nil Comparator means natural
// ordering.
type TreeMap struct {
	Comparator Value
	Entries    []MapEntry
}

func (*TreeMap) Kind() Kind { return KindTreeMap }

// StringEntry is one key/value pair of a Properties map.
type StringEntry struct {
	Key string
	Val string
}

// Properties is a string-to-string mapping, order-preserving so that
// round trips are byte-reproducible.
type Properties struct{ Entries []StringEntry }

func (*Properties) Kind() Kind { return KindProperties }

// Tuple2 is a fixed-arity ordered record of two Values.
type Tuple2 struct{ A, B Value }

func (*Tuple2) Kind() Kind { return KindTuple2 }

// Tuple3 is a fixed-arity ordered record of three Values.
type Tuple3 struct{ A, B, C Value }

func (*Tuple3) Kind() Kind { return KindTuple3 }

// Tuple4 is a fixed-arity ordered record of four Values.
type Tuple4 struct{ A, B, C, D Value }

func (*Tuple4) Kind() Kind { return KindTuple4 }

// Singleton is a well-known, identity-compared library object encoded by
// stable sub-id (MAPDB tag) rather than by value. See singleton.go for the
// registry of valid SubID values.
//
// Components is non-nil only for the sub-ids the registry documents as
// parameterized rather than flat constants: SubIDBasicKeyCodec (one
// element-codec Value) and SubIDTuple2KeyCodec/SubIDTuple3KeyCodec/
// SubIDTuple4KeyCodec (one comparator, element-codec pair per tuple slot,
// in slot order). For every other sub-id it is always nil, and decoding
// that sub-id always yields the exact same registry pointer; see
// singleton.go's NewBasicKeyCodec/NewTuple2KeyCodec/NewTuple3KeyCodec/
// NewTuple4KeyCodec constructors.
type Singleton struct {
	SubID      uint32
	Components []Value
}

func (Singleton) Kind() Kind { return KindSingleton }
