package codec

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/arloliu/wirekv/errs"
	"github.com/arloliu/wirekv/internal/bio"
)

// Singleton sub-ids. The registry is additive: new ids are appended, never
// renumbered or removed, so a stream written by an older build of this
// package still resolves under a newer one.
const (
	SubIDPositiveLongKeyCodec uint32 = iota
	SubIDPositiveIntKeyCodec
	SubIDStringKeyCodec
	SubIDLongScalarCodec
	SubIDIntScalarCodec
	SubIDEmptyCodec
	SubIDComparableComparator       // strict: panics/ errors on incomparable operands
	SubIDComparableComparatorNullOK // null-permissive: nil sorts before everything
	SubIDThisCodec                  // reference to "this codec instance"
	SubIDBooleanCodec
	SubIDByteArrayCodec
	SubIDNoSizeStringCodec
	SubIDBasicKeyCodec // parameterized by the current codec instance
	SubIDTuple2KeyCodec
	SubIDTuple3KeyCodec
	SubIDTuple4KeyCodec

	subIDCount
)

// singletonNames gives each sub-id a stable, human-readable label for
// diagnostics. It has no effect on the wire format and is not read by the
// encoder, the decoder or NewLRUClassResolver.
var singletonNames = [subIDCount]string{
	SubIDPositiveLongKeyCodec:       "BTREE_KEY_SERIALIZER_LONG",
	SubIDPositiveIntKeyCodec:        "BTREE_KEY_SERIALIZER_INTEGER",
	SubIDStringKeyCodec:             "BTREE_KEY_SERIALIZER_STRING",
	SubIDLongScalarCodec:            "SERIALIZER_LONG",
	SubIDIntScalarCodec:             "SERIALIZER_INTEGER",
	SubIDEmptyCodec:                 "SERIALIZER_EMPTY",
	SubIDComparableComparator:       "COMPARABLE_COMPARATOR",
	SubIDComparableComparatorNullOK: "COMPARABLE_COMPARATOR_WITH_NULLS",
	SubIDThisCodec:                  "THIS_SERIALIZER",
	SubIDBooleanCodec:               "SERIALIZER_BOOLEAN",
	SubIDByteArrayCodec:             "SERIALIZER_BYTE_ARRAY",
	SubIDNoSizeStringCodec:          "SERIALIZER_STRING_NOSIZE",
	SubIDBasicKeyCodec:              "BTREE_KEY_SERIALIZER_BASIC",
	SubIDTuple2KeyCodec:             "TUPLE2_KEY_SERIALIZER",
	SubIDTuple3KeyCodec:             "TUPLE3_KEY_SERIALIZER",
	SubIDTuple4KeyCodec:             "TUPLE4_KEY_SERIALIZER",
}

// singletonRegistry backs the process-wide identity table: decoding the
// same sub-id always yields the exact same *Singleton pointer, so host code
// may compare registry members with ==.
var singletonRegistry = newSingletonRegistry()

func newSingletonRegistry() [subIDCount]*Singleton {
	var reg [subIDCount]*Singleton
	for i := range reg {
		reg[i] = &Singleton{SubID: uint32(i)}
	}
	return reg
}

// Singletons exposes the registry's fixed members by name, for host code
// that wants to pass e.g. codec.Singletons.StringKeyCodec to Write without
// hand-rolling a Singleton{SubID: ...} literal.
var Singletons = struct {
	PositiveLongKeyCodec       *Singleton
	PositiveIntKeyCodec        *Singleton
	StringKeyCodec             *Singleton
	LongScalarCodec            *Singleton
	IntScalarCodec             *Singleton
	EmptyCodec                 *Singleton
	ComparableComparator       *Singleton
	ComparableComparatorNullOK *Singleton
	ThisCodec                  *Singleton
	BooleanCodec               *Singleton
	ByteArrayCodec             *Singleton
	NoSizeStringCodec          *Singleton
	BasicKeyCodec              *Singleton
	Tuple2KeyCodec             *Singleton
	Tuple3KeyCodec             *Singleton
	Tuple4KeyCodec             *Singleton
}{
	PositiveLongKeyCodec:       singletonRegistry[SubIDPositiveLongKeyCodec],
	PositiveIntKeyCodec:        singletonRegistry[SubIDPositiveIntKeyCodec],
	StringKeyCodec:             singletonRegistry[SubIDStringKeyCodec],
	LongScalarCodec:            singletonRegistry[SubIDLongScalarCodec],
	IntScalarCodec:             singletonRegistry[SubIDIntScalarCodec],
	EmptyCodec:                 singletonRegistry[SubIDEmptyCodec],
	ComparableComparator:       singletonRegistry[SubIDComparableComparator],
	ComparableComparatorNullOK: singletonRegistry[SubIDComparableComparatorNullOK],
	ThisCodec:                  singletonRegistry[SubIDThisCodec],
	BooleanCodec:               singletonRegistry[SubIDBooleanCodec],
	ByteArrayCodec:             singletonRegistry[SubIDByteArrayCodec],
	NoSizeStringCodec:          singletonRegistry[SubIDNoSizeStringCodec],
	BasicKeyCodec:              singletonRegistry[SubIDBasicKeyCodec],
	Tuple2KeyCodec:             singletonRegistry[SubIDTuple2KeyCodec],
	Tuple3KeyCodec:             singletonRegistry[SubIDTuple3KeyCodec],
	Tuple4KeyCodec:             singletonRegistry[SubIDTuple4KeyCodec],
}

// singletonIsParameterized reports whether id is one of the sub-ids
// spec.md §4.7 documents as carrying extra structure beyond the bare
// sub-id: the basic B-tree key codec (parameterised by the current codec
// instance) and the tuple-key codecs of arity 2/3/4 (each of which
// recursively deserializes its component comparators and element codecs).
// Every other sub-id is a flat constant with no further payload.
func singletonIsParameterized(id uint32) bool {
	switch id {
	case SubIDBasicKeyCodec, SubIDTuple2KeyCodec, SubIDTuple3KeyCodec, SubIDTuple4KeyCodec:
		return true
	default:
		return false
	}
}

// NewBasicKeyCodec returns a BTREE_KEY_SERIALIZER_BASIC singleton parameterized by
// elementCodec, the Value (typically Singletons.ThisCodec) used to encode
// and decode the B-tree's elements.
func NewBasicKeyCodec(elementCodec Value) *Singleton {
	return &Singleton{SubID: SubIDBasicKeyCodec, Components: []Value{elementCodec}}
}

// NewTuple2KeyCodec returns a TUPLE2_KEY_SERIALIZER singleton carrying each
// tuple slot's comparator and element codec, in slot order.
func NewTuple2KeyCodec(cmpA, codecA, cmpB, codecB Value) *Singleton {
	return &Singleton{SubID: SubIDTuple2KeyCodec, Components: []Value{cmpA, codecA, cmpB, codecB}}
}

// NewTuple3KeyCodec returns a TUPLE3_KEY_SERIALIZER singleton carrying each
// tuple slot's comparator and element codec, in slot order.
func NewTuple3KeyCodec(cmpA, codecA, cmpB, codecB, cmpC, codecC Value) *Singleton {
	return &Singleton{SubID: SubIDTuple3KeyCodec, Components: []Value{cmpA, codecA, cmpB, codecB, cmpC, codecC}}
}

// NewTuple4KeyCodec returns a TUPLE4_KEY_SERIALIZER singleton carrying each
// tuple slot's comparator and element codec, in slot order.
func NewTuple4KeyCodec(cmpA, codecA, cmpB, codecB, cmpC, codecC, cmpD, codecD Value) *Singleton {
	return &Singleton{SubID: SubIDTuple4KeyCodec, Components: []Value{cmpA, codecA, cmpB, codecB, cmpC, codecC, cmpD, codecD}}
}

// writeSingleton emits the MAPDB tag, the packed sub-id, and — for the
// parameterized sub-ids only — a packed component count followed by each
// component recursively. A zero component count on a parameterized sub-id
// (the shape Singletons.BasicKeyCodec/Tuple2KeyCodec/... produce) means
// "use the flat registry entry", keeping the stable-pointer guarantee for
// the un-parameterized default.
func writeSingleton(w *bio.Writer, s Singleton, ctx *refCtx, c *Codec) error {
	if s.SubID >= subIDCount {
		return errs.ErrUnknownSingleton
	}
	w.WriteByte(byte(TagMapDB))
	w.PackUint32(s.SubID)
	if !singletonIsParameterized(s.SubID) {
		return nil
	}
	w.PackUint32(uint32(len(s.Components)))
	for _, comp := range s.Components {
		if err := encodeValue(w, comp, ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// readSingleton resolves a decoded sub-id. For a flat sub-id, or a
// parameterized one with a zero component count, it returns the exact
// registry pointer so decoding the same sub-id twice yields the same
// *Singleton. For a parameterized sub-id with components, it recursively
// decodes each component and returns a freshly built *Singleton carrying
// them.
func readSingleton(r *bio.Reader, ctx *refCtx, c *Codec) (*Singleton, error) {
	id, err := r.UnpackUint32()
	if err != nil {
		return nil, err
	}
	if id >= subIDCount {
		return nil, errs.ErrUnknownSingleton
	}
	if !singletonIsParameterized(id) {
		return singletonRegistry[id], nil
	}

	n, err := r.UnpackUint32()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return singletonRegistry[id], nil
	}
	components := make([]Value, n)
	for i := range components {
		v, err := decodeValue(r, ctx, c)
		if err != nil {
			return nil, err
		}
		components[i] = v
	}
	return &Singleton{SubID: id, Components: components}, nil
}

// classResolverCache is a bounded LRU mapping textual component-type names
// (ClassToken) to the host-side marker objects NewLRUClassResolver resolved
// them to. Repeated Resolve calls for the same component type (the common
// case: a homogeneous collection of records) hit the cache instead of
// re-invoking the underlying resolver. The codec's own decode path does not
// call Resolve; readObjectArray keeps the ClassToken as read.
type classResolverCache struct {
	cache *lru.Cache
	miss  ClassResolverFunc
}

// ClassResolverFunc turns a textual qualified class name into an
// array-element type marker usable by the host. The core never interprets
// the marker; it only threads the ClassToken string across the wire and
// offers this hook so a host can attach real type information on read.
type ClassResolverFunc func(name ClassToken) (any, error)

// NewLRUClassResolver wraps fn in a bounded LRU cache of size capacity,
// turning a textual qualified class name into an array-element type marker
// usable by the host, with the lookup made cheap for the common case of a
// small, repeated set of component types.
func NewLRUClassResolver(capacity int, fn ClassResolverFunc) (*classResolverCache, error) {
	c, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &classResolverCache{cache: c, miss: fn}, nil
}

// Resolve returns the cached marker for name, calling the wrapped resolver
// function and caching its result on a miss.
func (c *classResolverCache) Resolve(name ClassToken) (any, error) {
	if v, ok := c.cache.Get(name); ok {
		return v, nil
	}
	v, err := c.miss(name)
	if err != nil {
		return nil, err
	}
	c.cache.Add(name, v)
	return v, nil
}
