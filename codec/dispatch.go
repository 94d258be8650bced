package codec

import (
	"github.com/arloliu/wirekv/errs"
	"github.com/arloliu/wirekv/internal/bio"
	"github.com/arloliu/wirekv/internal/reftrack"
)

// refCtx wraps the per-call reference tracker. The tracker is created
// lazily on the first composite value a top-level Write/Read call
// encounters and is discarded with the call; refCtx is how that single
// lazily-created *reftrack.Tracker is threaded by reference through the
// recursive encode/decode calls without every leaf function needing a
// **reftrack.Tracker parameter.
type refCtx struct {
	tr *reftrack.Tracker
}

func (rc *refCtx) ensure() {
	if rc.tr == nil {
		rc.tr = reftrack.New()
	}
}

// ClassResolver turns a textual component-type name into a host-usable
// array-element type marker. It is consumed only via this interface; the
// core never interprets the returned marker. See NewLRUClassResolver for
// the bounded-cache implementation this repo provides.
type ClassResolver interface {
	Resolve(name ClassToken) (any, error)
}

// POJOCodec is the extension hook for user-defined records (the POJO tag).
// The core never implements it: WriteUnknown/ReadUnknown are invoked only
// when a value falls outside the closed universe U, and the default
// Codec (no POJOCodec installed) fails such values with
// errs.ErrUnserializable / errs.ErrUnsupported.
type POJOCodec interface {
	// WriteUnknown attempts to encode v, which did not match any tag the
	// core recognizes. handled is false if this codec does not claim v.
	WriteUnknown(w *bio.Writer, v Value) (handled bool, err error)
	// ReadUnknown attempts to decode a POJO-tagged value. handled is false
	// if this codec does not claim it.
	ReadUnknown(r *bio.Reader, tag byte) (v Value, handled bool, err error)
}

// Codec bundles the core's optional external collaborators: a
// class-token resolver, a POJO extension codec, and strict-mode selection.
// The zero value (also exposed as Default) is a fully functional
// zero-configuration codec — every field is optional.
type Codec struct {
	classResolver ClassResolver
	pojo          POJOCodec
	strict        bool
}

// Default is a ready-to-use Codec with no extensions installed and
// non-strict decoding (accepts any legal emission, including non-minimal
// tag choices).
var Default = &Codec{}

// Option configures a Codec built by New. This is a Codec-specific
// descendant of mebo's internal/options generic functional-options
// package: mebo reuses that generic package across several distinct
// config targets (NumericEncoderConfig, TextEncoderConfig, its own
// examples' DBConfig/ServerConfig, ...), but this repo only ever builds
// one option target, so the generic type parameter and the separate
// Option/Func split it exists to serve have no second caller here and
// are dropped in favor of the plain closure shape.
type Option func(*Codec) error

// applyOptions runs each opt against c in order, stopping at the first error.
func applyOptions(c *Codec, opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithClassResolver installs the class-token resolver a host uses to turn
// ARRAY_OBJECT component-type tokens into its own type markers.
func WithClassResolver(cr ClassResolver) Option {
	return func(c *Codec) error {
		c.classResolver = cr
		return nil
	}
}

// WithPOJOCodec installs the field-reflective extension codec for
// user-defined records. Without one, the POJO tag is a decode error and
// values outside U fail encoding with errs.ErrUnserializable.
func WithPOJOCodec(p POJOCodec) Option {
	return func(c *Codec) error {
		c.pojo = p
		return nil
	}
}

// WithStrict enables the strict conformance checker: Read/Decode
// reject non-minimal integer/char/short/float/double tagging instead of
// tolerating it.
func WithStrict(strict bool) Option {
	return func(c *Codec) error {
		c.strict = strict
		return nil
	}
}

// New builds a Codec from the given options.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{}
	if err := applyOptions(c, opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// ClassResolver returns the codec's installed resolver, or nil.
func (c *Codec) ClassResolver() ClassResolver { return c.classResolver }

// Write encodes v as a single self-delimiting value.
func Write(v Value) ([]byte, error) { return Default.Write(v) }

// Write encodes v under c's configuration.
func (c *Codec) Write(v Value) ([]byte, error) {
	w := bio.NewWriter()
	defer w.Release()

	if err := encodeValue(w, v, &refCtx{}, c); err != nil {
		return nil, err
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out, nil
}

// Read decodes one value from in. A zero hintedCapacity returns
// the null value without reading a tag at all — the shape a host uses
// when it already knows the slot being materialized is empty.
func Read(in []byte, hintedCapacity int) (Value, error) {
	return Default.Read(in, hintedCapacity)
}

// Read decodes one value from in under c's configuration.
func (c *Codec) Read(in []byte, hintedCapacity int) (Value, error) {
	if hintedCapacity == 0 {
		return Null, nil
	}
	r := bio.NewReader(in)
	return decodeValue(r, &refCtx{}, c)
}

// Decode is Read with an implicit non-zero hintedCapacity, for callers
// that always expect an on-wire tag.
func Decode(in []byte) (Value, error) { return Default.Decode(in) }

// Decode is the Codec method form of the package-level Decode.
func (c *Codec) Decode(in []byte) (Value, error) { return c.Read(in, 1) }

// StrictDecode decodes one value from in under the strict conformance
// checker: an int, long, char, short, float or double whose tag is not the
// minimal one Write would have chosen for the decoded value fails with
// errs.ErrNonMinimalEncoding instead of being tolerated; other tags are not
// checked. Equivalent to (&Codec{}).Decode under WithStrict(true), given
// its own name because strict conformance checking is a documented,
// separately testable entry point rather than a Default-codec behavior.
func StrictDecode(in []byte) (Value, error) {
	c := &Codec{strict: true}
	return c.Decode(in)
}

// AssertEncodable classifies v without producing output: a pre-check hosts can run before
// admitting a value for later encoding.
func AssertEncodable(v Value) error { return Default.AssertEncodable(v) }

// AssertEncodable is the Codec method form of the package-level AssertEncodable.
func (c *Codec) AssertEncodable(v Value) error {
	w := bio.NewWriter()
	defer w.Release()
	return encodeValue(w, v, &refCtx{}, c)
}

func isComposite(v Value) bool {
	switch v.(type) {
	case *List, *LinkedList, *HashSet, *LinkedHashSet, *TreeSet,
		*HashMap, *LinkedHashMap, *TreeMap, *Properties,
		*Tuple2, *Tuple3, *Tuple4, *ObjectArray:
		return true
	default:
		return false
	}
}

// encodeValue is the encode orchestrator: it consults the reference
// tracker exactly once per composite value (before classification; scalars,
// primitive arrays and singletons skip it), then dispatches on the value's
// concrete type.
func encodeValue(w *bio.Writer, v Value, ctx *refCtx, c *Codec) error {
	if v == nil {
		v = Null
	}

	if isComposite(v) {
		ctx.ensure()
		if idx, ok := ctx.tr.IndexOf(v); ok {
			w.WriteByte(byte(TagObjectStack))
			w.PackUint32(uint32(idx))
			return nil
		}
		ctx.tr.Push(v)
	}

	switch vv := v.(type) {
	case nullValue:
		w.WriteByte(byte(TagNull))
	case Bool:
		if vv {
			w.WriteByte(byte(TagBooleanTrue))
		} else {
			w.WriteByte(byte(TagBooleanFalse))
		}
	case Byte:
		writeByteScalar(w, vv)
	case Short:
		writeShort(w, vv)
	case Char:
		writeChar(w, vv)
	case Int:
		writeInt(w, int32(vv))
	case Long:
		writeLong(w, int64(vv))
	case Float32:
		writeFloatScalar(w, vv)
	case Float64:
		writeDoubleScalar(w, vv)
	case BigInt:
		w.WriteByte(byte(TagBigInteger))
		writeBigInt(w, vv)
	case BigDecimal:
		w.WriteByte(byte(TagBigDecimal))
		writeBigDecimal(w, vv)
	case Str:
		writeString(w, vv)
	case Instant:
		writeInstant(w, vv)
	case UUID:
		writeUUID(w, vv)
	case ClassToken:
		w.WriteByte(byte(TagClass))
		writeClassToken(w, vv)
	case ByteArray:
		writeByteArray(w, vv)
	case BoolArray:
		writeBoolArray(w, vv)
	case ShortArray:
		writeShortArray(w, vv)
	case CharArray:
		writeCharArray(w, vv)
	case FloatArray:
		writeFloatArray(w, vv)
	case DoubleArray:
		writeDoubleArray(w, vv)
	case IntArray:
		writeIntArray(w, vv)
	case LongArray:
		writeLongArray(w, vv)
	case *ObjectArray:
		return writeObjectArray(w, vv, ctx, c)
	case *List:
		return writeList(w, vv, ctx, c)
	case *LinkedList:
		return writeLinkedList(w, vv, ctx, c)
	case *HashSet:
		return writeHashSet(w, vv, ctx, c)
	case *LinkedHashSet:
		return writeLinkedHashSet(w, vv, ctx, c)
	case *TreeSet:
		return writeTreeSet(w, vv, ctx, c)
	case *HashMap:
		return writeHashMap(w, vv, ctx, c)
	case *LinkedHashMap:
		return writeLinkedHashMap(w, vv, ctx, c)
	case *TreeMap:
		return writeTreeMap(w, vv, ctx, c)
	case *Properties:
		return writeProperties(w, vv)
	case *Tuple2:
		return writeTuple2(w, vv, ctx, c)
	case *Tuple3:
		return writeTuple3(w, vv, ctx, c)
	case *Tuple4:
		return writeTuple4(w, vv, ctx, c)
	case Singleton:
		return writeSingleton(w, vv, ctx, c)
	case *Singleton:
		return writeSingleton(w, *vv, ctx, c)
	default:
		if c != nil && c.pojo != nil {
			handled, err := c.pojo.WriteUnknown(w, v)
			if err != nil {
				return err
			}
			if handled {
				return nil
			}
		}
		return errs.ErrUnserializable
	}
	return nil
}

// decodeValue is the decode orchestrator, mirroring encodeValue's
// dispatch and tracker discipline exactly.
func decodeValue(r *bio.Reader, ctx *refCtx, c *Codec) (Value, error) {
	tagByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if tagByte == 0 {
		return nil, errs.ErrCorrupt
	}
	t := Tag(tagByte)

	if t == TagObjectStack {
		idx, err := r.UnpackUint32()
		if err != nil {
			return nil, err
		}
		if ctx.tr == nil {
			return nil, errs.ErrBackRefOutOfRange
		}
		key, ok := ctx.tr.Get(int(idx))
		if !ok {
			return nil, errs.ErrBackRefOutOfRange
		}
		return key.(Value), nil
	}

	switch {
	case t == TagNull:
		return Null, nil
	case t == TagBooleanTrue:
		return Bool(true), nil
	case t == TagBooleanFalse:
		return Bool(false), nil

	case t >= TagIntLiteralBase && t <= TagIntFull:
		v, err := readInt(r, t)
		if err != nil {
			return nil, err
		}
		if err := checkMinimalInt(c, t, v); err != nil {
			return nil, err
		}
		return Int(v), nil

	case t >= TagLongLiteralBase && t <= TagLongFull:
		v, err := readLong(r, t)
		if err != nil {
			return nil, err
		}
		if err := checkMinimalLong(c, t, v); err != nil {
			return nil, err
		}
		return Long(v), nil

	case t >= TagByteM1 && t <= TagByte:
		v, err := readByteScalar(r, t)
		return v, err

	case t >= TagChar0 && t <= TagChar:
		v, err := readChar(r, t)
		if err != nil {
			return nil, err
		}
		if err := checkMinimalChar(c, t, v); err != nil {
			return nil, err
		}
		return v, nil

	case t >= TagShortM1 && t <= TagShort:
		v, err := readShort(r, t)
		if err != nil {
			return nil, err
		}
		if err := checkMinimalShort(c, t, v); err != nil {
			return nil, err
		}
		return v, nil

	case t >= TagFloatM1 && t <= TagFloat:
		v, err := readFloatScalar(r, t)
		if err != nil {
			return nil, err
		}
		if err := checkMinimalFloat(c, t, v); err != nil {
			return nil, err
		}
		return v, nil

	case t >= TagDoubleM1 && t <= TagDouble:
		v, err := readDoubleScalar(r, t)
		if err != nil {
			return nil, err
		}
		if err := checkMinimalDouble(c, t, v); err != nil {
			return nil, err
		}
		return v, nil

	case t >= TagArrayByte && t <= TagArrayLong:
		return decodeArray(r, t)

	case t >= TagString0 && t <= TagString:
		v, err := readString(r, t)
		return v, err
	}

	switch t {
	case TagBigInteger:
		return readBigInt(r)
	case TagBigDecimal:
		return readBigDecimal(r)
	case TagClass:
		return readClassToken(r)
	case TagDate:
		return readInstant(r)
	case TagUUID:
		return readUUID(r)
	case TagFunHi:
		// Reserved: never emitted by the core encoder and undocumented by
		// the source this format was distilled from (see DESIGN.md).
		return nil, errs.ErrUnknownTag
	case TagMapDB:
		return readSingleton(r, ctx, c)

	case TagTuple2:
		self := &Tuple2{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readTuple2(r, ctx, c, self); err != nil {
			return nil, err
		}
		return self, nil
	case TagTuple3:
		self := &Tuple3{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readTuple3(r, ctx, c, self); err != nil {
			return nil, err
		}
		return self, nil
	case TagTuple4:
		self := &Tuple4{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readTuple4(r, ctx, c, self); err != nil {
			return nil, err
		}
		return self, nil
	case TagTuple5, TagTuple6, TagTuple7, TagTuple8:
		return nil, errs.ErrUnknownTag

	case TagArrayObject, TagArrayObjectPackedLong, TagArrayObjectAllNull, TagArrayObjectNoRefs:
		self := &ObjectArray{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readObjectArray(r, t, ctx, c, self); err != nil {
			return nil, err
		}
		return self, nil

	case TagArrayList, TagArrayListPackedLong:
		self := &List{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readList(r, t, ctx, c, self); err != nil {
			return nil, err
		}
		return self, nil
	case TagLinkedList:
		self := &LinkedList{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readLinkedList(r, ctx, c, self); err != nil {
			return nil, err
		}
		return self, nil
	case TagHashSet:
		self := &HashSet{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readHashSet(r, ctx, c, self); err != nil {
			return nil, err
		}
		return self, nil
	case TagLinkedHashSet:
		self := &LinkedHashSet{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readLinkedHashSet(r, ctx, c, self); err != nil {
			return nil, err
		}
		return self, nil
	case TagTreeSet:
		self := &TreeSet{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readTreeSet(r, ctx, c, self); err != nil {
			return nil, err
		}
		return self, nil
	case TagHashMap:
		self := &HashMap{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readHashMap(r, ctx, c, self); err != nil {
			return nil, err
		}
		return self, nil
	case TagLinkedHashMap:
		self := &LinkedHashMap{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readLinkedHashMap(r, ctx, c, self); err != nil {
			return nil, err
		}
		return self, nil
	case TagTreeMap:
		self := &TreeMap{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readTreeMap(r, ctx, c, self); err != nil {
			return nil, err
		}
		return self, nil
	case TagProperties:
		self := &Properties{}
		ctx.ensure()
		ctx.tr.Push(Value(self))
		if err := readProperties(r, self); err != nil {
			return nil, err
		}
		return self, nil

	case TagJavaSerialization:
		return nil, errs.ErrCorrupt

	case TagPOJO:
		if c != nil && c.pojo != nil {
			v, handled, err := c.pojo.ReadUnknown(r, byte(t))
			if err != nil {
				return nil, err
			}
			if handled {
				return v, nil
			}
		}
		return nil, errs.ErrUnsupported
	}

	return nil, errs.ErrUnknownTag
}

func decodeArray(r *bio.Reader, t Tag) (Value, error) {
	switch t {
	case TagArrayByte, TagArrayByteAllEqual:
		return readByteArray(r, t)
	case TagArrayBoolean:
		return readBoolArray(r)
	case TagArrayShort:
		return readShortArray(r)
	case TagArrayChar:
		return readCharArray(r)
	case TagArrayFloat:
		return readFloatArray(r)
	case TagArrayDouble:
		return readDoubleArray(r)
	case TagArrayIntByte, TagArrayIntShort, TagArrayIntPacked, TagArrayInt:
		return readIntArray(r, t)
	case TagArrayLongByte, TagArrayLongShort, TagArrayLongPacked, TagArrayLongInt, TagArrayLong:
		return readLongArray(r, t)
	default:
		return nil, errs.ErrUnknownTag
	}
}

// checkMinimalInt/Long/Char/Short/Float/Double back the strict conformance
// checker: each re-derives the tag Write would have chosen for
// the decoded value and compares it to the tag actually on the wire. Only
// consulted when c.strict is set; the default decoder tolerates any
// legally-shaped but non-minimal tagging.

func checkMinimalInt(c *Codec, t Tag, v int32) error {
	if c == nil || !c.strict {
		return nil
	}
	if canonicalTag(func(w *bio.Writer) { writeInt(w, v) }) != t {
		return errs.ErrNonMinimalEncoding
	}
	return nil
}

func checkMinimalLong(c *Codec, t Tag, v int64) error {
	if c == nil || !c.strict {
		return nil
	}
	if canonicalTag(func(w *bio.Writer) { writeLong(w, v) }) != t {
		return errs.ErrNonMinimalEncoding
	}
	return nil
}

func checkMinimalChar(c *Codec, t Tag, v Char) error {
	if c == nil || !c.strict {
		return nil
	}
	if canonicalTag(func(w *bio.Writer) { writeChar(w, v) }) != t {
		return errs.ErrNonMinimalEncoding
	}
	return nil
}

func checkMinimalShort(c *Codec, t Tag, v Short) error {
	if c == nil || !c.strict {
		return nil
	}
	if canonicalTag(func(w *bio.Writer) { writeShort(w, v) }) != t {
		return errs.ErrNonMinimalEncoding
	}
	return nil
}

func checkMinimalFloat(c *Codec, t Tag, v Float32) error {
	if c == nil || !c.strict {
		return nil
	}
	if canonicalTag(func(w *bio.Writer) { writeFloatScalar(w, v) }) != t {
		return errs.ErrNonMinimalEncoding
	}
	return nil
}

func checkMinimalDouble(c *Codec, t Tag, v Float64) error {
	if c == nil || !c.strict {
		return nil
	}
	if canonicalTag(func(w *bio.Writer) { writeDoubleScalar(w, v) }) != t {
		return errs.ErrNonMinimalEncoding
	}
	return nil
}

func canonicalTag(emit func(w *bio.Writer)) Tag {
	w := bio.NewWriter()
	defer w.Release()
	emit(w)
	return Tag(w.Bytes()[0])
}
