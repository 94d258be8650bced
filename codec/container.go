package codec

import (
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/wirekv/errs"
	"github.com/arloliu/wirekv/internal/bio"
)

// packedLongFastPathMax is the single-byte length cap for
// ARRAYLIST_PACKED_LONG and ARRAY_OBJECT_PACKED_LONG.
const packedLongFastPathMax = 255

// isPackedLongCandidate reports whether v may appear as a slot in a
// packed-long fast path: the null value, or a non-negative Long (LONG_MAX
// included, since it is itself non-negative).
func isPackedLongCandidate(v Value) bool {
	if v == nil || v.Kind() == KindNull {
		return true
	}
	lv, ok := v.(Long)
	return ok && lv >= 0
}

// packedLongCode returns packULong(v+1), with 0 meaning null.
func packedLongCode(v Value) uint64 {
	if v == nil || v.Kind() == KindNull {
		return 0
	}
	return uint64(v.(Long)) + 1
}

func packedLongDecode(code uint64) Value {
	if code == 0 {
		return Null
	}
	return Long(code - 1)
}

func listPackedLongEligible(elems []Value) bool {
	if len(elems) >= packedLongFastPathMax {
		return false
	}
	for _, e := range elems {
		if !isPackedLongCandidate(e) {
			return false
		}
	}
	return true
}

func writeList(w *bio.Writer, lst *List, ctx *refCtx, c *Codec) error {
	if listPackedLongEligible(lst.Elems) {
		w.WriteByte(byte(TagArrayListPackedLong))
		w.WriteByte(byte(len(lst.Elems)))
		for _, e := range lst.Elems {
			w.PackUint64(packedLongCode(e))
		}
		return nil
	}

	w.WriteByte(byte(TagArrayList))
	w.PackUint32(uint32(len(lst.Elems)))
	for _, e := range lst.Elems {
		if err := encodeValue(w, e, ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func readList(r *bio.Reader, t Tag, ctx *refCtx, c *Codec, self *List) error {
	switch t {
	case TagArrayListPackedLong:
		n, err := r.ReadByte()
		if err != nil {
			return err
		}
		elems := make([]Value, n)
		for i := range elems {
			code, err := r.UnpackUint64()
			if err != nil {
				return err
			}
			elems[i] = packedLongDecode(code)
		}
		self.Elems = elems
		return nil
	case TagArrayList:
		n, err := r.UnpackUint32()
		if err != nil {
			return err
		}
		elems := make([]Value, n)
		for i := range elems {
			v, err := decodeValue(r, ctx, c)
			if err != nil {
				return err
			}
			elems[i] = v
		}
		self.Elems = elems
		return nil
	default:
		return errs.ErrUnknownTag
	}
}

func writeLinkedList(w *bio.Writer, lst *LinkedList, ctx *refCtx, c *Codec) error {
	w.WriteByte(byte(TagLinkedList))
	w.PackUint32(uint32(len(lst.Elems)))
	for _, e := range lst.Elems {
		if err := encodeValue(w, e, ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func readLinkedList(r *bio.Reader, ctx *refCtx, c *Codec, self *LinkedList) error {
	n, err := r.UnpackUint32()
	if err != nil {
		return err
	}
	elems := make([]Value, n)
	for i := range elems {
		v, err := decodeValue(r, ctx, c)
		if err != nil {
			return err
		}
		elems[i] = v
	}
	self.Elems = elems
	return nil
}

// hashOrderKey encodes v in a disposable, tracker-isolated pass purely to
// compute its xxHash64 for canonical hash-bucket ordering (see
// hashBucketOrder). It must never share ctx with the real encode: the
// dummy pass would otherwise register pointers in the live reference
// tracker and desynchronize encode/decode back-reference indices.
func hashOrderKey(v Value, c *Codec) (uint64, error) {
	w := bio.NewWriter()
	defer w.Release()
	if err := encodeValue(w, v, &refCtx{}, c); err != nil {
		return 0, err
	}
	return xxhash.Sum64(w.Bytes()), nil
}

// hashBucketOrder returns a permutation of indices 0..len(keys)-1 sorted by
// each key's xxHash64, the order HASHSET/HASHMAP elements are written in.
// Two independently constructed containers holding the same elements thus
// produce byte-identical streams, mirroring a real hash table's bucket
// iteration order rather than an arbitrary one — and giving HASHSET/HASHMAP
// an iteration order genuinely distinct from the Linked variants, which
// preserve insertion order untouched.
func hashBucketOrder(keys []Value, c *Codec) ([]int, error) {
	type scored struct {
		idx  int
		hash uint64
	}
	scoredKeys := make([]scored, len(keys))
	for i, k := range keys {
		h, err := hashOrderKey(k, c)
		if err != nil {
			return nil, err
		}
		scoredKeys[i] = scored{idx: i, hash: h}
	}
	sort.SliceStable(scoredKeys, func(i, j int) bool {
		return scoredKeys[i].hash < scoredKeys[j].hash
	})
	order := make([]int, len(keys))
	for i, s := range scoredKeys {
		order[i] = s.idx
	}
	return order, nil
}

func writeHashSet(w *bio.Writer, set *HashSet, ctx *refCtx, c *Codec) error {
	order, err := hashBucketOrder(set.Elems, c)
	if err != nil {
		return err
	}
	w.WriteByte(byte(TagHashSet))
	w.PackUint32(uint32(len(set.Elems)))
	for _, i := range order {
		if err := encodeValue(w, set.Elems[i], ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func readHashSet(r *bio.Reader, ctx *refCtx, c *Codec, self *HashSet) error {
	n, err := r.UnpackUint32()
	if err != nil {
		return err
	}
	elems := make([]Value, n)
	for i := range elems {
		v, err := decodeValue(r, ctx, c)
		if err != nil {
			return err
		}
		elems[i] = v
	}
	self.Elems = elems
	return nil
}

func writeLinkedHashSet(w *bio.Writer, set *LinkedHashSet, ctx *refCtx, c *Codec) error {
	w.WriteByte(byte(TagLinkedHashSet))
	w.PackUint32(uint32(len(set.Elems)))
	for _, e := range set.Elems {
		if err := encodeValue(w, e, ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func readLinkedHashSet(r *bio.Reader, ctx *refCtx, c *Codec, self *LinkedHashSet) error {
	n, err := r.UnpackUint32()
	if err != nil {
		return err
	}
	elems := make([]Value, n)
	for i := range elems {
		v, err := decodeValue(r, ctx, c)
		if err != nil {
			return err
		}
		elems[i] = v
	}
	self.Elems = elems
	return nil
}

func writeTreeSet(w *bio.Writer, set *TreeSet, ctx *refCtx, c *Codec) error {
	w.WriteByte(byte(TagTreeSet))
	if err := encodeValue(w, orNull(set.Comparator), ctx, c); err != nil {
		return err
	}
	w.PackUint32(uint32(len(set.Elems)))
	for _, e := range set.Elems {
		if err := encodeValue(w, e, ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func readTreeSet(r *bio.Reader, ctx *refCtx, c *Codec, self *TreeSet) error {
	cmp, err := decodeValue(r, ctx, c)
	if err != nil {
		return err
	}
	if cmp.Kind() != KindNull {
		self.Comparator = cmp
	}
	n, err := r.UnpackUint32()
	if err != nil {
		return err
	}
	elems := make([]Value, n)
	for i := range elems {
		v, err := decodeValue(r, ctx, c)
		if err != nil {
			return err
		}
		elems[i] = v
	}
	self.Elems = elems
	return nil
}

func orNull(v Value) Value {
	if v == nil {
		return Null
	}
	return v
}

func writeMapEntries(w *bio.Writer, entries []MapEntry, ctx *refCtx, c *Codec) error {
	w.PackUint32(uint32(len(entries)))
	for _, e := range entries {
		if err := encodeValue(w, e.Key, ctx, c); err != nil {
			return err
		}
		if err := encodeValue(w, e.Val, ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func readMapEntries(r *bio.Reader, ctx *refCtx, c *Codec) ([]MapEntry, error) {
	n, err := r.UnpackUint32()
	if err != nil {
		return nil, err
	}
	entries := make([]MapEntry, n)
	for i := range entries {
		k, err := decodeValue(r, ctx, c)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(r, ctx, c)
		if err != nil {
			return nil, err
		}
		entries[i] = MapEntry{Key: k, Val: v}
	}
	return entries, nil
}

func writeHashMap(w *bio.Writer, m *HashMap, ctx *refCtx, c *Codec) error {
	keys := make([]Value, len(m.Entries))
	for i, e := range m.Entries {
		keys[i] = e.Key
	}
	order, err := hashBucketOrder(keys, c)
	if err != nil {
		return err
	}
	w.WriteByte(byte(TagHashMap))
	w.PackUint32(uint32(len(m.Entries)))
	for _, i := range order {
		if err := encodeValue(w, m.Entries[i].Key, ctx, c); err != nil {
			return err
		}
		if err := encodeValue(w, m.Entries[i].Val, ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func readHashMap(r *bio.Reader, ctx *refCtx, c *Codec, self *HashMap) error {
	entries, err := readMapEntries(r, ctx, c)
	if err != nil {
		return err
	}
	self.Entries = entries
	return nil
}

func writeLinkedHashMap(w *bio.Writer, m *LinkedHashMap, ctx *refCtx, c *Codec) error {
	w.WriteByte(byte(TagLinkedHashMap))
	return writeMapEntries(w, m.Entries, ctx, c)
}

func readLinkedHashMap(r *bio.Reader, ctx *refCtx, c *Codec, self *LinkedHashMap) error {
	entries, err := readMapEntries(r, ctx, c)
	if err != nil {
		return err
	}
	self.Entries = entries
	return nil
}

func writeTreeMap(w *bio.Writer, m *TreeMap, ctx *refCtx, c *Codec) error {
	w.WriteByte(byte(TagTreeMap))
	if err := encodeValue(w, orNull(m.Comparator), ctx, c); err != nil {
		return err
	}
	return writeMapEntries(w, m.Entries, ctx, c)
}

func readTreeMap(r *bio.Reader, ctx *refCtx, c *Codec, self *TreeMap) error {
	cmp, err := decodeValue(r, ctx, c)
	if err != nil {
		return err
	}
	if cmp.Kind() != KindNull {
		self.Comparator = cmp
	}
	entries, err := readMapEntries(r, ctx, c)
	if err != nil {
		return err
	}
	self.Entries = entries
	return nil
}

func writeProperties(w *bio.Writer, p *Properties) error {
	w.WriteByte(byte(TagProperties))
	w.PackUint32(uint32(len(p.Entries)))
	for _, e := range p.Entries {
		writeString(w, Str(e.Key))
		writeString(w, Str(e.Val))
	}
	return nil
}

func readProperties(r *bio.Reader, self *Properties) error {
	n, err := r.UnpackUint32()
	if err != nil {
		return err
	}
	entries := make([]StringEntry, n)
	for i := range entries {
		kt, err := r.ReadByte()
		if err != nil {
			return err
		}
		k, err := readString(r, Tag(kt))
		if err != nil {
			return err
		}
		vt, err := r.ReadByte()
		if err != nil {
			return err
		}
		v, err := readString(r, Tag(vt))
		if err != nil {
			return err
		}
		entries[i] = StringEntry{Key: string(k), Val: string(v)}
	}
	self.Entries = entries
	return nil
}

func writeTuple2(w *bio.Writer, t *Tuple2, ctx *refCtx, c *Codec) error {
	w.WriteByte(byte(TagTuple2))
	if err := encodeValue(w, t.A, ctx, c); err != nil {
		return err
	}
	return encodeValue(w, t.B, ctx, c)
}

func readTuple2(r *bio.Reader, ctx *refCtx, c *Codec, self *Tuple2) error {
	a, err := decodeValue(r, ctx, c)
	if err != nil {
		return err
	}
	b, err := decodeValue(r, ctx, c)
	if err != nil {
		return err
	}
	self.A, self.B = a, b
	return nil
}

func writeTuple3(w *bio.Writer, t *Tuple3, ctx *refCtx, c *Codec) error {
	w.WriteByte(byte(TagTuple3))
	for _, v := range [...]Value{t.A, t.B, t.C} {
		if err := encodeValue(w, v, ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func readTuple3(r *bio.Reader, ctx *refCtx, c *Codec, self *Tuple3) error {
	vals := [3]Value{}
	for i := range vals {
		v, err := decodeValue(r, ctx, c)
		if err != nil {
			return err
		}
		vals[i] = v
	}
	self.A, self.B, self.C = vals[0], vals[1], vals[2]
	return nil
}

func writeTuple4(w *bio.Writer, t *Tuple4, ctx *refCtx, c *Codec) error {
	w.WriteByte(byte(TagTuple4))
	for _, v := range [...]Value{t.A, t.B, t.C, t.D} {
		if err := encodeValue(w, v, ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func readTuple4(r *bio.Reader, ctx *refCtx, c *Codec, self *Tuple4) error {
	vals := [4]Value{}
	for i := range vals {
		v, err := decodeValue(r, ctx, c)
		if err != nil {
			return err
		}
		vals[i] = v
	}
	self.A, self.B, self.C, self.D = vals[0], vals[1], vals[2], vals[3]
	return nil
}
