package codec

import (
	"github.com/arloliu/wirekv/errs"
	"github.com/arloliu/wirekv/internal/bio"
)

func isAllNull(elems []Value) bool {
	for _, e := range elems {
		if e != nil && e.Kind() != KindNull {
			return false
		}
	}
	return true
}

// writeObjectArray picks the tightest of the three fast paths (all-null,
// packed-long, no-refs) admissible for oa, falling back to the general
// path. Checked in that fixed priority order.
func writeObjectArray(w *bio.Writer, oa *ObjectArray, ctx *refCtx, c *Codec) error {
	switch {
	case isAllNull(oa.Elems):
		w.WriteByte(byte(TagArrayObjectAllNull))
		w.PackUint32(uint32(len(oa.Elems)))
		writeClassToken(w, oa.ComponentType)
		return nil

	case listPackedLongEligible(oa.Elems):
		w.WriteByte(byte(TagArrayObjectPackedLong))
		w.WriteByte(byte(len(oa.Elems)))
		for _, e := range oa.Elems {
			w.PackUint64(packedLongCode(e))
		}
		return nil

	case oa.NoRefs:
		w.WriteByte(byte(TagArrayObjectNoRefs))
		w.PackUint32(uint32(len(oa.Elems)))
		writeClassToken(w, oa.ComponentType)
		// Children are walked with a throwaway tracker: the caller has
		// asserted this array holds only leaf scalars, so no identity
		// sharing can occur and the real ctx must not observe them.
		disposable := &refCtx{}
		for _, e := range oa.Elems {
			if err := encodeValue(w, e, disposable, c); err != nil {
				return err
			}
		}
		return nil

	default:
		w.WriteByte(byte(TagArrayObject))
		w.PackUint32(uint32(len(oa.Elems)))
		writeClassToken(w, oa.ComponentType)
		for _, e := range oa.Elems {
			if err := encodeValue(w, e, ctx, c); err != nil {
				return err
			}
		}
		return nil
	}
}

func readObjectArray(r *bio.Reader, t Tag, ctx *refCtx, c *Codec, self *ObjectArray) error {
	switch t {
	case TagArrayObjectAllNull:
		n, err := r.UnpackUint32()
		if err != nil {
			return err
		}
		ct, err := readClassToken(r)
		if err != nil {
			return err
		}
		elems := make([]Value, n)
		for i := range elems {
			elems[i] = Null
		}
		self.ComponentType = ct
		self.Elems = elems
		return nil

	case TagArrayObjectPackedLong:
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

	case TagArrayObjectNoRefs:
		n, err := r.UnpackUint32()
		if err != nil {
			return err
		}
		ct, err := readClassToken(r)
		if err != nil {
			return err
		}
		disposable := &refCtx{}
		elems := make([]Value, n)
		for i := range elems {
			v, err := decodeValue(r, disposable, c)
			if err != nil {
				return err
			}
			elems[i] = v
		}
		self.ComponentType = ct
		self.NoRefs = true
		self.Elems = elems
		return nil

	case TagArrayObject:
		n, err := r.UnpackUint32()
		if err != nil {
			return err
		}
		ct, err := readClassToken(r)
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
		self.ComponentType = ct
		self.Elems = elems
		return nil

	default:
		return errs.ErrUnknownTag
	}
}
