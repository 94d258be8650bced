package codec

import (
	"math"
	"unicode/utf16"

	"github.com/arloliu/wirekv/errs"
	"github.com/arloliu/wirekv/internal/bio"
)

// intByteWidth returns the minimal byte count (1..4) needed to hold the
// unsigned magnitude mag.
func intByteWidth(mag uint32) int {
	switch {
	case mag <= 0xFF:
		return 1
	case mag <= 0xFFFF:
		return 2
	case mag <= 0xFFFFFF:
		return 3
	default:
		return 4
	}
}

// longByteWidth returns the minimal byte count (1..8) needed to hold the
// unsigned magnitude mag.
func longByteWidth(mag uint64) int {
	for w := 1; w <= 7; w++ {
		if mag <= uint64(1)<<(8*uint(w))-1 {
			return w
		}
	}
	return 8
}

func writeInt(w *bio.Writer, v int32) {
	if t, ok := intLiteralTag(v); ok {
		w.WriteByte(byte(t))
		return
	}
	switch v {
	case math.MinInt32:
		w.WriteByte(byte(TagIntMin))
		return
	case math.MaxInt32:
		w.WriteByte(byte(TagIntMax))
		return
	}

	neg := v < 0
	var mag uint32
	if neg {
		mag = uint32(-int64(v))
	} else {
		mag = uint32(v)
	}
	width := intByteWidth(mag)
	if width <= 3 {
		tag := TagIntF1 + Tag(2*(width-1))
		if neg {
			tag++
		}
		w.WriteByte(byte(tag))
		w.WriteUintLE(uint64(mag), width)
		return
	}
	w.WriteByte(byte(TagIntFull))
	w.WriteUint32(uint32(v))
}

func readInt(r *bio.Reader, t Tag) (int32, error) {
	if v, ok := intLiteralValue(t); ok {
		return v, nil
	}
	switch t {
	case TagIntMin:
		return math.MinInt32, nil
	case TagIntMax:
		return math.MaxInt32, nil
	case TagIntFull:
		u, err := r.ReadUint32()
		return int32(u), err
	}

	width, neg, ok := intWidthTag(t)
	if !ok {
		return 0, errs.ErrUnknownTag
	}
	u, err := r.ReadUintLE(width)
	if err != nil {
		return 0, err
	}
	v := int32(uint32(u))
	if neg {
		v = -v
	}
	return v, nil
}

func intWidthTag(t Tag) (width int, neg bool, ok bool) {
	switch t {
	case TagIntF1:
		return 1, false, true
	case TagIntMF1:
		return 1, true, true
	case TagIntF2:
		return 2, false, true
	case TagIntMF2:
		return 2, true, true
	case TagIntF3:
		return 3, false, true
	case TagIntMF3:
		return 3, true, true
	default:
		return 0, false, false
	}
}

func writeLong(w *bio.Writer, v int64) {
	if t, ok := longLiteralTag(v); ok {
		w.WriteByte(byte(t))
		return
	}
	switch v {
	case math.MinInt64:
		w.WriteByte(byte(TagLongMin))
		return
	case math.MaxInt64:
		w.WriteByte(byte(TagLongMax))
		return
	}

	neg := v < 0
	var mag uint64
	if neg {
		mag = uint64(-v) // v == math.MinInt64 is handled above, so -v cannot overflow
	} else {
		mag = uint64(v)
	}
	width := longByteWidth(mag)
	if width <= 7 {
		tag := TagLongF1 + Tag(2*(width-1))
		if neg {
			tag++
		}
		w.WriteByte(byte(tag))
		w.WriteUintLE(mag, width)
		return
	}
	w.WriteByte(byte(TagLongFull))
	w.WriteUint64(uint64(v))
}

func readLong(r *bio.Reader, t Tag) (int64, error) {
	if v, ok := longLiteralValue(t); ok {
		return v, nil
	}
	switch t {
	case TagLongMin:
		return math.MinInt64, nil
	case TagLongMax:
		return math.MaxInt64, nil
	case TagLongFull:
		u, err := r.ReadUint64()
		return int64(u), err
	}

	width, neg, ok := longWidthTag(t)
	if !ok {
		return 0, errs.ErrUnknownTag
	}
	u, err := r.ReadUintLE(width)
	if err != nil {
		return 0, err
	}
	v := int64(u)
	if neg {
		v = -v
	}
	return v, nil
}

func longWidthTag(t Tag) (width int, neg bool, ok bool) {
	base := TagLongF1
	if t < base || t > TagLongMF7 {
		return 0, false, false
	}
	offset := int(t - base)
	return offset/2 + 1, offset%2 == 1, true
}

func writeByteScalar(w *bio.Writer, v Byte) {
	switch v {
	case -1:
		w.WriteByte(byte(TagByteM1))
	case 0:
		w.WriteByte(byte(TagByte0))
	case 1:
		w.WriteByte(byte(TagByte1))
	default:
		w.WriteByte(byte(TagByte))
		w.WriteByte(byte(v))
	}
}

func readByteScalar(r *bio.Reader, t Tag) (Byte, error) {
	switch t {
	case TagByteM1:
		return -1, nil
	case TagByte0:
		return 0, nil
	case TagByte1:
		return 1, nil
	case TagByte:
		b, err := r.ReadByte()
		return Byte(int8(b)), err
	default:
		return 0, errs.ErrUnknownTag
	}
}

func writeChar(w *bio.Writer, v Char) {
	switch {
	case v == 0:
		w.WriteByte(byte(TagChar0))
	case v == 1:
		w.WriteByte(byte(TagChar1))
	case v <= 255:
		w.WriteByte(byte(TagChar255))
		w.WriteByte(byte(v))
	default:
		w.WriteByte(byte(TagChar))
		w.WriteUint16(uint16(v))
	}
}

func readChar(r *bio.Reader, t Tag) (Char, error) {
	switch t {
	case TagChar0:
		return 0, nil
	case TagChar1:
		return 1, nil
	case TagChar255:
		b, err := r.ReadByte()
		return Char(b), err
	case TagChar:
		u, err := r.ReadUint16()
		return Char(u), err
	default:
		return 0, errs.ErrUnknownTag
	}
}

func writeShort(w *bio.Writer, v Short) {
	switch {
	case v == -1:
		w.WriteByte(byte(TagShortM1))
	case v == 0:
		w.WriteByte(byte(TagShort0))
	case v == 1:
		w.WriteByte(byte(TagShort1))
	case v >= 1 && v <= 254:
		w.WriteByte(byte(TagShort255))
		w.WriteByte(byte(v))
	case v >= -254 && v <= -1:
		w.WriteByte(byte(TagShortM255))
		w.WriteByte(byte(-v))
	default:
		w.WriteByte(byte(TagShort))
		w.WriteUint16(uint16(v))
	}
}

func readShort(r *bio.Reader, t Tag) (Short, error) {
	switch t {
	case TagShortM1:
		return -1, nil
	case TagShort0:
		return 0, nil
	case TagShort1:
		return 1, nil
	case TagShort255:
		b, err := r.ReadByte()
		return Short(b), err
	case TagShortM255:
		b, err := r.ReadByte()
		return Short(-int16(b)), err
	case TagShort:
		u, err := r.ReadUint16()
		return Short(u), err
	default:
		return 0, errs.ErrUnknownTag
	}
}

func writeFloatScalar(w *bio.Writer, v Float32) {
	switch {
	case v == -1:
		w.WriteByte(byte(TagFloatM1))
	case v == 0:
		w.WriteByte(byte(TagFloat0))
	case v == 1:
		w.WriteByte(byte(TagFloat1))
	case v >= 0 && v <= 255 && v == Float32(float32(int32(v))):
		w.WriteByte(byte(TagFloat255))
		w.WriteByte(byte(v))
	case v >= -32768 && v <= 32767 && v == Float32(float32(int32(v))):
		w.WriteByte(byte(TagFloatShort))
		w.WriteUint16(uint16(int16(v)))
	default:
		w.WriteByte(byte(TagFloat))
		w.WriteFloat32(float32(v))
	}
}

func readFloatScalar(r *bio.Reader, t Tag) (Float32, error) {
	switch t {
	case TagFloatM1:
		return -1, nil
	case TagFloat0:
		return 0, nil
	case TagFloat1:
		return 1, nil
	case TagFloat255:
		b, err := r.ReadByte()
		return Float32(b), err
	case TagFloatShort:
		u, err := r.ReadUint16()
		return Float32(int16(u)), err
	case TagFloat:
		v, err := r.ReadFloat32()
		return Float32(v), err
	default:
		return 0, errs.ErrUnknownTag
	}
}

func writeDoubleScalar(w *bio.Writer, v Float64) {
	switch {
	case v == -1:
		w.WriteByte(byte(TagDoubleM1))
	case v == 0:
		w.WriteByte(byte(TagDouble0))
	case v == 1:
		w.WriteByte(byte(TagDouble1))
	case v >= 0 && v <= 255 && v == Float64(float64(int64(v))):
		w.WriteByte(byte(TagDouble255))
		w.WriteByte(byte(v))
	case v >= -32768 && v <= 32767 && v == Float64(float64(int64(v))):
		w.WriteByte(byte(TagDoubleShort))
		w.WriteUint16(uint16(int16(v)))
	case v >= math.MinInt32 && v <= math.MaxInt32 && v == Float64(float64(int64(v))):
		w.WriteByte(byte(TagDoubleInt))
		w.WriteUint32(uint32(int32(v)))
	default:
		w.WriteByte(byte(TagDouble))
		w.WriteFloat64(float64(v))
	}
}

func readDoubleScalar(r *bio.Reader, t Tag) (Float64, error) {
	switch t {
	case TagDoubleM1:
		return -1, nil
	case TagDouble0:
		return 0, nil
	case TagDouble1:
		return 1, nil
	case TagDouble255:
		b, err := r.ReadByte()
		return Float64(b), err
	case TagDoubleShort:
		u, err := r.ReadUint16()
		return Float64(int16(u)), err
	case TagDoubleInt:
		u, err := r.ReadUint32()
		return Float64(int32(u)), err
	case TagDouble:
		v, err := r.ReadFloat64()
		return Float64(v), err
	default:
		return 0, errs.ErrUnknownTag
	}
}

// writeCodeUnits emits each UTF-16 code unit of s as a packed unsigned
// integer, preserving exact code-unit identity (including the surrogate
// pairs of runes outside the basic multilingual plane) rather than
// writing raw UTF-8 bytes.
func writeCodeUnits(w *bio.Writer, s string) {
	for _, u := range utf16.Encode([]rune(s)) {
		w.PackUint32(uint32(u))
	}
}

func readCodeUnits(r *bio.Reader, n int) (string, error) {
	units := make([]uint16, n)
	for i := range units {
		u, err := r.UnpackUint32()
		if err != nil {
			return "", err
		}
		units[i] = uint16(u)
	}
	return string(utf16.Decode(units)), nil
}

func writeString(w *bio.Writer, s Str) {
	units := utf16.Encode([]rune(string(s)))
	if t, ok := stringInlineTag(len(units)); ok {
		w.WriteByte(byte(t))
	} else {
		w.WriteByte(byte(TagString))
		w.PackUint32(uint32(len(units)))
	}
	for _, u := range units {
		w.PackUint32(uint32(u))
	}
}

func readString(r *bio.Reader, t Tag) (Str, error) {
	if n, ok := stringInlineLen(t); ok {
		s, err := readCodeUnits(r, n)
		return Str(s), err
	}
	if t != TagString {
		return "", errs.ErrUnknownTag
	}
	n, err := r.UnpackUint32()
	if err != nil {
		return "", err
	}
	s, err := readCodeUnits(r, int(n))
	return Str(s), err
}

// writeClassToken writes name as a packed-length, raw-UTF-8 string. This is
// a deliberate simplification of the source format's modified-UTF-8 class
// name encoding: Go strings are canonical UTF-8 and there is no ecosystem
// benefit to round-tripping through CESU-8-style modified UTF-8 here.
func writeClassToken(w *bio.Writer, name ClassToken) {
	b := []byte(name)
	w.PackUint32(uint32(len(b)))
	w.WriteBytes(b)
}

func readClassToken(r *bio.Reader) (ClassToken, error) {
	n, err := r.UnpackUint32()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return ClassToken(b), nil
}

func writeBigInt(w *bio.Writer, v BigInt) {
	b := bigIntToSignedBytes(v.V)
	w.PackUint32(uint32(len(b)))
	w.WriteBytes(b)
}

func readBigInt(r *bio.Reader) (BigInt, error) {
	n, err := r.UnpackUint32()
	if err != nil {
		return BigInt{}, err
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return BigInt{}, err
	}
	return BigInt{V: bigIntFromSignedBytes(b)}, nil
}

func writeBigDecimal(w *bio.Writer, v BigDecimal) {
	writeBigInt(w, BigInt{V: v.Unscaled})
	writeInt(w, v.Scale)
}

func readBigDecimal(r *bio.Reader) (BigDecimal, error) {
	unscaled, err := readBigInt(r)
	if err != nil {
		return BigDecimal{}, err
	}
	scaleTag, err := r.ReadByte()
	if err != nil {
		return BigDecimal{}, err
	}
	scale, err := readInt(r, Tag(scaleTag))
	if err != nil {
		return BigDecimal{}, err
	}
	return BigDecimal{Unscaled: unscaled.V, Scale: scale}, nil
}
