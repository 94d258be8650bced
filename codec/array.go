package codec

import (
	"math"

	"github.com/arloliu/wirekv/errs"
	"github.com/arloliu/wirekv/internal/bio"
)

func writeByteArray(w *bio.Writer, arr ByteArray) {
	if len(arr) > 0 && allBytesEqual(arr) {
		w.WriteByte(byte(TagArrayByteAllEqual))
		w.PackUint32(uint32(len(arr)))
		w.WriteByte(arr[0])
		return
	}
	w.WriteByte(byte(TagArrayByte))
	w.PackUint32(uint32(len(arr)))
	w.WriteBytes(arr)
}

func allBytesEqual(arr ByteArray) bool {
	for _, b := range arr[1:] {
		if b != arr[0] {
			return false
		}
	}
	return true
}

func readByteArray(r *bio.Reader, t Tag) (ByteArray, error) {
	n, err := r.UnpackUint32()
	if err != nil {
		return nil, err
	}
	switch t {
	case TagArrayByteAllEqual:
		v, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		arr := make(ByteArray, n)
		for i := range arr {
			arr[i] = v
		}
		return arr, nil
	case TagArrayByte:
		p, err := r.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}
		arr := make(ByteArray, len(p))
		copy(arr, p)
		return arr, nil
	default:
		return nil, errs.ErrUnknownTag
	}
}

func writeBoolArray(w *bio.Writer, arr BoolArray) {
	w.WriteByte(byte(TagArrayBoolean))
	w.PackUint32(uint32(len(arr)))
	nBytes := (len(arr) + 7) / 8
	packed := make([]byte, nBytes)
	for i, b := range arr {
		if b {
			packed[i/8] |= 1 << uint(i%8)
		}
	}
	w.WriteBytes(packed)
}

func readBoolArray(r *bio.Reader) (BoolArray, error) {
	n, err := r.UnpackUint32()
	if err != nil {
		return nil, err
	}
	nBytes := (int(n) + 7) / 8
	packed, err := r.ReadBytes(nBytes)
	if err != nil {
		return nil, err
	}
	arr := make(BoolArray, n)
	for i := range arr {
		arr[i] = packed[i/8]&(1<<uint(i%8)) != 0
	}
	return arr, nil
}

func writeShortArray(w *bio.Writer, arr ShortArray) {
	w.WriteByte(byte(TagArrayShort))
	w.PackUint32(uint32(len(arr)))
	for _, v := range arr {
		w.WriteUint16(uint16(v))
	}
}

func readShortArray(r *bio.Reader) (ShortArray, error) {
	n, err := r.UnpackUint32()
	if err != nil {
		return nil, err
	}
	arr := make(ShortArray, n)
	for i := range arr {
		u, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		arr[i] = int16(u)
	}
	return arr, nil
}

func writeCharArray(w *bio.Writer, arr CharArray) {
	w.WriteByte(byte(TagArrayChar))
	w.PackUint32(uint32(len(arr)))
	for _, v := range arr {
		w.WriteUint16(v)
	}
}

func readCharArray(r *bio.Reader) (CharArray, error) {
	n, err := r.UnpackUint32()
	if err != nil {
		return nil, err
	}
	arr := make(CharArray, n)
	for i := range arr {
		u, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		arr[i] = u
	}
	return arr, nil
}

func writeFloatArray(w *bio.Writer, arr FloatArray) {
	w.WriteByte(byte(TagArrayFloat))
	w.PackUint32(uint32(len(arr)))
	for _, v := range arr {
		w.WriteFloat32(v)
	}
}

func readFloatArray(r *bio.Reader) (FloatArray, error) {
	n, err := r.UnpackUint32()
	if err != nil {
		return nil, err
	}
	arr := make(FloatArray, n)
	for i := range arr {
		v, err := r.ReadFloat32()
		if err != nil {
			return nil, err
		}
		arr[i] = v
	}
	return arr, nil
}

func writeDoubleArray(w *bio.Writer, arr DoubleArray) {
	w.WriteByte(byte(TagArrayDouble))
	w.PackUint32(uint32(len(arr)))
	for _, v := range arr {
		w.WriteFloat64(v)
	}
}

func readDoubleArray(r *bio.Reader) (DoubleArray, error) {
	n, err := r.UnpackUint32()
	if err != nil {
		return nil, err
	}
	arr := make(DoubleArray, n)
	for i := range arr {
		v, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		arr[i] = v
	}
	return arr, nil
}

// writeIntArray scans arr once for (min,max) and picks the tightest of
// ARRAY_INT_BYTE/SHORT/PACKED/full.
func writeIntArray(w *bio.Writer, arr IntArray) {
	var min, max int32
	if len(arr) > 0 {
		min, max = arr[0], arr[0]
		for _, v := range arr[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	switch {
	case len(arr) == 0 || (min >= math.MinInt8 && max <= math.MaxInt8):
		w.WriteByte(byte(TagArrayIntByte))
		w.PackUint32(uint32(len(arr)))
		for _, v := range arr {
			w.WriteByte(byte(int8(v)))
		}
	case min >= math.MinInt16 && max <= math.MaxInt16:
		w.WriteByte(byte(TagArrayIntShort))
		w.PackUint32(uint32(len(arr)))
		for _, v := range arr {
			w.WriteUint16(uint16(int16(v)))
		}
	case min >= 0:
		w.WriteByte(byte(TagArrayIntPacked))
		w.PackUint32(uint32(len(arr)))
		for _, v := range arr {
			w.PackUint32(uint32(v))
		}
	default:
		w.WriteByte(byte(TagArrayInt))
		w.PackUint32(uint32(len(arr)))
		for _, v := range arr {
			w.WriteUint32(uint32(v))
		}
	}
}

func readIntArray(r *bio.Reader, t Tag) (IntArray, error) {
	n, err := r.UnpackUint32()
	if err != nil {
		return nil, err
	}
	arr := make(IntArray, n)
	switch t {
	case TagArrayIntByte:
		for i := range arr {
			b, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			arr[i] = int32(int8(b))
		}
	case TagArrayIntShort:
		for i := range arr {
			u, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			arr[i] = int32(int16(u))
		}
	case TagArrayIntPacked:
		for i := range arr {
			u, err := r.UnpackUint32()
			if err != nil {
				return nil, err
			}
			arr[i] = int32(u)
		}
	case TagArrayInt:
		for i := range arr {
			u, err := r.ReadUint32()
			if err != nil {
				return nil, err
			}
			arr[i] = int32(u)
		}
	default:
		return nil, errs.ErrUnknownTag
	}
	return arr, nil
}

func writeLongArray(w *bio.Writer, arr LongArray) {
	var min, max int64
	if len(arr) > 0 {
		min, max = arr[0], arr[0]
		for _, v := range arr[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	switch {
	case len(arr) == 0 || (min >= math.MinInt8 && max <= math.MaxInt8):
		w.WriteByte(byte(TagArrayLongByte))
		w.PackUint32(uint32(len(arr)))
		for _, v := range arr {
			w.WriteByte(byte(int8(v)))
		}
	case min >= math.MinInt16 && max <= math.MaxInt16:
		w.WriteByte(byte(TagArrayLongShort))
		w.PackUint32(uint32(len(arr)))
		for _, v := range arr {
			w.WriteUint16(uint16(int16(v)))
		}
	case min >= 0:
		w.WriteByte(byte(TagArrayLongPacked))
		w.PackUint32(uint32(len(arr)))
		for _, v := range arr {
			w.PackUint64(uint64(v))
		}
	case min >= math.MinInt32 && max <= math.MaxInt32:
		w.WriteByte(byte(TagArrayLongInt))
		w.PackUint32(uint32(len(arr)))
		for _, v := range arr {
			w.WriteUint32(uint32(int32(v)))
		}
	default:
		w.WriteByte(byte(TagArrayLong))
		w.PackUint32(uint32(len(arr)))
		for _, v := range arr {
			w.WriteUint64(uint64(v))
		}
	}
}

func readLongArray(r *bio.Reader, t Tag) (LongArray, error) {
	n, err := r.UnpackUint32()
	if err != nil {
		return nil, err
	}
	arr := make(LongArray, n)
	switch t {
	case TagArrayLongByte:
		for i := range arr {
			b, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			arr[i] = int64(int8(b))
		}
	case TagArrayLongShort:
		for i := range arr {
			u, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			arr[i] = int64(int16(u))
		}
	case TagArrayLongPacked:
		for i := range arr {
			u, err := r.UnpackUint64()
			if err != nil {
				return nil, err
			}
			arr[i] = int64(u)
		}
	case TagArrayLongInt:
		for i := range arr {
			u, err := r.ReadUint32()
			if err != nil {
				return nil, err
			}
			arr[i] = int64(int32(u))
		}
	case TagArrayLong:
		for i := range arr {
			u, err := r.ReadUint64()
			if err != nil {
				return nil, err
			}
			arr[i] = int64(u)
		}
	default:
		return nil, errs.ErrUnknownTag
	}
	return arr, nil
}
