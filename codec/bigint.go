package codec

import "math/big"

// bigIntToSignedBytes renders v as a minimal-length signed two's-complement
// big-endian byte sequence, the same shape java.math.BigInteger.toByteArray
// produces, used as the on-wire payload for BIGINTEGER values.
//
// math/big only exposes unsigned magnitude bytes (Int.Bytes), so the
// two's-complement form for negative values is computed directly: find the
// smallest byte width whose 2^(8*width)-|v| representation has its sign bit
// set.
func bigIntToSignedBytes(v *big.Int) []byte {
	if v.Sign() == 0 {
		return []byte{0}
	}
	if v.Sign() > 0 {
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}

	abs := new(big.Int).Abs(v)
	size := len(abs.Bytes())
	for {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(size*8))
		tc := new(big.Int).Sub(mod, abs)
		b := tc.Bytes()
		for len(b) < size {
			b = append([]byte{0}, b...)
		}
		if b[0]&0x80 != 0 {
			return b
		}
		size++
	}
}

// bigIntFromSignedBytes is the inverse of bigIntToSignedBytes.
func bigIntFromSignedBytes(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))
		v.Sub(v, mod)
	}
	return v
}
