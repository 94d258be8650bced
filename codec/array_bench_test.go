package codec

import "testing"

// benchmarkArraySizes spans small to large arrays, measuring how the
// width-selection scan amortizes as element count grows.
var benchmarkArraySizes = []struct {
	name string
	size int
}{
	{"10_elems", 10},
	{"100_elems", 100},
	{"1000_elems", 1000},
}

func generateIntArray(n int) IntArray {
	arr := make(IntArray, n)
	for i := range arr {
		arr[i] = int32(i%200) - 50
	}
	return arr
}

func generateLongArray(n int) LongArray {
	arr := make(LongArray, n)
	for i := range arr {
		arr[i] = int64(i) * 1_000_000
	}
	return arr
}

func BenchmarkWriteIntArray(b *testing.B) {
	for _, size := range benchmarkArraySizes {
		b.Run(size.name, func(b *testing.B) {
			arr := generateIntArray(size.size)
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Write(arr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkWriteLongArray(b *testing.B) {
	for _, size := range benchmarkArraySizes {
		b.Run(size.name, func(b *testing.B) {
			arr := generateLongArray(size.size)
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Write(arr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecodeIntArray(b *testing.B) {
	for _, size := range benchmarkArraySizes {
		b.Run(size.name, func(b *testing.B) {
			arr := generateIntArray(size.size)
			encoded, err := Write(arr)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Decode(encoded); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkWriteBoolArray(b *testing.B) {
	for _, size := range benchmarkArraySizes {
		b.Run(size.name, func(b *testing.B) {
			arr := make(BoolArray, size.size)
			for i := range arr {
				arr[i] = i%3 == 0
			}
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Write(arr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
