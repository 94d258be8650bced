package codec

import "testing"

func generateList(n int) *List {
	elems := make([]Value, n)
	for i := range elems {
		elems[i] = Int(int32(i))
	}
	return &List{Elems: elems}
}

func generateHashSet(n int) *HashSet {
	elems := make([]Value, n)
	for i := range elems {
		elems[i] = Int(int32(i))
	}
	return &HashSet{Elems: elems}
}

func BenchmarkWriteList(b *testing.B) {
	for _, size := range benchmarkArraySizes {
		b.Run(size.name, func(b *testing.B) {
			lst := generateList(size.size)
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Write(lst); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkWriteHashSet measures the cost of the canonical hash-bucket
// ordering pass (one disposable encode per element) on top of the plain
// container write BenchmarkWriteList already covers.
func BenchmarkWriteHashSet(b *testing.B) {
	for _, size := range benchmarkArraySizes {
		b.Run(size.name, func(b *testing.B) {
			set := generateHashSet(size.size)
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Write(set); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecodeList(b *testing.B) {
	for _, size := range benchmarkArraySizes {
		b.Run(size.name, func(b *testing.B) {
			lst := generateList(size.size)
			encoded, err := Write(lst)
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
