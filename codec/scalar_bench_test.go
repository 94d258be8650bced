package codec

import "testing"

// benchmarkInts spans the literal, width-adaptive, and full-width tiers so
// the benchmark reflects realistic tag-dispatch branching rather than a
// single hot path.
var benchmarkInts = []int32{-9, 16, 17, -200, 70000, -1_000_000, 2_000_000_000}

func BenchmarkWriteInt(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		for _, v := range benchmarkInts {
			if _, err := Write(Int(v)); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkDecodeInt(b *testing.B) {
	encoded := make([][]byte, len(benchmarkInts))
	for i, v := range benchmarkInts {
		bs, err := Write(Int(v))
		if err != nil {
			b.Fatal(err)
		}
		encoded[i] = bs
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		for _, bs := range encoded {
			if _, err := Decode(bs); err != nil {
				b.Fatal(err)
			}
		}
	}
}

var benchmarkLongs = []int64{-9, 16, 17, -200, 70000, -1_000_000, 1 << 40, -(1 << 50)}

func BenchmarkWriteLong(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		for _, v := range benchmarkLongs {
			if _, err := Write(Long(v)); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkWriteString(b *testing.B) {
	vals := []Str{"", "abc", "a longer string that exceeds the inline tag budget entirely"}
	b.ReportAllocs()
	for b.Loop() {
		for _, v := range vals {
			if _, err := Write(v); err != nil {
				b.Fatal(err)
			}
		}
	}
}
