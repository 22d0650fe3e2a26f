package dynarray

import "testing"

func BenchmarkAppend(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a := New[int]()
		for j := 0; j < 1024; j++ {
			_ = a.Append(j)
		}
	}
}

func BenchmarkAppendTracked(b *testing.B) {
	tr := NewTracker()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a := New[int](WithTracker(tr))
		for j := 0; j < 1024; j++ {
			_ = a.Append(j)
		}
		a.Release()
	}
}

func BenchmarkClone(b *testing.B) {
	a := New[int]()
	for j := 0; j < 1024; j++ {
		_ = a.Append(j)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, _ := a.Clone()
		_ = c
	}
}
