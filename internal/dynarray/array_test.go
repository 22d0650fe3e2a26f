package dynarray

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fill(t *testing.T, a *DynamicArray[int], values ...int) {
	t.Helper()
	for _, v := range values {
		if err := a.Append(v); err != nil {
			t.Fatalf("Append(%d): %v", v, err)
		}
	}
}

func TestNew_Empty(t *testing.T) {
	a := New[int]()

	if a.Size() != 0 || a.Capacity() != 0 {
		t.Errorf("size=%d cap=%d, want 0 0", a.Size(), a.Capacity())
	}
	if a.buf != nil {
		t.Error("empty array should not hold a buffer")
	}

	var zero DynamicArray[string]
	if err := zero.Append("x"); err != nil {
		t.Fatalf("zero value append: %v", err)
	}
	if zero.Size() != 1 {
		t.Errorf("zero value size = %d, want 1", zero.Size())
	}
}

func TestNewSized(t *testing.T) {
	a, err := NewSized[int](5)
	if err != nil {
		t.Fatal(err)
	}
	if a.Size() != 5 || a.Capacity() != 5 {
		t.Errorf("size=%d cap=%d, want 5 5", a.Size(), a.Capacity())
	}
	if diff := cmp.Diff([]int{0, 0, 0, 0, 0}, a.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	s, err := NewSized[string](2)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := s.At(1); v != "" {
		t.Errorf("At(1) = %q, want empty string", v)
	}
}

func TestNewSized_Zero(t *testing.T) {
	tr := NewTracker()
	a, err := NewSized[int](0, WithTracker(tr))
	if err != nil {
		t.Fatal(err)
	}
	if a.Size() != 0 || a.Capacity() != 0 || a.buf != nil {
		t.Errorf("NewSized(0) should match the default state, got size=%d cap=%d", a.Size(), a.Capacity())
	}
	if tr.Allocations() != 0 {
		t.Errorf("allocations = %d, want 0", tr.Allocations())
	}
}

func TestNewSized_Failures(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		cause error
	}{
		{"negative", -1, errNegativeSlots},
		{"overflow", math.MaxInt64 / 4, errTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewSized[int64](tt.n)
			if a != nil {
				t.Error("expected nil array on failure")
			}
			if !errors.Is(err, ErrAllocation) {
				t.Fatalf("err = %v, want ErrAllocation", err)
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("err = %v, want cause %v", err, tt.cause)
			}
			var ae *AllocationError
			if !errors.As(err, &ae) || ae.Slots != tt.n {
				t.Errorf("AllocationError slots mismatch: %+v", ae)
			}
		})
	}
}

func TestAppend_Values(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 7, 8, 100, 1000} {
		a := New[int]()
		want := make([]int, n)
		for i := 0; i < n; i++ {
			want[i] = i * 3
			if err := a.Append(i * 3); err != nil {
				t.Fatal(err)
			}
		}
		if a.Size() != n {
			t.Errorf("n=%d: size = %d", n, a.Size())
		}
		for i := 0; i < n; i++ {
			if got, _ := a.At(i); got != want[i] {
				t.Errorf("n=%d: At(%d) = %d, want %d", n, i, got, want[i])
			}
		}
		if a.Size() > a.Capacity() {
			t.Errorf("n=%d: size %d exceeds capacity %d", n, a.Size(), a.Capacity())
		}
	}
}

func TestAppend_CapacitySequence(t *testing.T) {
	a := New[int]()
	want := []int{1, 3, 3, 7, 7, 7, 7, 15}

	var got []int
	for i := range want {
		fill(t, a, i)
		got = append(got, a.Capacity())
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("capacity sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestAppend_GrowsFromSized(t *testing.T) {
	a, err := NewSized[int](2)
	if err != nil {
		t.Fatal(err)
	}
	fill(t, a, 9)
	if a.Capacity() != 5 {
		t.Errorf("capacity = %d, want 5", a.Capacity())
	}
	if diff := cmp.Diff([]int{0, 0, 9}, a.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestNextCapacity(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1},
		{1, 3},
		{3, 7},
		{7, 15},
		{15, 31},
	}
	for _, tt := range tests {
		if got := NextCapacity(tt.in); got != tt.want {
			t.Errorf("NextCapacity(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	a := New[int]()
	fill(t, a, 0, 1, 2, 3, 4)

	b, err := a.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Set(0, 6); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]int{0, 1, 2, 3, 4}, b.Values()); diff != "" {
		t.Errorf("clone changed after source mutation (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{6, 1, 2, 3, 4}, a.Values()); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}

	if err := b.Set(4, 40); err != nil {
		t.Fatal(err)
	}
	if v, _ := a.At(4); v != 4 {
		t.Errorf("source changed after clone mutation: At(4) = %d", v)
	}
}

func TestClone_ShrinksCapacity(t *testing.T) {
	a := New[int]()
	fill(t, a, 0, 1, 2, 3, 4)
	if a.Capacity() != 7 {
		t.Fatalf("capacity = %d, want 7", a.Capacity())
	}

	b, err := a.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if b.Size() != 5 || b.Capacity() != 5 {
		t.Errorf("clone size=%d cap=%d, want 5 5", b.Size(), b.Capacity())
	}
}

func TestClone_Empty(t *testing.T) {
	a := New[int]()
	b, err := a.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if b.Size() != 0 || b.Capacity() != 0 || b.buf != nil {
		t.Errorf("clone of empty array: size=%d cap=%d", b.Size(), b.Capacity())
	}

	fill(t, b, 1)
	if a.Size() != 0 {
		t.Error("appending to the clone must not touch the source")
	}
}

func TestAssign_Independent(t *testing.T) {
	a := New[int]()
	fill(t, a, 6, 1, 2, 3, 4)
	b := New[int]()
	fill(t, b, 9, 9)

	got, err := b.Assign(a)
	if err != nil {
		t.Fatal(err)
	}
	if got != b {
		t.Error("Assign should return the receiver")
	}
	if diff := cmp.Diff(a.Values(), b.Values()); diff != "" {
		t.Errorf("assigned contents mismatch (-want +got):\n%s", diff)
	}
	if b.Capacity() != 5 {
		t.Errorf("capacity = %d, want 5", b.Capacity())
	}

	if err := a.Set(1, 100); err != nil {
		t.Fatal(err)
	}
	if v, _ := b.At(1); v != 1 {
		t.Errorf("assigned array changed after source mutation: At(1) = %d", v)
	}
}

func TestAssign_Chained(t *testing.T) {
	a := New[int]()
	fill(t, a, 1, 2, 3)
	b := New[int]()
	c := New[int]()

	bb, err := b.Assign(a)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Assign(bb); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, c.Values()); diff != "" {
		t.Errorf("chained assign mismatch (-want +got):\n%s", diff)
	}
}

func TestAssign_Self(t *testing.T) {
	tr := NewTracker()
	a := New[int](WithTracker(tr))
	fill(t, a, 6, 1, 2, 3, 4)
	allocs := tr.Allocations()

	got, err := a.Assign(a)
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Error("self-assign should return the receiver")
	}
	if a.Size() != 5 || a.Capacity() != 7 {
		t.Errorf("size=%d cap=%d, want 5 7", a.Size(), a.Capacity())
	}
	if diff := cmp.Diff([]int{6, 1, 2, 3, 4}, a.Values()); diff != "" {
		t.Errorf("contents changed (-want +got):\n%s", diff)
	}
	if tr.Allocations() != allocs || tr.Releases() != 0 {
		t.Errorf("self-assign touched the buffer: allocs=%d releases=%d", tr.Allocations(), tr.Releases())
	}
}

func TestAssign_FromEmpty(t *testing.T) {
	a := New[int]()
	b := New[int]()
	fill(t, b, 1, 2)

	if _, err := b.Assign(a); err != nil {
		t.Fatal(err)
	}
	if b.Size() != 0 || b.Capacity() != 0 || b.buf != nil {
		t.Errorf("size=%d cap=%d, want default state", b.Size(), b.Capacity())
	}
}

func TestAssign_FailureLeavesEmpty(t *testing.T) {
	src := New[int64]()
	fill64 := func(a *DynamicArray[int64], n int) {
		for i := 0; i < n; i++ {
			if err := a.Append(int64(i)); err != nil {
				t.Fatal(err)
			}
		}
	}
	fill64(src, 5)

	// 8 bytes per slot: the destination's single slot fits, five do not.
	tr := NewTracker(WithLimit(16))
	dst := New[int64](WithTracker(tr))
	fill64(dst, 1)

	_, err := dst.Assign(src)
	if !errors.Is(err, ErrAllocation) || !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("err = %v, want allocation failure from limit", err)
	}
	if dst.Size() != 0 || dst.Capacity() != 0 || dst.buf != nil {
		t.Errorf("failed assign left size=%d cap=%d", dst.Size(), dst.Capacity())
	}
	if tr.Live() != 0 || tr.LiveBytes() != 0 {
		t.Errorf("live=%d live_bytes=%d, want 0 0", tr.Live(), tr.LiveBytes())
	}
}

func TestAppend_FailureLeavesArrayUnchanged(t *testing.T) {
	// growth holds old and new buffers at once: 1 + 3 slots fit, 3 + 7 do not.
	tr := NewTracker(WithLimit(4 * 8))
	a := New[int64](WithTracker(tr))
	for i := int64(0); i < 3; i++ {
		if err := a.Append(i); err != nil {
			t.Fatal(err)
		}
	}

	err := a.Append(3)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("err = %v, want ErrLimitExceeded", err)
	}
	if a.Size() != 3 || a.Capacity() != 3 {
		t.Errorf("size=%d cap=%d, want 3 3", a.Size(), a.Capacity())
	}
	if diff := cmp.Diff([]int64{0, 1, 2}, a.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestAccess_OutOfRange(t *testing.T) {
	a := New[int]()
	fill(t, a, 1, 2)

	for _, i := range []int{-1, 2, 3, 100} {
		if _, err := a.At(i); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("At(%d) err = %v, want ErrOutOfRange", i, err)
		}
		if p, err := a.Ref(i); p != nil || !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Ref(%d) = %v, %v; want nil, ErrOutOfRange", i, p, err)
		}
		if err := a.Set(i, 0); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Set(%d) err = %v, want ErrOutOfRange", i, err)
		}
	}

	// index 2 lies inside the capacity but past the logical size
	if a.Capacity() <= 2 {
		t.Fatalf("capacity = %d, test needs spare slots", a.Capacity())
	}
	_, err := a.At(2)
	var ie *IndexError
	if !errors.As(err, &ie) || ie.Index != 2 || ie.Size != 2 {
		t.Errorf("IndexError = %+v", ie)
	}
}

func TestRef_Mutates(t *testing.T) {
	a := New[int]()
	fill(t, a, 1, 2, 3)

	p, err := a.Ref(1)
	if err != nil {
		t.Fatal(err)
	}
	*p = 20
	if v, _ := a.At(1); v != 20 {
		t.Errorf("At(1) = %d, want 20", v)
	}
}

func TestRelease(t *testing.T) {
	a := New[int]()
	fill(t, a, 1, 2, 3)

	a.Release()
	if a.Size() != 0 || a.Capacity() != 0 || a.buf != nil {
		t.Errorf("size=%d cap=%d after release", a.Size(), a.Capacity())
	}
	a.Release()

	fill(t, a, 7)
	if a.Capacity() != 1 {
		t.Errorf("reuse after release: capacity = %d, want 1", a.Capacity())
	}
}

func TestValues_IsCopy(t *testing.T) {
	a := New[int]()
	fill(t, a, 1, 2)

	v := a.Values()
	v[0] = 99
	if got, _ := a.At(0); got != 1 {
		t.Errorf("mutating Values() changed the array: At(0) = %d", got)
	}
}

func TestString(t *testing.T) {
	a := New[int]()
	if a.String() != "[]" {
		t.Errorf("empty String() = %q", a.String())
	}
	fill(t, a, 0, 1, 2, 3, 4)
	if a.String() != "[0 1 2 3 4]" {
		t.Errorf("String() = %q", a.String())
	}
}
