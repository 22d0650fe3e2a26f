// Package dynarray provides a growable, single-owner contiguous buffer.
//
// The package is built around two types:
//
//   - [DynamicArray]: a generic array with amortized O(1) [DynamicArray.Append]
//   - [Tracker]: optional accounting of buffer acquisition and release
//
// # Growth
//
// When an append finds the buffer full, the capacity grows to
// [NextCapacity] of the current one (2*c + 1), giving the sequence
// 1, 3, 7, 15, ... from an empty array.
//
// # Copies
//
// [DynamicArray.Clone] and [DynamicArray.Assign] always allocate a fresh
// buffer sized to the source's logical size. The spare capacity of the
// source is not carried over, so a copy of an array with size 5 and
// capacity 7 has capacity 5.
//
// # Indexing
//
// Element access is checked. An index outside [0, Size()) yields an
// [*IndexError] matching [ErrOutOfRange] instead of reading stale slots.
//
// # Example
//
//	a := dynarray.New[int]()
//	for i := 0; i < 5; i++ {
//		_ = a.Append(i)
//	}
//	b, _ := a.Clone()
//	_ = a.Set(0, 6)
//	fmt.Println(b) // [0 1 2 3 4]
//
// # Thread Safety
//
// DynamicArray instances are NOT thread-safe. A [Tracker] may be shared by
// arrays living on different goroutines.
package dynarray
