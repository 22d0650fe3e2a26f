package dynarray

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"golang.org/x/exp/slices"
)

// DynamicArray is a growable array that exclusively owns its buffer.
// The zero value is an empty array ready to use.
type DynamicArray[T any] struct {
	buf     []T // len(buf) is the capacity; nil iff capacity == 0
	size    int
	tracker *Tracker
}

type Option func(*options)

type options struct {
	tracker *Tracker
}

// WithTracker reports every buffer the array acquires or releases to t.
func WithTracker(t *Tracker) Option {
	return func(o *options) {
		o.tracker = t
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns an empty array with no buffer.
func New[T any](opts ...Option) *DynamicArray[T] {
	o := buildOptions(opts)
	return &DynamicArray[T]{tracker: o.tracker}
}

// NewSized returns an array holding n zero values with capacity n.
func NewSized[T any](n int, opts ...Option) (*DynamicArray[T], error) {
	a := New[T](opts...)
	buf, err := allocate[T](a.tracker, n)
	if err != nil {
		return nil, err
	}
	a.buf = buf
	a.size = n
	return a, nil
}

// NextCapacity is the growth policy applied when an append finds the
// buffer full.
func NextCapacity(capacity int) int {
	return 2*capacity + 1
}

func (a *DynamicArray[T]) Size() int         { return a.size }
func (a *DynamicArray[T]) Capacity() int     { return len(a.buf) }
func (a *DynamicArray[T]) Tracker() *Tracker { return a.tracker }

// Append adds v after the last element, growing the buffer if it is full.
// On allocation failure the array is left unchanged.
func (a *DynamicArray[T]) Append(v T) error {
	if a.size == len(a.buf) {
		next := NextCapacity(len(a.buf))
		if next <= len(a.buf) {
			return &AllocationError{Slots: next, Err: errTooLarge}
		}
		if err := a.reallocate(next); err != nil {
			return err
		}
	}
	a.buf[a.size] = v
	a.size++
	return nil
}

func (a *DynamicArray[T]) At(i int) (T, error) {
	if err := a.checkIndex(i); err != nil {
		var zero T
		return zero, err
	}
	return a.buf[i], nil
}

// Ref returns a pointer to element i. The pointer is valid until the next
// reallocation of the buffer.
func (a *DynamicArray[T]) Ref(i int) (*T, error) {
	if err := a.checkIndex(i); err != nil {
		return nil, err
	}
	return &a.buf[i], nil
}

func (a *DynamicArray[T]) Set(i int, v T) error {
	if err := a.checkIndex(i); err != nil {
		return err
	}
	a.buf[i] = v
	return nil
}

// Clone returns a deep copy whose capacity equals the receiver's size.
// The copy reports to the same Tracker as the receiver.
func (a *DynamicArray[T]) Clone() (*DynamicArray[T], error) {
	c := &DynamicArray[T]{tracker: a.tracker}
	if err := c.copyFrom(a); err != nil {
		return nil, err
	}
	return c, nil
}

// Assign replaces the receiver's contents with a deep copy of src and
// returns the receiver. Assigning an array to itself is a no-op. The old
// buffer is released before the new one is acquired; if that acquisition
// fails the receiver is left empty.
func (a *DynamicArray[T]) Assign(src *DynamicArray[T]) (*DynamicArray[T], error) {
	if a == src {
		return a, nil
	}
	a.Release()
	if err := a.copyFrom(src); err != nil {
		return a, err
	}
	return a, nil
}

// Release drops the buffer and empties the array. Calling it again, or on
// an array that never allocated, does nothing.
func (a *DynamicArray[T]) Release() {
	a.dropBuffer()
	a.size = 0
}

// Values returns a copy of the elements in [0, Size()).
func (a *DynamicArray[T]) Values() []T {
	return slices.Clone(a.buf[:a.size])
}

func (a *DynamicArray[T]) String() string {
	return fmt.Sprint(a.buf[:a.size])
}

func (a *DynamicArray[T]) checkIndex(i int) error {
	if i < 0 || i >= a.size {
		return &IndexError{Index: i, Size: a.size}
	}
	return nil
}

func (a *DynamicArray[T]) copyFrom(src *DynamicArray[T]) error {
	buf, err := allocate[T](a.tracker, src.size)
	if err != nil {
		return err
	}
	copy(buf, src.buf[:src.size])
	a.buf = buf
	a.size = src.size
	return nil
}

func (a *DynamicArray[T]) reallocate(capacity int) error {
	buf, err := allocate[T](a.tracker, capacity)
	if err != nil {
		return err
	}
	copy(buf, a.buf[:a.size])
	a.dropBuffer()
	a.buf = buf
	return nil
}

func (a *DynamicArray[T]) dropBuffer() {
	if a.buf == nil {
		return
	}
	n := len(a.buf)
	a.buf = nil
	a.tracker.release(n, bufferBytes[T](n))
}

func bufferBytes[T any](slots int) int64 {
	var zero T
	return int64(slots) * int64(unsafe.Sizeof(zero))
}

// allocate returns a zeroed buffer of exactly slots elements, or nil for
// zero slots.
func allocate[T any](t *Tracker, slots int) ([]T, error) {
	if slots < 0 {
		return nil, &AllocationError{Slots: slots, Err: errNegativeSlots}
	}
	if slots == 0 {
		return nil, nil
	}
	var zero T
	if elem := int64(unsafe.Sizeof(zero)); elem > 0 && int64(slots) > math.MaxInt64/elem {
		return nil, &AllocationError{Slots: slots, Err: errTooLarge}
	}
	bytes := bufferBytes[T](slots)
	if err := t.reserve(slots, bytes); err != nil {
		return nil, &AllocationError{Slots: slots, Bytes: bytes, Err: err}
	}
	buf, err := makeBuffer[T](slots)
	if err != nil {
		t.refund(bytes)
		return nil, &AllocationError{Slots: slots, Bytes: bytes, Err: err}
	}
	t.commit(slots, bytes)
	return buf, nil
}

func makeBuffer[T any](slots int) (buf []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			err = re
		}
	}()
	return make([]T, slots), nil
}
