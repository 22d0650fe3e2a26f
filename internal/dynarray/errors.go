package dynarray

import (
	"errors"
	"fmt"
)

// Domain errors for array operations.
var (
	// ErrAllocation indicates that buffer storage could not be obtained.
	ErrAllocation = errors.New("dynarray: allocation failed")

	// ErrOutOfRange indicates an index outside [0, size).
	ErrOutOfRange = errors.New("dynarray: index out of range")

	// ErrLimitExceeded indicates a Tracker byte limit refused an allocation.
	ErrLimitExceeded = errors.New("dynarray: tracker limit exceeded")

	errNegativeSlots = errors.New("negative slot count")
	errTooLarge      = errors.New("slot count overflows addressable memory")
)

// AllocationError describes a failed buffer allocation. It matches
// ErrAllocation as well as the underlying cause.
type AllocationError struct {
	Slots int
	Bytes int64
	Err   error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%v: %d slots (%d bytes): %v", ErrAllocation, e.Slots, e.Bytes, e.Err)
}

func (e *AllocationError) Unwrap() []error {
	return []error{ErrAllocation, e.Err}
}

// IndexError wraps ErrOutOfRange with the offending index.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: index %d, size %d", ErrOutOfRange, e.Index, e.Size)
}

func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}
