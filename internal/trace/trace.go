// Package trace records how a DynamicArray's size and capacity evolve
// under a run of appends.
package trace

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/san-kum/dynarray/internal/dynarray"
)

// maxPrealloc bounds the points reserved up front; longer runs grow the
// slice as they go.
const maxPrealloc = 1024

// Point is the state of the array right after one append.
type Point struct {
	Append   int  `json:"append"`
	Size     int  `json:"size"`
	Capacity int  `json:"capacity"`
	Grew     bool `json:"grew"`
}

type Trace struct {
	Points []Point `json:"points"`
}

// Record appends 0..n-1 to an empty array and samples it after every
// append. If an append fails the points gathered so far are returned with
// the error.
func Record(n int, opts ...dynarray.Option) (*Trace, error) {
	if n < 0 {
		return nil, errors.Errorf("append count must be non-negative, got %d", n)
	}

	a := dynarray.New[int](opts...)
	defer a.Release()

	tr := &Trace{Points: make([]Point, 0, min(n, maxPrealloc))}
	for i := 0; i < n; i++ {
		before := a.Capacity()
		if err := a.Append(i); err != nil {
			return tr, errors.Wrapf(err, "append %d", i+1)
		}
		tr.Points = append(tr.Points, Point{
			Append:   i + 1,
			Size:     a.Size(),
			Capacity: a.Capacity(),
			Grew:     a.Capacity() != before,
		})
	}
	return tr, nil
}

func (t *Trace) Len() int { return len(t.Points) }

func (t *Trace) Capacities() []float64 {
	caps := make([]int, len(t.Points))
	for i, p := range t.Points {
		caps[i] = p.Capacity
	}
	return toFloats(caps)
}

func (t *Trace) Sizes() []float64 {
	sizes := make([]int, len(t.Points))
	for i, p := range t.Points {
		sizes[i] = p.Size
	}
	return toFloats(sizes)
}

func (t *Trace) Reallocations() int {
	n := 0
	for _, p := range t.Points {
		if p.Grew {
			n++
		}
	}
	return n
}

// CopiedElements is the number of element copies all growths performed.
// It stays below twice the number of appends.
func (t *Trace) CopiedElements() int {
	n := 0
	for _, p := range t.Points {
		if p.Grew {
			n += p.Size - 1
		}
	}
	return n
}

func (t *Trace) FinalCapacity() int {
	if len(t.Points) == 0 {
		return 0
	}
	return t.Points[len(t.Points)-1].Capacity
}

func toFloats[N constraints.Integer](xs []N) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
