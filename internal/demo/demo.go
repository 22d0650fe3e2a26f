// Package demo walks a DynamicArray through copy, mutation and
// assignment, and reports what each array holds along the way.
package demo

import (
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/san-kum/dynarray/internal/config"
	"github.com/san-kum/dynarray/internal/dynarray"
)

type Snapshot struct {
	Label    string `json:"label"`
	Values   []int  `json:"values"`
	Size     int    `json:"size"`
	Capacity int    `json:"capacity"`
}

// Line formats the values space separated, e.g. "0 1 2 3 4".
func (s Snapshot) Line() string {
	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

type Report struct {
	// Copy is the clone taken before the original was mutated.
	Copy Snapshot `json:"copy"`
	// Original is the source array after the mutation.
	Original Snapshot `json:"original"`
	// Assigned is the clone after being assigned the mutated original.
	Assigned     Snapshot `json:"assigned"`
	SelfAssigned Snapshot `json:"self_assigned"`
	Mutated      bool     `json:"mutated"`

	Allocations int64 `json:"allocations"`
	Releases    int64 `json:"releases"`
	PeakBytes   int64 `json:"peak_bytes"`
}

func snapshot(label string, a *dynarray.DynamicArray[int]) Snapshot {
	return Snapshot{
		Label:    label,
		Values:   a.Values(),
		Size:     a.Size(),
		Capacity: a.Capacity(),
	}
}

// Run builds an array from cfg.Values, clones it, mutates the original,
// assigns the original back over the clone and finally self-assigns the
// original. Both arrays are released before the report is returned.
func Run(cfg *config.Config, logger log.Logger) (*Report, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tk := dynarray.NewTracker(
		dynarray.WithLimit(cfg.LimitBytes),
		dynarray.WithLogger(logger),
	)

	a := dynarray.New[int](dynarray.WithTracker(tk))
	defer a.Release()
	for _, v := range cfg.Values {
		if err := a.Append(v); err != nil {
			return nil, errors.Wrap(err, "build original")
		}
	}
	level.Debug(logger).Log("msg", "built original", "size", a.Size(), "capacity", a.Capacity())

	b, err := a.Clone()
	if err != nil {
		return nil, errors.Wrap(err, "copy original")
	}
	defer b.Release()

	rep := &Report{}
	if a.Size() > 0 {
		if err := a.Set(cfg.Mutation.Index, cfg.Mutation.Value); err != nil {
			return nil, errors.Wrap(err, "mutate original")
		}
		rep.Mutated = true
	} else {
		level.Info(logger).Log("msg", "no values to mutate")
	}
	rep.Copy = snapshot("copy", b)
	rep.Original = snapshot("original", a)

	if _, err := b.Assign(a); err != nil {
		return nil, errors.Wrap(err, "assign original to copy")
	}
	rep.Assigned = snapshot("assigned", b)

	if _, err := a.Assign(a); err != nil {
		return nil, errors.Wrap(err, "self-assign original")
	}
	rep.SelfAssigned = snapshot("self-assigned", a)

	a.Release()
	b.Release()
	rep.Allocations = tk.Allocations()
	rep.Releases = tk.Releases()
	rep.PeakBytes = tk.PeakBytes()

	level.Debug(logger).Log("msg", "demo finished", "allocations", rep.Allocations, "releases", rep.Releases, "peak_bytes", rep.PeakBytes)
	return rep, nil
}
