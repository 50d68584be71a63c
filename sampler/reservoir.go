// Package sampler implements seeded reservoir sampling (Algorithm R) over
// forward-only record streams of unknown length.
package sampler

import "math/rand"

// Action describes what Observe did with a record.
type Action int

const (
	// Inserted means the record filled an empty reservoir slot.
	Inserted Action = iota
	// Replaced means the record evicted an earlier record from its slot.
	Replaced
	// Skipped means the record was discarded.
	Skipped
)

// Reservoir maintains a uniform random sample of fixed capacity over a
// stream processed one record at a time. After observing n >= k records,
// every record seen so far is in the sample with probability exactly k/n.
//
// Each Reservoir owns its seeded generator; two runs with the same seed,
// capacity, and input order produce identical samples. A Reservoir is not
// safe for concurrent use, matching the strict arrival-order requirement of
// the algorithm.
type Reservoir[T any] struct {
	capacity int
	observed int64
	rng      *rand.Rand
	slots    []T
}

// New creates a Reservoir with the given capacity and seed. A capacity of
// zero is legal and yields an always-empty sample without ever drawing
// randomness.
func New[T any](capacity int, seed int64) *Reservoir[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Reservoir[T]{
		capacity: capacity,
		rng:      rand.New(rand.NewSource(seed)),
		slots:    make([]T, 0, capacity),
	}
}

// Observe feeds one record into the reservoir, in arrival order. It returns
// the action taken and the slot index involved (-1 for Skipped). The
// generator advances exactly once per call after the first capacity records,
// and never for a zero-capacity reservoir.
func (r *Reservoir[T]) Observe(v T) (Action, int) {
	r.observed++

	if r.capacity == 0 {
		return Skipped, -1
	}
	if len(r.slots) < r.capacity {
		r.slots = append(r.slots, v)
		return Inserted, len(r.slots) - 1
	}

	j := r.rng.Int63n(r.observed)
	if j < int64(r.capacity) {
		r.slots[j] = v
		return Replaced, int(j)
	}
	return Skipped, -1
}

// Observed returns the number of records seen so far.
func (r *Reservoir[T]) Observed() int64 {
	return r.observed
}

// Len returns the current number of filled slots, never exceeding capacity.
func (r *Reservoir[T]) Len() int {
	return len(r.slots)
}

// Finalize returns a snapshot of the reservoir contents in slot order.
// It is idempotent: repeated calls return equal snapshots as long as no
// further records are observed.
func (r *Reservoir[T]) Finalize() []T {
	out := make([]T, len(r.slots))
	copy(out, r.slots)
	return out
}
