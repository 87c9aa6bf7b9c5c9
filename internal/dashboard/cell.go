// Package dashboard runs load cycles against the reward API and owns the
// single published record every reader sees.
//
// Overlapping submissions race: the cell hands each cycle a generation at
// submission time and accepts a publication only while its generation is
// still the newest issued. The displayed record therefore always belongs to
// the most recent submission, regardless of which HTTP round trip finishes
// last.
package dashboard

import (
	"sync"

	"brubeckscan/internal/domain"
)

// State of the newest load cycle.
type State string

const (
	// StateIdle means no cycle newer than the published record is in flight.
	StateIdle State = "idle"

	// StateLoading means the newest submission has not settled yet.
	StateLoading State = "loading"
)

// Snapshot pairs a published record with the generation that produced it.
type Snapshot struct {
	Record     *domain.NodeRecord
	Generation uint64
}

// Cell is the display slot. Records are built off to the side and swapped in
// whole under the mutex, so readers never observe a half-constructed record.
type Cell struct {
	mu            sync.Mutex
	latest        uint64 // newest generation issued
	latestSettled bool   // newest generation has completed
	record        *domain.NodeRecord
	generation    uint64 // generation of the published record
}

// NewCell creates an empty cell in the idle state.
func NewCell() *Cell {
	return &Cell{latestSettled: true}
}

// Begin issues the generation for a new cycle, superseding every cycle still
// in flight.
func (c *Cell) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.latest++
	c.latestSettled = false
	return c.latest
}

// Publish offers a completed record. It is accepted only while gen is still
// the newest issued generation; stale cycles are discarded so they can never
// overwrite a newer submission's record.
func (c *Cell) Publish(gen uint64, record *domain.NodeRecord) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.latest {
		return false
	}

	c.record = record
	c.generation = gen
	c.latestSettled = true
	return true
}

// Snapshot returns the latest published record. ok is false until the first
// publication.
func (c *Cell) Snapshot() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.record == nil {
		return Snapshot{}, false
	}
	return Snapshot{Record: c.record, Generation: c.generation}, true
}

// State reports whether the newest submission is still in flight.
func (c *Cell) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.latestSettled {
		return StateIdle
	}
	return StateLoading
}
