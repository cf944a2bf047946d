// Package render defines the contract between the dashboard core and its
// rendering adapters, and the slot registry that enforces chart lifecycle.
package render

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// Chart kinds a Series can request.
const (
	KindBar      = "bar"
	KindPie      = "pie"
	KindDoughnut = "doughnut"
)

// Series is a labeled numeric series for a bar/pie/doughnut chart.
type Series struct {
	Title   string    `json:"title"`
	Kind    string    `json:"kind"`
	Labels  []string  `json:"labels"`
	Values  []float64 `json:"values"`
	Palette []string  `json:"palette,omitempty"`
}

// Table is tabular output: headers plus ordered rows of display strings.
type Table struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Renderer draws prepared aggregates and tables into named slots. A slot
// holds at most one chart or table at a time; it must be released before
// being drawn again, so stale output never leaks across re-renders.
type Renderer interface {
	RenderChart(slot string, s Series) error
	RenderTable(slot string, t Table) error
	Release(slot string)
}

// ErrSlotOccupied rejects a render into a slot that was not released
// first.
var ErrSlotOccupied = eris.New("render slot already occupied")

// Registry tracks the live handle per slot. Adapters embed one to get the
// release-before-recreate contract for free.
type Registry struct {
	mu      sync.Mutex
	handles map[string]string
}

// Acquire claims slot and returns its handle. Fails with ErrSlotOccupied
// when the slot holds an unreleased handle.
func (r *Registry) Acquire(slot string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handles == nil {
		r.handles = make(map[string]string)
	}
	if _, ok := r.handles[slot]; ok {
		return "", eris.Wrapf(ErrSlotOccupied, "slot %s", slot)
	}
	h := uuid.NewString()
	r.handles[slot] = h
	return h, nil
}

// Release frees slot; releasing a free slot is a no-op.
func (r *Registry) Release(slot string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, slot)
}

// Occupied reports whether slot holds an unreleased handle.
func (r *Registry) Occupied(slot string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.handles[slot]
	return ok
}
