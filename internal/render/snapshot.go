package render

import "sync"

// Snapshot is an in-memory renderer. The serve API renders views into a
// Snapshot and ships the collected payloads as JSON; tests use it to
// observe exactly what the core asked to draw.
type Snapshot struct {
	reg Registry

	mu     sync.Mutex
	charts map[string]Series
	tables map[string]Table
}

// NewSnapshot returns an empty snapshot renderer.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		charts: make(map[string]Series),
		tables: make(map[string]Table),
	}
}

// RenderChart stores the series under slot. The slot must be free.
func (s *Snapshot) RenderChart(slot string, series Series) error {
	if _, err := s.reg.Acquire(slot); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charts[slot] = series
	return nil
}

// RenderTable stores the table under slot. The slot must be free.
func (s *Snapshot) RenderTable(slot string, table Table) error {
	if _, err := s.reg.Acquire(slot); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[slot] = table
	return nil
}

// Release frees slot and discards its output.
func (s *Snapshot) Release(slot string) {
	s.reg.Release(slot)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.charts, slot)
	delete(s.tables, slot)
}

// Chart returns the series rendered into slot, if any.
func (s *Snapshot) Chart(slot string) (Series, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	series, ok := s.charts[slot]
	return series, ok
}

// Table returns the table rendered into slot, if any.
func (s *Snapshot) Table(slot string) (Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, ok := s.tables[slot]
	return table, ok
}

// Charts returns a copy of every rendered chart keyed by slot.
func (s *Snapshot) Charts() map[string]Series {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Series, len(s.charts))
	for slot, series := range s.charts {
		out[slot] = series
	}
	return out
}

// Tables returns a copy of every rendered table keyed by slot.
func (s *Snapshot) Tables() map[string]Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Table, len(s.tables))
	for slot, table := range s.tables {
		out[slot] = table
	}
	return out
}
