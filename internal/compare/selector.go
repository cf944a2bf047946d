// Package compare tracks the bounded set of studies selected for
// side-by-side comparison.
package compare

import "github.com/rotisserie/eris"

// MaxSelection caps the comparison set. The comparison table stays
// readable at three columns; a fourth selection is rejected, not dropped.
const MaxSelection = 3

// MinSelection is the smallest set the comparison view accepts.
const MinSelection = 2

// ErrSelectionFull rejects a selection beyond the cap. Callers surface it
// to the user and roll the triggering control back.
var ErrSelectionFull = eris.Errorf("comparison selection is limited to %d studies", MaxSelection)

// Selection is an ordered duplicate-free set of study identifiers, at most
// MaxSelection large. The zero value is empty and ready to use.
type Selection struct {
	ids []string
}

// Select adds id to the set. Re-selecting a member is a no-op success;
// selecting past the cap returns ErrSelectionFull and leaves the set
// unchanged.
func (s *Selection) Select(id string) error {
	if s.Contains(id) {
		return nil
	}
	if len(s.ids) >= MaxSelection {
		return ErrSelectionFull
	}
	s.ids = append(s.ids, id)
	return nil
}

// Deselect removes id from the set; removing a non-member is a no-op.
func (s *Selection) Deselect(id string) {
	for i, got := range s.ids {
		if got == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

// Clear empties the set.
func (s *Selection) Clear() {
	s.ids = nil
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	for _, got := range s.ids {
		if got == id {
			return true
		}
	}
	return false
}

// Len returns the number of selected studies.
func (s *Selection) Len() int {
	return len(s.ids)
}

// CanCompare reports whether enough studies are selected for the
// comparison view.
func (s *Selection) CanCompare() bool {
	return len(s.ids) >= MinSelection
}

// IDs returns the selected identifiers in insertion order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
