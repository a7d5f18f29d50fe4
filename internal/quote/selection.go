package quote

// SelectionSet is the ordered set of chosen part numbers. Iteration order is
// insertion order, which keeps row ordering stable across renders. It is a
// pure ordered set: catalog membership is the caller's concern.
type SelectionSet struct {
	order   []string
	present map[string]struct{}
}

// NewSelectionSet returns an empty selection.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{present: make(map[string]struct{})}
}

// Add appends the part at the end if absent. Adding an already-selected part
// is a no-op; the return value reports whether the set changed.
func (s *SelectionSet) Add(partNo string) bool {
	if _, ok := s.present[partNo]; ok {
		return false
	}
	s.present[partNo] = struct{}{}
	s.order = append(s.order, partNo)
	return true
}

// Remove deletes the part if present; removing an unselected part is a no-op.
func (s *SelectionSet) Remove(partNo string) bool {
	if _, ok := s.present[partNo]; !ok {
		return false
	}
	delete(s.present, partNo)
	for i, existing := range s.order {
		if existing == partNo {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether the part is selected.
func (s *SelectionSet) Contains(partNo string) bool {
	_, ok := s.present[partNo]
	return ok
}

// Parts returns the selected part numbers in insertion order.
func (s *SelectionSet) Parts() []string {
	return append([]string(nil), s.order...)
}

// Len reports the number of selected parts.
func (s *SelectionSet) Len() int {
	return len(s.order)
}
