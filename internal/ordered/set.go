package ordered

import "slices"

// Set is an ordered set. Items keep the order in which they were first added.
type Set[K comparable] struct {
	items []K
	index map[K]struct{}
}

// NewSet returns an empty [Set].
func NewSet[K comparable]() *Set[K] {
	return &Set[K]{
		index: make(map[K]struct{}),
	}
}

// Add appends k if it is not already present. Reports whether k was added.
func (s *Set[K]) Add(k K) bool {
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = struct{}{}
	s.items = append(s.items, k)
	return true
}

// Remove deletes k, keeping the relative order of the remaining items.
// Reports whether k was present.
func (s *Set[K]) Remove(k K) bool {
	if _, ok := s.index[k]; !ok {
		return false
	}
	delete(s.index, k)
	if i := slices.Index(s.items, k); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
	return true
}

// Has reports whether k is in the set.
func (s *Set[K]) Has(k K) bool {
	_, ok := s.index[k]
	return ok
}

// Len returns the number of items.
func (s *Set[K]) Len() int {
	return len(s.items)
}

// Items returns a copy of the items in order. Never nil.
func (s *Set[K]) Items() []K {
	out := make([]K, len(s.items))
	copy(out, s.items)
	return out
}

// Clear removes every item.
func (s *Set[K]) Clear() {
	s.items = nil
	clear(s.index)
}

// Reset replaces the contents with keys, dropping duplicates.
func (s *Set[K]) Reset(keys []K) {
	s.Clear()
	for _, k := range keys {
		s.Add(k)
	}
}
