package ordered

import "slices"

// Map is a map that iterates in first-insertion order.
//
// Overwriting an existing key replaces its value but keeps its position.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewMap returns an empty [Map].
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		values: make(map[K]V),
	}
}

// Set stores v under k.
func (m *Map[K, V]) Set(k K, v V) {
	if _, exists := m.values[k]; !exists {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.values[k]
	return ok
}

// Delete removes k and returns the value it held.
func (m *Map[K, V]) Delete(k K) (V, bool) {
	v, ok := m.values[k]
	if !ok {
		return v, false
	}
	delete(m.values, k)
	if i := slices.Index(m.keys, k); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
	return v, true
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order. Never nil.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in key order. Never nil.
func (m *Map[K, V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}
