// Package orderedmap provides a persistent key-value map with insertion-order
// iteration.
//
// Keys require only Go equality (`comparable`); no total order or hashing
// capability beyond the language's own is assumed. Every mutating operation
// returns a new Map and leaves the receiver untouched, so Map values may be
// freely shared, retained, and read concurrently without coordination.
package orderedmap

import (
	"iter"
	"slices"

	"golang.org/x/exp/maps"
)

// Pair is a single key-value entry of a Map.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an insertion-ordered map from K to V. The position of a key is
// determined by when it was first introduced; overwriting a key's value does
// not move it.
type Map[K comparable, V any] struct {
	keys  []K
	items map[K]V
}

// New returns an empty map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{items: map[K]V{}}
}

// Singleton returns a map holding only the given entry.
func Singleton[K comparable, V any](key K, value V) *Map[K, V] {
	return &Map[K, V]{keys: []K{key}, items: map[K]V{key: value}}
}

// FromPairs builds a map by inserting the given pairs in order. A later pair
// for an already-seen key overwrites the value but keeps the key's original
// position, exactly as repeated Set calls would.
func FromPairs[K comparable, V any](pairs []Pair[K, V]) *Map[K, V] {
	m := &Map[K, V]{keys: make([]K, 0, len(pairs)), items: make(map[K]V, len(pairs))}
	for _, p := range pairs {
		if _, ok := m.items[p.Key]; !ok {
			m.keys = append(m.keys, p.Key)
		}
		m.items[p.Key] = p.Value
	}
	return m
}

// Get returns the value stored for the given key and whether the key existed.
func (m *Map[K, V]) Get(key K) (V, bool) {
	value, ok := m.items[key]
	return value, ok
}

// Has returns true if the key is found in the map.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.items[key]
	return ok
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int { return len(m.keys) }

// IsEmpty returns true if the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool { return len(m.keys) == 0 }

// Set returns a map with the given key bound to the given value. An existing
// key keeps its position; a new key is appended at the end of the iteration
// order.
func (m *Map[K, V]) Set(key K, value V) *Map[K, V] {
	items := maps.Clone(m.items)
	if items == nil {
		items = make(map[K]V, 1)
	}
	keys := m.keys
	if _, ok := m.items[key]; !ok {
		keys = append(slices.Clip(slices.Clone(m.keys)), key)
	}
	items[key] = value
	return &Map[K, V]{keys: keys, items: items}
}

// Delete returns a map without the given key. Deleting an absent key returns
// the receiver unchanged.
func (m *Map[K, V]) Delete(key K) *Map[K, V] {
	if _, ok := m.items[key]; !ok {
		return m
	}
	items := maps.Clone(m.items)
	delete(items, key)
	keys := make([]K, 0, len(m.keys)-1)
	for _, k := range m.keys {
		if k != key {
			keys = append(keys, k)
		}
	}
	return &Map[K, V]{keys: keys, items: items}
}

// Update applies fn to the current binding for the key. fn receives the
// current value (or the zero value) and whether the key was present; it
// returns the new value and whether the key should be kept. Returning keep on
// an absent key inserts it at the end of the iteration order; returning
// !keep on a present key deletes it.
func (m *Map[K, V]) Update(key K, fn func(value V, present bool) (V, bool)) *Map[K, V] {
	current, present := m.items[key]
	next, keep := fn(current, present)
	switch {
	case keep:
		return m.Set(key, next)
	case present:
		return m.Delete(key)
	default:
		return m
	}
}

// Keys returns the keys of the map in insertion order. The returned slice is
// a snapshot owned by the caller.
func (m *Map[K, V]) Keys() []K {
	return slices.Clone(m.keys)
}

// Values returns the values of the map in insertion order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		values = append(values, m.items[k])
	}
	return values
}

// Pairs returns the entries of the map in insertion order.
func (m *Map[K, V]) Pairs() []Pair[K, V] {
	pairs := make([]Pair[K, V], 0, len(m.keys))
	for _, k := range m.keys {
		pairs = append(pairs, Pair[K, V]{Key: k, Value: m.items[k]})
	}
	return pairs
}

// All returns an iterator over the entries of the map in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.items[k]) {
				return
			}
		}
	}
}

// Filter returns a map holding only the entries for which pred returns true,
// in their original relative order.
func (m *Map[K, V]) Filter(pred func(key K, value V) bool) *Map[K, V] {
	out := &Map[K, V]{items: make(map[K]V, len(m.keys))}
	for _, k := range m.keys {
		if pred(k, m.items[k]) {
			out.keys = append(out.keys, k)
			out.items[k] = m.items[k]
		}
	}
	return out
}

// Partition splits the map into the entries for which pred returns true and
// those for which it returns false, each preserving relative order.
func (m *Map[K, V]) Partition(pred func(key K, value V) bool) (*Map[K, V], *Map[K, V]) {
	yes := &Map[K, V]{items: map[K]V{}}
	no := &Map[K, V]{items: map[K]V{}}
	for _, k := range m.keys {
		target := no
		if pred(k, m.items[k]) {
			target = yes
		}
		target.keys = append(target.keys, k)
		target.items[k] = m.items[k]
	}
	return yes, no
}

// Union returns a map holding every entry of the receiver followed by the
// entries of other whose keys the receiver does not contain. On key
// collision the receiver's value and position win.
func (m *Map[K, V]) Union(other *Map[K, V]) *Map[K, V] {
	out := &Map[K, V]{
		keys:  slices.Clip(slices.Clone(m.keys)),
		items: maps.Clone(m.items),
	}
	if out.items == nil {
		out.items = make(map[K]V, other.Len())
	}
	for _, k := range other.keys {
		if _, ok := out.items[k]; !ok {
			out.keys = append(out.keys, k)
			out.items[k] = other.items[k]
		}
	}
	return out
}

// Intersect returns the entries of the receiver whose keys are also present
// in other. Values and order come from the receiver.
func (m *Map[K, V]) Intersect(other *Map[K, V]) *Map[K, V] {
	return m.Filter(func(key K, _ V) bool { return other.Has(key) })
}

// Diff returns the entries of the receiver whose keys are absent from other.
func (m *Map[K, V]) Diff(other *Map[K, V]) *Map[K, V] {
	return m.Filter(func(key K, _ V) bool { return !other.Has(key) })
}

// MapValues returns a map with fn applied to every value. Keys and their
// order are unchanged.
func MapValues[K comparable, V, R any](m *Map[K, V], fn func(key K, value V) R) *Map[K, R] {
	out := &Map[K, R]{
		keys:  slices.Clone(m.keys),
		items: make(map[K]R, len(m.keys)),
	}
	for _, k := range m.keys {
		out.items[k] = fn(k, m.items[k])
	}
	return out
}

// Foldl reduces the map's entries in insertion order.
func Foldl[K comparable, V, A any](m *Map[K, V], seed A, fn func(acc A, key K, value V) A) A {
	acc := seed
	for _, k := range m.keys {
		acc = fn(acc, k, m.items[k])
	}
	return acc
}

// Foldr reduces the map's entries in reverse insertion order.
func Foldr[K comparable, V, A any](m *Map[K, V], seed A, fn func(acc A, key K, value V) A) A {
	acc := seed
	for i := len(m.keys) - 1; i >= 0; i-- {
		k := m.keys[i]
		acc = fn(acc, k, m.items[k])
	}
	return acc
}

// Merge reduces two maps with a three-way reducer: onLeft for keys only in
// left, onBoth for keys in both, onRight for keys only in right. Left's
// entries are visited in left's order, then right-only entries in right's
// order.
func Merge[K comparable, VL, VR, A any](
	left *Map[K, VL],
	right *Map[K, VR],
	seed A,
	onLeft func(acc A, key K, value VL) A,
	onBoth func(acc A, key K, leftValue VL, rightValue VR) A,
	onRight func(acc A, key K, value VR) A,
) A {
	acc := seed
	for _, k := range left.keys {
		if rv, ok := right.items[k]; ok {
			acc = onBoth(acc, k, left.items[k], rv)
		} else {
			acc = onLeft(acc, k, left.items[k])
		}
	}
	for _, k := range right.keys {
		if _, ok := left.items[k]; !ok {
			acc = onRight(acc, k, right.items[k])
		}
	}
	return acc
}

// Equal returns true if the two maps hold the same entries in the same
// order.
func Equal[K, V comparable](a, b *Map[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is Equal with a caller-supplied value equality, allowing maps
// with differing or non-comparable value types to be compared.
func EqualFunc[K comparable, VA, VB any](a *Map[K, VA], b *Map[K, VB], eq func(VA, VB) bool) bool {
	if len(a.keys) != len(b.keys) {
		return false
	}
	for i, k := range a.keys {
		if b.keys[i] != k {
			return false
		}
		if !eq(a.items[k], b.items[k]) {
			return false
		}
	}
	return true
}
