// Package orderedset provides a persistent set with insertion-order
// iteration, built atop the orderedmap primitive. Elements require only Go
// equality; mutating operations return a new Set and leave the receiver
// untouched.
package orderedset

import (
	"iter"

	"github.com/authzed/dictz/orderedmap"
)

// Set is an insertion-ordered set of T.
type Set[T comparable] struct {
	m *orderedmap.Map[T, struct{}]
}

// New returns an empty set.
func New[T comparable]() *Set[T] {
	return &Set[T]{m: orderedmap.New[T, struct{}]()}
}

// Of returns a set holding the given elements, in order of first occurrence.
func Of[T comparable](elems ...T) *Set[T] {
	return FromSlice(elems)
}

// FromSlice returns a set holding the elements of the slice, in order of
// first occurrence. Duplicates collapse.
func FromSlice[T comparable](elems []T) *Set[T] {
	pairs := make([]orderedmap.Pair[T, struct{}], 0, len(elems))
	for _, e := range elems {
		pairs = append(pairs, orderedmap.Pair[T, struct{}]{Key: e})
	}
	return &Set[T]{m: orderedmap.FromPairs(pairs)}
}

// Has returns true if the element is in the set.
func (s *Set[T]) Has(elem T) bool { return s.m.Has(elem) }

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int { return s.m.Len() }

// IsEmpty returns true if the set holds no elements.
func (s *Set[T]) IsEmpty() bool { return s.m.IsEmpty() }

// Add returns a set containing the given element. Adding a present element
// returns the receiver unchanged, keeping its original position.
func (s *Set[T]) Add(elem T) *Set[T] {
	if s.m.Has(elem) {
		return s
	}
	return &Set[T]{m: s.m.Set(elem, struct{}{})}
}

// Delete returns a set without the given element. Deleting an absent element
// returns the receiver unchanged.
func (s *Set[T]) Delete(elem T) *Set[T] {
	if !s.m.Has(elem) {
		return s
	}
	return &Set[T]{m: s.m.Delete(elem)}
}

// AsSlice returns the elements of the set in insertion order. The returned
// slice is a snapshot owned by the caller.
func (s *Set[T]) AsSlice() []T { return s.m.Keys() }

// All returns an iterator over the elements of the set in insertion order.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := range s.m.All() {
			if !yield(e) {
				return
			}
		}
	}
}

// Filter returns a set holding only the elements for which pred returns
// true, in their original relative order.
func (s *Set[T]) Filter(pred func(elem T) bool) *Set[T] {
	return &Set[T]{m: s.m.Filter(func(e T, _ struct{}) bool { return pred(e) })}
}

// Partition splits the set into the elements for which pred returns true and
// those for which it returns false.
func (s *Set[T]) Partition(pred func(elem T) bool) (*Set[T], *Set[T]) {
	yes, no := s.m.Partition(func(e T, _ struct{}) bool { return pred(e) })
	return &Set[T]{m: yes}, &Set[T]{m: no}
}

// Union returns a set holding the receiver's elements followed by the
// elements of other not already present.
func (s *Set[T]) Union(other *Set[T]) *Set[T] {
	return &Set[T]{m: s.m.Union(other.m)}
}

// Intersect returns the receiver's elements that are also in other, in the
// receiver's order.
func (s *Set[T]) Intersect(other *Set[T]) *Set[T] {
	return &Set[T]{m: s.m.Intersect(other.m)}
}

// Subtract returns the receiver's elements that are not in other.
func (s *Set[T]) Subtract(other *Set[T]) *Set[T] {
	return &Set[T]{m: s.m.Diff(other.m)}
}

// Equal returns true if the two sets hold the same elements in the same
// order.
func (s *Set[T]) Equal(other *Set[T]) bool {
	return orderedmap.Equal(s.m, other.m)
}

// Foldl reduces the set's elements in insertion order.
func Foldl[T comparable, A any](s *Set[T], seed A, fn func(acc A, elem T) A) A {
	return orderedmap.Foldl(s.m, seed, func(acc A, e T, _ struct{}) A {
		return fn(acc, e)
	})
}

// MapElems returns a set with fn applied to every element, in the order of
// each result's first occurrence.
func MapElems[T, R comparable](s *Set[T], fn func(elem T) R) *Set[R] {
	out := New[R]()
	for e := range s.All() {
		out = out.Add(fn(e))
	}
	return out
}
