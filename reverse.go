package dictz

import (
	"github.com/authzed/dictz/internal/asserts"
	"github.com/authzed/dictz/orderedmap"
	"github.com/authzed/dictz/orderedset"
)

// addToIndex binds b under a in a set-valued index, creating a singleton set
// if a is a new key.
func addToIndex[A, B comparable](idx *orderedmap.Map[A, *orderedset.Set[B]], a A, b B) *orderedmap.Map[A, *orderedset.Set[B]] {
	set, ok := idx.Get(a)
	if !ok {
		set = orderedset.New[B]()
	}
	return idx.Set(a, set.Add(b))
}

// removeFromIndex removes b from a's set, dropping the entry entirely when
// the set becomes empty. An empty set is never stored: absence of a key is
// the only representation of "no elements".
func removeFromIndex[A, B comparable](idx *orderedmap.Map[A, *orderedset.Set[B]], a A, b B) *orderedmap.Map[A, *orderedset.Set[B]] {
	set, ok := idx.Get(a)
	if !ok {
		return idx
	}
	set = set.Delete(b)
	if set.IsEmpty() {
		return idx.Delete(a)
	}
	return idx.Set(a, set)
}

// reverseOf derives the reverse index of a single-valued forward map,
// visiting forward entries in insertion order.
func reverseOf[K, V comparable](forward *orderedmap.Map[K, V]) *orderedmap.Map[V, *orderedset.Set[K]] {
	reverse := orderedmap.New[V, *orderedset.Set[K]]()
	for k, v := range forward.All() {
		reverse = addToIndex(reverse, v, k)
	}
	return reverse
}

// reverseOfMulti derives the reverse index of a set-valued forward map.
func reverseOfMulti[K, V comparable](forward *orderedmap.Map[K, *orderedset.Set[V]]) *orderedmap.Map[V, *orderedset.Set[K]] {
	reverse := orderedmap.New[V, *orderedset.Set[K]]()
	for k, values := range forward.All() {
		for v := range values.All() {
			reverse = addToIndex(reverse, v, k)
		}
	}
	return reverse
}

// sameIndexMembership reports whether two set-valued indexes agree on keys
// and set membership, ignoring iteration order. An incrementally patched
// index and a wholesale-rebuilt one may order entries differently while
// holding identical associations.
func sameIndexMembership[A, B comparable](a, b *orderedmap.Map[A, *orderedset.Set[B]]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for key, set := range a.All() {
		other, ok := b.Get(key)
		if !ok || set.Len() != other.Len() {
			return false
		}
		for e := range set.All() {
			if !other.Has(e) {
				return false
			}
		}
	}
	return true
}

// hasNoEmptySets reports whether a set-valued index stores no empty sets.
func hasNoEmptySets[A, B comparable](idx *orderedmap.Map[A, *orderedset.Set[B]]) bool {
	for _, set := range idx.All() {
		if set.IsEmpty() {
			return false
		}
	}
	return true
}

func debugCheckNoEmptySets[A, B comparable](idx *orderedmap.Map[A, *orderedset.Set[B]]) {
	asserts.DebugAssertf(func() bool {
		return hasNoEmptySets(idx)
	}, "set-valued index stores an empty set")
}

func debugCheckReverse[K, V comparable](forward *orderedmap.Map[K, V], reverse *orderedmap.Map[V, *orderedset.Set[K]]) {
	asserts.DebugAssertf(func() bool {
		return hasNoEmptySets(reverse) && sameIndexMembership(reverse, reverseOf(forward))
	}, "reverse index out of sync with forward index")
}

func debugCheckReverseMulti[K, V comparable](forward *orderedmap.Map[K, *orderedset.Set[V]], reverse *orderedmap.Map[V, *orderedset.Set[K]]) {
	asserts.DebugAssertf(func() bool {
		return hasNoEmptySets(forward) && hasNoEmptySets(reverse) &&
			sameIndexMembership(reverse, reverseOfMulti(forward))
	}, "reverse index out of sync with set-valued forward index")
}
