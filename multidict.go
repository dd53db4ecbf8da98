package dictz

import (
	"iter"

	"github.com/authzed/dictz/orderedmap"
	"github.com/authzed/dictz/orderedset"
)

// MultiDict is a persistent one-to-many map: each key maps to a set of
// values. A key is never bound to an empty set; removing a key's last value
// removes the key. There is no reverse index.
//
// Mutating operations return a new MultiDict and leave the receiver
// untouched.
type MultiDict[K, V comparable] struct {
	forward *orderedmap.Map[K, *orderedset.Set[V]]
}

func newMultiDict[K, V comparable](forward *orderedmap.Map[K, *orderedset.Set[V]]) *MultiDict[K, V] {
	debugCheckNoEmptySets(forward)
	return &MultiDict[K, V]{forward: forward}
}

// NewMultiDict returns an empty MultiDict.
func NewMultiDict[K, V comparable]() *MultiDict[K, V] {
	return newMultiDict(orderedmap.New[K, *orderedset.Set[V]]())
}

// MultiDictOf returns a MultiDict holding only the given pair.
func MultiDictOf[K, V comparable](key K, value V) *MultiDict[K, V] {
	return NewMultiDict[K, V]().Add(key, value)
}

// MultiDictFromPairs builds a MultiDict from a flat pair sequence, grouping
// by key equality across the whole input, not only consecutive runs. Key
// order follows each key's first occurrence; each value keeps its relative
// position within its key's group. Duplicate pairs collapse.
func MultiDictFromPairs[K, V comparable](pairs []orderedmap.Pair[K, V]) *MultiDict[K, V] {
	forward := orderedmap.MapValues(GroupPairs(pairs), func(_ K, values []V) *orderedset.Set[V] {
		return orderedset.FromSlice(values)
	})
	return newMultiDict(forward)
}

// MultiDictFromMap wraps an existing set-valued forward map. Keys bound to
// empty sets are dropped, never stored.
func MultiDictFromMap[K, V comparable](forward *orderedmap.Map[K, *orderedset.Set[V]]) *MultiDict[K, V] {
	return newMultiDict(forward.Filter(func(_ K, set *orderedset.Set[V]) bool {
		return !set.IsEmpty()
	}))
}

// Get returns the set of values bound to the key. The set is empty, never
// nil, when the key is absent.
func (d *MultiDict[K, V]) Get(key K) *orderedset.Set[V] {
	set, ok := d.forward.Get(key)
	if !ok {
		return orderedset.New[V]()
	}
	return set
}

// Has returns true if the key is found in the dictionary.
func (d *MultiDict[K, V]) Has(key K) bool { return d.forward.Has(key) }

// Len returns the total number of (key, value) pairs, not the number of
// distinct keys.
func (d *MultiDict[K, V]) Len() int {
	return orderedmap.Foldl(d.forward, 0, func(n int, _ K, set *orderedset.Set[V]) int {
		return n + set.Len()
	})
}

// KeyLen returns the number of distinct keys.
func (d *MultiDict[K, V]) KeyLen() int { return d.forward.Len() }

// CountOf returns the number of values stored for the given key.
func (d *MultiDict[K, V]) CountOf(key K) int { return d.Get(key).Len() }

// IsEmpty returns true if the dictionary holds no pairs.
func (d *MultiDict[K, V]) IsEmpty() bool { return d.forward.IsEmpty() }

// Add returns a MultiDict with the value added to the key's set, creating a
// singleton set if the key is new. Adding a present pair is a no-op in final
// state.
func (d *MultiDict[K, V]) Add(key K, value V) *MultiDict[K, V] {
	return newMultiDict(addToIndex(d.forward, key, value))
}

// Update applies fn to the key's current set (empty if the key is absent).
// If fn returns an empty or nil set the key is removed entirely; otherwise
// the result is stored.
func (d *MultiDict[K, V]) Update(key K, fn func(values *orderedset.Set[V]) *orderedset.Set[V]) *MultiDict[K, V] {
	next := fn(d.Get(key))
	if next == nil || next.IsEmpty() {
		return newMultiDict(d.forward.Delete(key))
	}
	return newMultiDict(d.forward.Set(key, next))
}

// Remove returns a MultiDict without the given pair, dropping the key if its
// set becomes empty. Removing an absent pair returns the receiver unchanged.
func (d *MultiDict[K, V]) Remove(key K, value V) *MultiDict[K, V] {
	if !d.forward.Has(key) {
		return d
	}
	return newMultiDict(removeFromIndex(d.forward, key, value))
}

// RemoveKey returns a MultiDict without the given key and all of its values.
func (d *MultiDict[K, V]) RemoveKey(key K) *MultiDict[K, V] {
	return newMultiDict(d.forward.Delete(key))
}

// Keys returns the keys in insertion order.
func (d *MultiDict[K, V]) Keys() []K { return d.forward.Keys() }

// Values returns every key's values flattened, visiting keys in insertion
// order and each set in its own iteration order.
func (d *MultiDict[K, V]) Values() []V {
	values := make([]V, 0, d.forward.Len())
	for _, set := range d.forward.All() {
		values = append(values, set.AsSlice()...)
	}
	return values
}

// Pairs returns the flattened (key, value) pairs in the same order Values
// visits them.
func (d *MultiDict[K, V]) Pairs() []orderedmap.Pair[K, V] {
	pairs := make([]orderedmap.Pair[K, V], 0, d.forward.Len())
	for k, set := range d.forward.All() {
		for v := range set.All() {
			pairs = append(pairs, orderedmap.Pair[K, V]{Key: k, Value: v})
		}
	}
	return pairs
}

// All returns an iterator over the flattened (key, value) pairs.
func (d *MultiDict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, set := range d.forward.All() {
			for v := range set.All() {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Sets returns the underlying set-valued forward map.
func (d *MultiDict[K, V]) Sets() *orderedmap.Map[K, *orderedset.Set[V]] {
	return d.forward
}

// Filter tests individual (key, value) pairs, rebuilding each key's set and
// dropping keys whose filtered set is empty.
func (d *MultiDict[K, V]) Filter(pred func(key K, value V) bool) *MultiDict[K, V] {
	forward := orderedmap.New[K, *orderedset.Set[V]]()
	for k, set := range d.forward.All() {
		filtered := set.Filter(func(v V) bool { return pred(k, v) })
		if !filtered.IsEmpty() {
			forward = forward.Set(k, filtered)
		}
	}
	return newMultiDict(forward)
}

// Partition tests whole (key, set) entries, not individual pairs, splitting
// the dictionary into the entries for which pred returns true and those for
// which it returns false.
func (d *MultiDict[K, V]) Partition(pred func(key K, values *orderedset.Set[V]) bool) (*MultiDict[K, V], *MultiDict[K, V]) {
	yes, no := d.forward.Partition(pred)
	return newMultiDict(yes), newMultiDict(no)
}

// Union combines two dictionaries; on key collision the receiver's whole set
// for that key wins, without merging the two sets.
func (d *MultiDict[K, V]) Union(other *MultiDict[K, V]) *MultiDict[K, V] {
	return newMultiDict(d.forward.Union(other.forward))
}

// Intersect keeps the receiver's entries whose keys are also in other,
// retaining the receiver's sets.
func (d *MultiDict[K, V]) Intersect(other *MultiDict[K, V]) *MultiDict[K, V] {
	return newMultiDict(d.forward.Intersect(other.forward))
}

// Diff keeps the receiver's entries whose keys are absent from other.
func (d *MultiDict[K, V]) Diff(other *MultiDict[K, V]) *MultiDict[K, V] {
	return newMultiDict(d.forward.Diff(other.forward))
}

// Equal returns true if the two dictionaries hold the same keys in the same
// order, each bound to the same set in the same set order.
func (d *MultiDict[K, V]) Equal(other *MultiDict[K, V]) bool {
	return orderedmap.EqualFunc(d.forward, other.forward, (*orderedset.Set[V]).Equal)
}

// MapMultiDictValues returns a MultiDict with fn applied to every value in
// every key's set. Results that collide within a key collapse.
func MapMultiDictValues[K, V, R comparable](d *MultiDict[K, V], fn func(key K, value V) R) *MultiDict[K, R] {
	forward := orderedmap.MapValues(d.forward, func(k K, set *orderedset.Set[V]) *orderedset.Set[R] {
		return orderedset.MapElems(set, func(v V) R { return fn(k, v) })
	})
	return newMultiDict(forward)
}

// MergeMultiDicts reduces two dictionaries' set-valued forward entries with
// a three-way reducer.
func MergeMultiDicts[K, VL, VR comparable, A any](
	left *MultiDict[K, VL],
	right *MultiDict[K, VR],
	seed A,
	onLeft func(acc A, key K, values *orderedset.Set[VL]) A,
	onBoth func(acc A, key K, leftValues *orderedset.Set[VL], rightValues *orderedset.Set[VR]) A,
	onRight func(acc A, key K, values *orderedset.Set[VR]) A,
) A {
	return orderedmap.Merge(left.forward, right.forward, seed, onLeft, onBoth, onRight)
}
