package dictz

import (
	"iter"

	"github.com/authzed/dictz/orderedmap"
	"github.com/authzed/dictz/orderedset"
)

// MultiBiDict is a persistent many-to-many bidirectional multimap: each key
// maps to a set of values and each value can be looked up in reverse to find
// the set of keys bound to it. Neither index ever stores an empty set.
//
// The reverse index is a pure function of the forward index. Single-pair Add
// and Remove (and RemoveKey) patch it incrementally; every other transform
// rebuilds it wholesale from the resulting forward map.
type MultiBiDict[K, V comparable] struct {
	forward *orderedmap.Map[K, *orderedset.Set[V]]
	reverse *orderedmap.Map[V, *orderedset.Set[K]]
}

func newMultiBiDict[K, V comparable](forward *orderedmap.Map[K, *orderedset.Set[V]], reverse *orderedmap.Map[V, *orderedset.Set[K]]) *MultiBiDict[K, V] {
	debugCheckReverseMulti(forward, reverse)
	return &MultiBiDict[K, V]{forward: forward, reverse: reverse}
}

func multiBiDictFromForward[K, V comparable](forward *orderedmap.Map[K, *orderedset.Set[V]]) *MultiBiDict[K, V] {
	return newMultiBiDict(forward, reverseOfMulti(forward))
}

// NewMultiBiDict returns an empty MultiBiDict.
func NewMultiBiDict[K, V comparable]() *MultiBiDict[K, V] {
	return newMultiBiDict(orderedmap.New[K, *orderedset.Set[V]](), orderedmap.New[V, *orderedset.Set[K]]())
}

// MultiBiDictOf returns a MultiBiDict holding only the given pair.
func MultiBiDictOf[K, V comparable](key K, value V) *MultiBiDict[K, V] {
	return NewMultiBiDict[K, V]().Add(key, value)
}

// MultiBiDictFromPairs builds a MultiBiDict from a flat pair sequence with
// the same grouping semantics as MultiDictFromPairs.
func MultiBiDictFromPairs[K, V comparable](pairs []orderedmap.Pair[K, V]) *MultiBiDict[K, V] {
	return multiBiDictFromForward(MultiDictFromPairs(pairs).forward)
}

// MultiBiDictFromMap wraps an existing set-valued forward map, deriving the
// reverse index from it. Keys bound to empty sets are dropped.
func MultiBiDictFromMap[K, V comparable](forward *orderedmap.Map[K, *orderedset.Set[V]]) *MultiBiDict[K, V] {
	normalized := forward.Filter(func(_ K, set *orderedset.Set[V]) bool {
		return !set.IsEmpty()
	})
	return multiBiDictFromForward(normalized)
}

// Get returns the set of values bound to the key. The set is empty, never
// nil, when the key is absent.
func (d *MultiBiDict[K, V]) Get(key K) *orderedset.Set[V] {
	set, ok := d.forward.Get(key)
	if !ok {
		return orderedset.New[V]()
	}
	return set
}

// GetReverse returns the set of keys whose values include the given value.
// The set is empty, never nil, when no key maps to the value.
func (d *MultiBiDict[K, V]) GetReverse(value V) *orderedset.Set[K] {
	set, ok := d.reverse.Get(value)
	if !ok {
		return orderedset.New[K]()
	}
	return set
}

// Has returns true if the key is found in the dictionary.
func (d *MultiBiDict[K, V]) Has(key K) bool { return d.forward.Has(key) }

// Len returns the total number of (key, value) pairs, not the number of
// distinct keys.
func (d *MultiBiDict[K, V]) Len() int {
	return orderedmap.Foldl(d.forward, 0, func(n int, _ K, set *orderedset.Set[V]) int {
		return n + set.Len()
	})
}

// KeyLen returns the number of distinct keys.
func (d *MultiBiDict[K, V]) KeyLen() int { return d.forward.Len() }

// CountOf returns the number of values stored for the given key.
func (d *MultiBiDict[K, V]) CountOf(key K) int { return d.Get(key).Len() }

// IsEmpty returns true if the dictionary holds no pairs.
func (d *MultiBiDict[K, V]) IsEmpty() bool { return d.forward.IsEmpty() }

// Add returns a MultiBiDict with the pair added: the value joins the key's
// set and the key joins the value's reverse set. Both sides are additive; a
// key may hold many values and a value many keys.
func (d *MultiBiDict[K, V]) Add(key K, value V) *MultiBiDict[K, V] {
	return newMultiBiDict(
		addToIndex(d.forward, key, value),
		addToIndex(d.reverse, value, key),
	)
}

// Remove returns a MultiBiDict without the given pair, patching both sides
// symmetrically: the value leaves the key's set (dropping the key if it
// empties) and the key leaves the value's reverse set (dropping the value if
// it empties). Removing an absent pair returns the receiver unchanged.
func (d *MultiBiDict[K, V]) Remove(key K, value V) *MultiBiDict[K, V] {
	if !d.Get(key).Has(value) {
		return d
	}
	return newMultiBiDict(
		removeFromIndex(d.forward, key, value),
		removeFromIndex(d.reverse, value, key),
	)
}

// RemoveKey returns a MultiBiDict without the given key, removing the key
// from the reverse set of every value it was bound to.
func (d *MultiBiDict[K, V]) RemoveKey(key K) *MultiBiDict[K, V] {
	values, ok := d.forward.Get(key)
	if !ok {
		return d
	}
	reverse := d.reverse
	for v := range values.All() {
		reverse = removeFromIndex(reverse, v, key)
	}
	return newMultiBiDict(d.forward.Delete(key), reverse)
}

// Update applies fn to the key's current set (empty if the key is absent),
// storing the result or removing the key when the result is empty or nil.
// The entire reverse index is then recomputed from the new forward map.
func (d *MultiBiDict[K, V]) Update(key K, fn func(values *orderedset.Set[V]) *orderedset.Set[V]) *MultiBiDict[K, V] {
	next := fn(d.Get(key))
	forward := d.forward
	if next == nil || next.IsEmpty() {
		forward = forward.Delete(key)
	} else {
		forward = forward.Set(key, next)
	}
	return multiBiDictFromForward(forward)
}

// Keys returns the keys in insertion order.
func (d *MultiBiDict[K, V]) Keys() []K { return d.forward.Keys() }

// Values returns every key's values flattened, visiting keys in insertion
// order and each set in its own iteration order.
func (d *MultiBiDict[K, V]) Values() []V {
	values := make([]V, 0, d.forward.Len())
	for _, set := range d.forward.All() {
		values = append(values, set.AsSlice()...)
	}
	return values
}

// Pairs returns the flattened (key, value) pairs in the same order Values
// visits them.
func (d *MultiBiDict[K, V]) Pairs() []orderedmap.Pair[K, V] {
	pairs := make([]orderedmap.Pair[K, V], 0, d.forward.Len())
	for k, set := range d.forward.All() {
		for v := range set.All() {
			pairs = append(pairs, orderedmap.Pair[K, V]{Key: k, Value: v})
		}
	}
	return pairs
}

// ReversePairs returns the reverse entries: each value paired with the set
// of keys bound to it.
func (d *MultiBiDict[K, V]) ReversePairs() []orderedmap.Pair[V, *orderedset.Set[K]] {
	return d.reverse.Pairs()
}

// All returns an iterator over the flattened (key, value) pairs.
func (d *MultiBiDict[K, V]) All() iter.Seq2[K, V] {
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
func (d *MultiBiDict[K, V]) Sets() *orderedmap.Map[K, *orderedset.Set[V]] {
	return d.forward
}

// Inverse returns the dictionary with keys and values swapped: forward
// becomes reverse and reverse becomes forward. The swap is constant-shape
// because the two indexes satisfy symmetric invariants.
func (d *MultiBiDict[K, V]) Inverse() *MultiBiDict[V, K] {
	return newMultiBiDict(d.reverse, d.forward)
}

// Filter tests individual (key, value) pairs, rebuilding each key's set,
// dropping keys whose filtered set is empty, and recomputing the reverse
// index wholesale.
func (d *MultiBiDict[K, V]) Filter(pred func(key K, value V) bool) *MultiBiDict[K, V] {
	forward := orderedmap.New[K, *orderedset.Set[V]]()
	for k, set := range d.forward.All() {
		filtered := set.Filter(func(v V) bool { return pred(k, v) })
		if !filtered.IsEmpty() {
			forward = forward.Set(k, filtered)
		}
	}
	return multiBiDictFromForward(forward)
}

// Partition tests whole (key, set) entries, splitting the dictionary in two.
// Both results recompute their reverse indexes.
func (d *MultiBiDict[K, V]) Partition(pred func(key K, values *orderedset.Set[V]) bool) (*MultiBiDict[K, V], *MultiBiDict[K, V]) {
	yes, no := d.forward.Partition(pred)
	return multiBiDictFromForward(yes), multiBiDictFromForward(no)
}

// Union combines two dictionaries; on key collision the receiver's whole set
// for that key wins. The reverse index is rebuilt from the combined forward
// map.
func (d *MultiBiDict[K, V]) Union(other *MultiBiDict[K, V]) *MultiBiDict[K, V] {
	return multiBiDictFromForward(d.forward.Union(other.forward))
}

// Intersect keeps the receiver's entries whose keys are also in other,
// retaining the receiver's sets.
func (d *MultiBiDict[K, V]) Intersect(other *MultiBiDict[K, V]) *MultiBiDict[K, V] {
	return multiBiDictFromForward(d.forward.Intersect(other.forward))
}

// Diff keeps the receiver's entries whose keys are absent from other.
func (d *MultiBiDict[K, V]) Diff(other *MultiBiDict[K, V]) *MultiBiDict[K, V] {
	return multiBiDictFromForward(d.forward.Diff(other.forward))
}

// Equal returns true if the two dictionaries hold the same keys in the same
// order, each bound to the same set in the same set order. The reverse index
// is derived state and does not participate.
func (d *MultiBiDict[K, V]) Equal(other *MultiBiDict[K, V]) bool {
	return orderedmap.EqualFunc(d.forward, other.forward, (*orderedset.Set[V]).Equal)
}

// MapMultiBiDictValues returns a MultiBiDict with fn applied to every value
// in every key's set. Results that collide within a key collapse. The
// reverse index is rebuilt wholesale.
func MapMultiBiDictValues[K, V, R comparable](d *MultiBiDict[K, V], fn func(key K, value V) R) *MultiBiDict[K, R] {
	forward := orderedmap.MapValues(d.forward, func(k K, set *orderedset.Set[V]) *orderedset.Set[R] {
		return orderedset.MapElems(set, func(v V) R { return fn(k, v) })
	})
	return multiBiDictFromForward(forward)
}

// MergeMultiBiDicts reduces two dictionaries' set-valued forward entries
// with a three-way reducer. Reverse state is neither consulted nor produced.
func MergeMultiBiDicts[K, VL, VR comparable, A any](
	left *MultiBiDict[K, VL],
	right *MultiBiDict[K, VR],
	seed A,
	onLeft func(acc A, key K, values *orderedset.Set[VL]) A,
	onBoth func(acc A, key K, leftValues *orderedset.Set[VL], rightValues *orderedset.Set[VR]) A,
	onRight func(acc A, key K, values *orderedset.Set[VR]) A,
) A {
	return orderedmap.Merge(left.forward, right.forward, seed, onLeft, onBoth, onRight)
}
