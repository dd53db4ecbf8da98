package dictz

import (
	"iter"

	"github.com/authzed/dictz/orderedmap"
	"github.com/authzed/dictz/orderedset"
)

// BiDict is a persistent many-to-one bidirectional map: each key maps to
// exactly one value, and every value can be looked up in reverse to find the
// set of keys bound to it. The reverse index is maintained in lock-step with
// the forward map and never stores an empty key set.
//
// Mutating operations return a new BiDict and leave the receiver untouched.
type BiDict[K, V comparable] struct {
	forward *orderedmap.Map[K, V]
	reverse *orderedmap.Map[V, *orderedset.Set[K]]
}

func newBiDict[K, V comparable](forward *orderedmap.Map[K, V], reverse *orderedmap.Map[V, *orderedset.Set[K]]) *BiDict[K, V] {
	debugCheckReverse(forward, reverse)
	return &BiDict[K, V]{forward: forward, reverse: reverse}
}

// NewBiDict returns an empty BiDict.
func NewBiDict[K, V comparable]() *BiDict[K, V] {
	return newBiDict(orderedmap.New[K, V](), orderedmap.New[V, *orderedset.Set[K]]())
}

// BiDictOf returns a BiDict holding only the given entry.
func BiDictOf[K, V comparable](key K, value V) *BiDict[K, V] {
	return NewBiDict[K, V]().Set(key, value)
}

// BiDictFromPairs builds a BiDict by inserting the pairs in order, exactly
// as repeated Set calls would: a later pair for an already-seen key
// overwrites its value.
func BiDictFromPairs[K, V comparable](pairs []orderedmap.Pair[K, V]) *BiDict[K, V] {
	d := NewBiDict[K, V]()
	for _, p := range pairs {
		d = d.Set(p.Key, p.Value)
	}
	return d
}

// BiDictFromMap wraps an existing forward map, deriving the reverse index
// from it.
func BiDictFromMap[K, V comparable](forward *orderedmap.Map[K, V]) *BiDict[K, V] {
	return newBiDict(forward, reverseOf(forward))
}

// Get returns the value bound to the key and whether the key existed.
func (d *BiDict[K, V]) Get(key K) (V, bool) {
	return d.forward.Get(key)
}

// GetReverse returns the set of keys bound to the given value. The set is
// empty, never nil, when no key maps to the value.
func (d *BiDict[K, V]) GetReverse(value V) *orderedset.Set[K] {
	set, ok := d.reverse.Get(value)
	if !ok {
		return orderedset.New[K]()
	}
	return set
}

// Has returns true if the key is found in the dictionary.
func (d *BiDict[K, V]) Has(key K) bool { return d.forward.Has(key) }

// Len returns the number of keys in the dictionary.
func (d *BiDict[K, V]) Len() int { return d.forward.Len() }

// IsEmpty returns true if the dictionary holds no entries.
func (d *BiDict[K, V]) IsEmpty() bool { return d.forward.IsEmpty() }

// Set returns a BiDict with the key bound to the value. Any previous binding
// of the key is removed from the reverse index first; re-binding a key to
// its current value is a no-op in final state.
func (d *BiDict[K, V]) Set(key K, value V) *BiDict[K, V] {
	reverse := d.reverse
	if old, ok := d.forward.Get(key); ok {
		reverse = removeFromIndex(reverse, old, key)
	}
	reverse = addToIndex(reverse, value, key)
	return newBiDict(d.forward.Set(key, value), reverse)
}

// Update applies fn to the current binding for the key. fn receives the
// current value (or the zero value) and whether the key was present; it
// returns the new value and whether the key should be kept.
func (d *BiDict[K, V]) Update(key K, fn func(value V, present bool) (V, bool)) *BiDict[K, V] {
	current, present := d.forward.Get(key)
	next, keep := fn(current, present)
	switch {
	case keep:
		return d.Set(key, next)
	case present:
		return d.Remove(key)
	default:
		return d
	}
}

// Remove returns a BiDict without the given key, unbinding it from the
// reverse index as well. Removing an absent key returns the receiver
// unchanged.
func (d *BiDict[K, V]) Remove(key K) *BiDict[K, V] {
	value, ok := d.forward.Get(key)
	if !ok {
		return d
	}
	return newBiDict(d.forward.Delete(key), removeFromIndex(d.reverse, value, key))
}

// Keys returns the keys in insertion order.
func (d *BiDict[K, V]) Keys() []K { return d.forward.Keys() }

// Values returns the values in forward insertion order, one per key.
func (d *BiDict[K, V]) Values() []V { return d.forward.Values() }

// Pairs returns the forward entries in insertion order.
func (d *BiDict[K, V]) Pairs() []orderedmap.Pair[K, V] { return d.forward.Pairs() }

// ReversePairs returns the reverse entries: each value paired with the set
// of keys bound to it.
func (d *BiDict[K, V]) ReversePairs() []orderedmap.Pair[V, *orderedset.Set[K]] {
	return d.reverse.Pairs()
}

// Forward returns the forward map. The map is persistent, so sharing it with
// the caller is safe.
func (d *BiDict[K, V]) Forward() *orderedmap.Map[K, V] { return d.forward }

// All returns an iterator over the forward entries in insertion order.
func (d *BiDict[K, V]) All() iter.Seq2[K, V] { return d.forward.All() }

// Filter returns a BiDict holding only the entries for which pred returns
// true. The reverse index is rebuilt from the filtered forward map.
func (d *BiDict[K, V]) Filter(pred func(key K, value V) bool) *BiDict[K, V] {
	return BiDictFromMap(d.forward.Filter(pred))
}

// Partition splits the dictionary into the entries for which pred returns
// true and those for which it returns false. Both results rebuild their
// reverse indexes.
func (d *BiDict[K, V]) Partition(pred func(key K, value V) bool) (*BiDict[K, V], *BiDict[K, V]) {
	yes, no := d.forward.Partition(pred)
	return BiDictFromMap(yes), BiDictFromMap(no)
}

// Union combines two dictionaries; on key collision the receiver's value
// wins. The reverse index is rebuilt from the combined forward map.
func (d *BiDict[K, V]) Union(other *BiDict[K, V]) *BiDict[K, V] {
	return BiDictFromMap(d.forward.Union(other.forward))
}

// Intersect keeps the receiver's entries whose keys are also in other,
// retaining the receiver's values.
func (d *BiDict[K, V]) Intersect(other *BiDict[K, V]) *BiDict[K, V] {
	return BiDictFromMap(d.forward.Intersect(other.forward))
}

// Diff keeps the receiver's entries whose keys are absent from other.
func (d *BiDict[K, V]) Diff(other *BiDict[K, V]) *BiDict[K, V] {
	return BiDictFromMap(d.forward.Diff(other.forward))
}

// Equal returns true if the two dictionaries hold the same forward entries
// in the same order. The reverse index is derived state and does not
// participate.
func (d *BiDict[K, V]) Equal(other *BiDict[K, V]) bool {
	return orderedmap.Equal(d.forward, other.forward)
}

// MapBiDictValues returns a BiDict with fn applied to every value. The
// reverse index is rebuilt wholesale from the transformed forward map.
func MapBiDictValues[K, V, R comparable](d *BiDict[K, V], fn func(key K, value V) R) *BiDict[K, R] {
	return BiDictFromMap(orderedmap.MapValues(d.forward, fn))
}

// FoldlBiDict reduces the forward entries in insertion order.
func FoldlBiDict[K, V comparable, A any](d *BiDict[K, V], seed A, fn func(acc A, key K, value V) A) A {
	return orderedmap.Foldl(d.forward, seed, fn)
}

// FoldrBiDict reduces the forward entries in reverse insertion order.
func FoldrBiDict[K, V comparable, A any](d *BiDict[K, V], seed A, fn func(acc A, key K, value V) A) A {
	return orderedmap.Foldr(d.forward, seed, fn)
}

// MergeBiDicts reduces two dictionaries' forward entries with a three-way
// reducer. Reverse state is neither consulted nor produced.
func MergeBiDicts[K, VL, VR comparable, A any](
	left *BiDict[K, VL],
	right *BiDict[K, VR],
	seed A,
	onLeft func(acc A, key K, value VL) A,
	onBoth func(acc A, key K, leftValue VL, rightValue VR) A,
	onRight func(acc A, key K, value VR) A,
) A {
	return orderedmap.Merge(left.forward, right.forward, seed, onLeft, onBoth, onRight)
}
