package dictz

import (
	"github.com/authzed/dictz/orderedmap"
)

// GroupBy partitions a slice by key equality across the whole input, not
// only consecutive runs. Group order follows each key's first occurrence;
// elements keep their relative order within their group.
func GroupBy[T any, K comparable](items []T, keyFn func(item T) K) *orderedmap.Map[K, []T] {
	groups := orderedmap.New[K, []T]()
	for _, item := range items {
		key := keyFn(item)
		group, _ := groups.Get(key)
		groups = groups.Set(key, append(group, item))
	}
	return groups
}

// GroupPairs groups a flat pair sequence by key, preserving each value's
// original relative position within its key's group.
func GroupPairs[K, V comparable](pairs []orderedmap.Pair[K, V]) *orderedmap.Map[K, []V] {
	grouped := GroupBy(pairs, func(p orderedmap.Pair[K, V]) K { return p.Key })
	return orderedmap.MapValues(grouped, func(_ K, group []orderedmap.Pair[K, V]) []V {
		values := make([]V, 0, len(group))
		for _, p := range group {
			values = append(values, p.Value)
		}
		return values
	})
}
