package dictz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/authzed/dictz/orderedmap"
	"github.com/authzed/dictz/orderedset"
)

func TestMultiBiDictChatDocuments(t *testing.T) {
	d := NewMultiBiDict[string, string]().
		Add("chat1", "doc1").
		Add("chat1", "doc2").
		Add("chat2", "doc1")

	require.Equal(t, 3, d.Len())
	require.Equal(t, 2, d.KeyLen())
	require.Equal(t, []string{"doc1", "doc2"}, d.Get("chat1").AsSlice())
	require.Equal(t, []string{"chat1", "chat2"}, d.GetReverse("doc1").AsSlice())

	d1 := d.Remove("chat1", "doc2")
	d2 := d1.Add("chat3", "doc2")

	require.Equal(t, []string{"doc1"}, d2.Get("chat1").AsSlice())
	require.Equal(t, []string{"doc2"}, d2.Get("chat3").AsSlice())
	require.Equal(t, []string{"chat3"}, d2.GetReverse("doc2").AsSlice())

	// Earlier versions are unaffected.
	require.Equal(t, []string{"doc1", "doc2"}, d.Get("chat1").AsSlice())
	require.Equal(t, []string{"chat1"}, d.GetReverse("doc2").AsSlice())
	require.True(t, d1.GetReverse("doc2").IsEmpty())
}

func TestMultiBiDictAddRemove(t *testing.T) {
	d := NewMultiBiDict[string, string]()
	require.True(t, d.IsEmpty())

	// Add is additive on both sides.
	d1 := d.Add("k1", "v1").Add("k1", "v2").Add("k2", "v1")
	require.Equal(t, []string{"v1", "v2"}, d1.Get("k1").AsSlice())
	require.Equal(t, []string{"k1", "k2"}, d1.GetReverse("v1").AsSlice())

	// Adding a present pair is a no-op in final state.
	require.True(t, d1.Add("k1", "v1").Equal(d1))

	// Remove patches both sides symmetrically.
	d2 := d1.Remove("k2", "v1")
	require.False(t, d2.Has("k2"))
	require.Equal(t, []string{"k1"}, d2.GetReverse("v1").AsSlice())

	// Removing the last key bound to a value drops the value's reverse
	// entry.
	d3 := d2.Remove("k1", "v1")
	require.True(t, d3.GetReverse("v1").IsEmpty())
	require.Len(t, d3.ReversePairs(), 1)

	// Removing an absent pair is a no-op.
	require.Same(t, d3, d3.Remove("k1", "v1"))
	require.Same(t, d3, d3.Remove("zzz", "v2"))

	// Unknown lookups yield empty, non-nil sets.
	require.NotNil(t, d3.Get("zzz"))
	require.True(t, d3.Get("zzz").IsEmpty())
	require.NotNil(t, d3.GetReverse("zzz"))
	require.True(t, d3.GetReverse("zzz").IsEmpty())
}

func TestMultiBiDictRemoveKey(t *testing.T) {
	d := NewMultiBiDict[string, string]().
		Add("k1", "v1").
		Add("k1", "v2").
		Add("k2", "v2")

	// Deleting a key removes it from every value's reverse set.
	d1 := d.RemoveKey("k1")
	require.False(t, d1.Has("k1"))
	require.True(t, d1.GetReverse("v1").IsEmpty())
	require.Equal(t, []string{"k2"}, d1.GetReverse("v2").AsSlice())

	// Removing an absent key is a no-op.
	require.Same(t, d1, d1.RemoveKey("k1"))
}

func TestMultiBiDictUpdate(t *testing.T) {
	d := NewMultiBiDict[string, string]().
		Add("k1", "v1").
		Add("k2", "v1")

	// Update replaces the key's set and recomputes the entire reverse
	// index.
	d1 := d.Update("k1", func(values *orderedset.Set[string]) *orderedset.Set[string] {
		return values.Delete("v1").Add("v2")
	})
	require.Equal(t, []string{"v2"}, d1.Get("k1").AsSlice())
	require.Equal(t, []string{"k2"}, d1.GetReverse("v1").AsSlice())
	require.Equal(t, []string{"k1"}, d1.GetReverse("v2").AsSlice())

	// An empty result removes the key.
	d2 := d.Update("k1", func(*orderedset.Set[string]) *orderedset.Set[string] {
		return orderedset.New[string]()
	})
	require.False(t, d2.Has("k1"))
	require.Equal(t, []string{"k2"}, d2.GetReverse("v1").AsSlice())

	// Updating an absent key sees an empty set.
	d3 := d.Update("k3", func(values *orderedset.Set[string]) *orderedset.Set[string] {
		require.True(t, values.IsEmpty())
		return values.Add("v3")
	})
	require.Equal(t, []string{"k3"}, d3.GetReverse("v3").AsSlice())
}

func TestMultiBiDictFromPairsAndRoundTrip(t *testing.T) {
	d := MultiBiDictFromPairs([]orderedmap.Pair[string, int]{
		{Key: "a", Value: 1},
		{Key: "b", Value: 1},
		{Key: "a", Value: 2},
		{Key: "a", Value: 1},
	})

	// Grouping spans the whole input and duplicate pairs collapse.
	require.Equal(t, []int{1, 2}, d.Get("a").AsSlice())
	require.Equal(t, []string{"a", "b"}, d.GetReverse(1).AsSlice())
	require.Equal(t, 3, d.Len())

	require.True(t, MultiBiDictFromPairs(d.Pairs()).Equal(d))
}

func TestMultiBiDictFromMapNormalizes(t *testing.T) {
	forward := orderedmap.New[string, *orderedset.Set[int]]().
		Set("a", orderedset.Of(1, 2)).
		Set("empty", orderedset.New[int]()).
		Set("b", orderedset.Of(2))

	d := MultiBiDictFromMap(forward)

	// Keys bound to empty sets are dropped, never stored.
	require.Equal(t, []string{"a", "b"}, d.Keys())
	require.Equal(t, []string{"a", "b"}, d.GetReverse(2).AsSlice())
}

func TestMultiBiDictInverse(t *testing.T) {
	d := NewMultiBiDict[string, int]().
		Add("a", 1).
		Add("a", 2).
		Add("b", 1)

	inv := d.Inverse()
	require.Equal(t, []string{"a", "b"}, inv.Get(1).AsSlice())
	require.Equal(t, []int{1, 2}, inv.GetReverse("a").AsSlice())
	require.Equal(t, d.Len(), inv.Len())

	// Inverting twice restores the original.
	require.True(t, inv.Inverse().Equal(d))
}

func TestMultiBiDictFilterPartition(t *testing.T) {
	d := NewMultiBiDict[string, int]().
		Add("a", 1).Add("a", 2).
		Add("b", 2).
		Add("c", 3)

	even := d.Filter(func(_ string, v int) bool { return v%2 == 0 })
	require.Equal(t, []string{"a", "b"}, even.Keys())
	require.Equal(t, []int{2}, even.Get("a").AsSlice())
	require.Equal(t, []string{"a", "b"}, even.GetReverse(2).AsSlice())
	require.True(t, even.GetReverse(1).IsEmpty())

	// Partition tests whole (key, set) entries.
	big, small := d.Partition(func(_ string, values *orderedset.Set[int]) bool {
		return values.Len() > 1
	})
	require.Equal(t, []string{"a"}, big.Keys())
	require.Equal(t, []string{"a"}, big.GetReverse(1).AsSlice())
	require.Equal(t, []string{"b", "c"}, small.Keys())
	require.Equal(t, []string{"b"}, small.GetReverse(2).AsSlice())
	require.True(t, small.GetReverse(1).IsEmpty())
}

func TestMultiBiDictCombinators(t *testing.T) {
	left := NewMultiBiDict[string, int]().Add("a", 1).Add("a", 2).Add("b", 3)
	right := NewMultiBiDict[string, int]().Add("a", 9).Add("c", 4)

	// Left's whole set wins on key collision; the reverse index reflects
	// the combined forward state.
	union := left.Union(right)
	require.Equal(t, []string{"a", "b", "c"}, union.Keys())
	require.Equal(t, []int{1, 2}, union.Get("a").AsSlice())
	require.True(t, union.GetReverse(9).IsEmpty())
	require.Equal(t, []string{"c"}, union.GetReverse(4).AsSlice())

	intersect := left.Intersect(right)
	require.Equal(t, []string{"a"}, intersect.Keys())
	require.Equal(t, []int{1, 2}, intersect.Get("a").AsSlice())

	diff := left.Diff(right)
	require.Equal(t, []string{"b"}, diff.Keys())
	require.True(t, diff.GetReverse(1).IsEmpty())
	require.Equal(t, []string{"b"}, diff.GetReverse(3).AsSlice())
}

func TestMultiBiDictMapValuesAndMerge(t *testing.T) {
	d := NewMultiBiDict[string, int]().Add("k", 1).Add("k", 2).Add("j", 2)

	parity := MapMultiBiDictValues(d, func(_ string, v int) int { return v % 2 })
	require.Equal(t, []int{1, 0}, parity.Get("k").AsSlice())
	require.Equal(t, []string{"k", "j"}, parity.GetReverse(0).AsSlice())

	left := NewMultiBiDict[string, int]().Add("a", 1).Add("b", 2)
	right := NewMultiBiDict[string, int]().Add("b", 9).Add("c", 4)
	order := MergeMultiBiDicts(left, right, []string(nil),
		func(acc []string, k string, _ *orderedset.Set[int]) []string { return append(acc, "L"+k) },
		func(acc []string, k string, _, _ *orderedset.Set[int]) []string { return append(acc, "B"+k) },
		func(acc []string, k string, _ *orderedset.Set[int]) []string { return append(acc, "R"+k) },
	)
	require.Equal(t, []string{"La", "Bb", "Rc"}, order)
}

// Symmetric consistency: v ∈ forward[k] iff k ∈ reverse[v], and neither side
// stores an empty set.
func requireMultiBiDictConsistent[K, V comparable](t *testing.T, d *MultiBiDict[K, V]) {
	t.Helper()

	distinct := map[V]struct{}{}
	for _, p := range d.Pairs() {
		require.True(t, d.GetReverse(p.Value).Has(p.Key),
			"key %v missing from reverse entry of value %v", p.Key, p.Value)
		distinct[p.Value] = struct{}{}
	}

	require.Len(t, d.ReversePairs(), len(distinct))
	for _, rp := range d.ReversePairs() {
		require.False(t, rp.Value.IsEmpty(), "reverse entry for %v is empty", rp.Key)
		for k := range rp.Value.All() {
			require.True(t, d.Get(k).Has(rp.Key),
				"value %v missing from forward entry of key %v", rp.Key, k)
		}
	}

	for _, k := range d.Keys() {
		require.False(t, d.Get(k).IsEmpty(), "forward entry for %v is empty", k)
	}
}

func TestMultiBiDictConsistencyAfterMixedOperations(t *testing.T) {
	d := NewMultiBiDict[string, string]()
	requireMultiBiDictConsistent(t, d)

	d = d.Add("chat1", "doc1").Add("chat1", "doc2").Add("chat2", "doc1")
	requireMultiBiDictConsistent(t, d)

	d = d.Remove("chat1", "doc2")
	requireMultiBiDictConsistent(t, d)

	d = d.RemoveKey("chat2")
	requireMultiBiDictConsistent(t, d)

	d = d.Update("chat1", func(values *orderedset.Set[string]) *orderedset.Set[string] {
		return values.Add("doc9")
	})
	requireMultiBiDictConsistent(t, d)

	d = d.Union(NewMultiBiDict[string, string]().Add("chat4", "doc1"))
	requireMultiBiDictConsistent(t, d)

	d = d.Filter(func(_ string, v string) bool { return v != "doc9" })
	requireMultiBiDictConsistent(t, d)
}
