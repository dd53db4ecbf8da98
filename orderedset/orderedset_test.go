package orderedset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetBasicOperations(t *testing.T) {
	s := New[string]()
	require.True(t, s.IsEmpty())
	require.Equal(t, 0, s.Len())

	s1 := s.Add("a").Add("b").Add("c")
	require.Equal(t, 3, s1.Len())
	require.Equal(t, []string{"a", "b", "c"}, s1.AsSlice())
	require.True(t, s1.Has("b"))
	require.False(t, s1.Has("z"))

	// The original set is unchanged.
	require.True(t, s.IsEmpty())

	// Adding a present element returns the receiver and keeps its position.
	require.Same(t, s1, s1.Add("a"))
	require.Equal(t, []string{"a", "b", "c"}, s1.Add("a").AsSlice())

	s2 := s1.Delete("b")
	require.Equal(t, []string{"a", "c"}, s2.AsSlice())
	require.True(t, s1.Has("b"))

	// Deleting an absent element is a no-op.
	require.Same(t, s2, s2.Delete("missing"))
}

func TestSetFromSlice(t *testing.T) {
	s := FromSlice([]int{3, 1, 3, 2, 1})
	require.Equal(t, []int{3, 1, 2}, s.AsSlice())

	require.True(t, Of(3, 1, 2).Equal(s))
	require.False(t, Of(1, 2, 3).Equal(s))
}

func TestSetCombinators(t *testing.T) {
	left := Of("a", "b", "c")
	right := Of("b", "d")

	require.Equal(t, []string{"a", "b", "c", "d"}, left.Union(right).AsSlice())
	require.Equal(t, []string{"b"}, left.Intersect(right).AsSlice())
	require.Equal(t, []string{"a", "c"}, left.Subtract(right).AsSlice())

	// The operands are untouched.
	require.Equal(t, []string{"a", "b", "c"}, left.AsSlice())
	require.Equal(t, []string{"b", "d"}, right.AsSlice())
}

func TestSetFilterPartition(t *testing.T) {
	s := FromSlice([]int{1, 2, 3, 4, 5})

	require.Equal(t, []int{2, 4}, s.Filter(func(n int) bool { return n%2 == 0 }).AsSlice())

	evens, odds := s.Partition(func(n int) bool { return n%2 == 0 })
	require.Equal(t, []int{2, 4}, evens.AsSlice())
	require.Equal(t, []int{1, 3, 5}, odds.AsSlice())
}

func TestSetFoldAndMap(t *testing.T) {
	s := Of("a", "b", "c")

	joined := Foldl(s, "", func(acc string, e string) string { return acc + e })
	require.Equal(t, "abc", joined)

	lengths := MapElems(Of("x", "yy", "zz"), func(e string) int { return len(e) })
	require.Equal(t, []int{1, 2}, lengths.AsSlice())
}

func TestSetIterator(t *testing.T) {
	s := Of(1, 2, 3)

	var elems []int
	for e := range s.All() {
		elems = append(elems, e)
	}
	require.Equal(t, []int{1, 2, 3}, elems)

	count := 0
	for range s.All() {
		count++
		break
	}
	require.Equal(t, 1, count)
}
