package orderer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Name()
	}
	return out
}

func TestOrderEmpty(t *testing.T) {
	t.Parallel()

	ordered, err := Order([]Item(nil))
	require.NoError(t, err)
	require.Empty(t, ordered)
}

func TestOrderRespectsBeforeAndAfter(t *testing.T) {
	t.Parallel()

	ordered, err := Order([]Item{
		{ID: "default"},
		{ID: "advanced", BeforeNames: []string{"default"}},
		{ID: "telemetry", AfterNames: []string{"default"}},
		{ID: "legacy"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"advanced", "default", "telemetry", "legacy"}, names(ordered))
}

func TestOrderIgnoresUnknownAndSelfReferences(t *testing.T) {
	t.Parallel()

	ordered, err := Order([]Item{
		{ID: "b", AfterNames: []string{"not-registered", "b"}},
		{ID: "a", BeforeNames: []string{"ghost"}},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, names(ordered))
}

func TestOrderDetectsCycle(t *testing.T) {
	t.Parallel()

	_, err := Order([]Item{
		{ID: "A", BeforeNames: []string{"B"}},
		{ID: "B", BeforeNames: []string{"A"}},
	})
	require.Error(t, err)
	var cyclic *CyclicOrderingError
	require.ErrorAs(t, err, &cyclic)
	require.ElementsMatch(t, []string{"A", "B"}, cyclic.Cycle)
}

func TestOrderRejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	_, err := Order([]Item{{ID: "default"}, {ID: "default"}})
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "default", dup.Name)
}

func TestOrderUnnamedItems(t *testing.T) {
	t.Parallel()

	ordered, err := Order([]Item{
		{ID: "first"},
		{BeforeNames: []string{"first"}},
		{},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"", "first", ""}, names(ordered))

	_, err = Order([]Item{
		{ID: "A"},
		{BeforeNames: []string{"A"}, AfterNames: []string{"A"}},
	})
	var cyclic *CyclicOrderingError
	require.ErrorAs(t, err, &cyclic)
	require.Contains(t, cyclic.Cycle, "<unnamed>#1")
}

func TestOrderSatisfiesConstraintsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(0, 12).Draw(rt, "count")
		// A hidden rank makes every generated constraint consistent.
		rank := rapid.Permutation(intsUpTo(count)).Draw(rt, "rank")

		items := make([]Item, count)
		for i := range items {
			items[i].ID = fmt.Sprintf("c%d", i)
		}
		type edge struct{ first, second int }
		var edges []edge
		for i := 0; i < count; i++ {
			for j := 0; j < count; j++ {
				if rank[i] >= rank[j] || !rapid.Bool().Draw(rt, "link") {
					continue
				}
				edges = append(edges, edge{i, j})
				if rapid.Bool().Draw(rt, "useBefore") {
					items[i].BeforeNames = append(items[i].BeforeNames, items[j].ID)
				} else {
					items[j].AfterNames = append(items[j].AfterNames, items[i].ID)
				}
			}
		}

		ordered, err := Order(items)
		require.NoError(rt, err)
		require.Len(rt, ordered, count)

		position := make(map[string]int, count)
		for i, s := range ordered {
			position[s.ID] = i
		}
		for _, e := range edges {
			require.Less(rt, position[items[e.first].ID], position[items[e.second].ID])
		}
	})
}

func TestOrderTwoNodeCycleProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		extra := rapid.IntRange(0, 5).Draw(rt, "extra")
		items := []Item{
			{ID: "A", BeforeNames: []string{"B"}},
			{ID: "B", BeforeNames: []string{"A"}},
		}
		for i := 0; i < extra; i++ {
			items = append(items, Item{ID: fmt.Sprintf("x%d", i), AfterNames: []string{"A"}})
		}

		_, err := Order(items)
		var cyclic *CyclicOrderingError
		require.ErrorAs(rt, err, &cyclic)
	})
}

func intsUpTo(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
