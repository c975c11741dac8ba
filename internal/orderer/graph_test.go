package orderer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGraphDetectCycles(t *testing.T) {
	graph := NewGraph()
	graph.AddEdge("A", "B")
	graph.AddEdge("B", "C")
	graph.AddEdge("C", "A")

	cycle := graph.DetectCycles()
	require.Len(t, cycle, 3)
	require.ElementsMatch(t, []string{"A", "B", "C"}, cycle)

	acyclic := NewGraph()
	acyclic.AddEdge("A", "B")
	acyclic.AddEdge("B", "C")
	require.Nil(t, acyclic.DetectCycles())
}

func TestGraphTopologicalSortKeepsDeclarationOrderForTies(t *testing.T) {
	graph := NewGraph()
	graph.AddNode("zeta")
	graph.AddNode("alpha")
	graph.AddNode("mid")
	graph.AddEdge("mid", "zeta")

	order, err := graph.TopologicalSort()
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "mid", "zeta"}, order)
}

func TestGraphTopologicalSortCycle(t *testing.T) {
	cyclic := NewGraph()
	cyclic.AddEdge("A", "B")
	cyclic.AddEdge("B", "A")

	_, err := cyclic.TopologicalSort()
	require.Error(t, err)
	var cycle *CyclicOrderingError
	require.ErrorAs(t, err, &cycle)
	require.ElementsMatch(t, []string{"A", "B"}, cycle.Cycle)
	require.Contains(t, err.Error(), "->")
}

func TestGraphNeighbours(t *testing.T) {
	graph := NewGraph()
	graph.AddEdge("default", "fallback")
	graph.AddEdge("fast", "fallback")
	graph.AddEdge("fast", "default")

	require.Equal(t, []string{"default", "fast"}, graph.Predecessors("fallback"))
	require.Equal(t, []string{"default", "fallback"}, graph.Successors("fast"))
	require.True(t, graph.HasNode("fast"))
	require.False(t, graph.HasNode("missing"))
}
