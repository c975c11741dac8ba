package orderer

import "sort"

// Graph tracks precedence edges between named nodes. An edge from A to B
// means A must come before B.
type Graph struct {
	nodes    map[string]int
	incoming map[string]map[string]struct{}
	outgoing map[string]map[string]struct{}
}

// NewGraph creates an empty precedence graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:    make(map[string]int),
		incoming: make(map[string]map[string]struct{}),
		outgoing: make(map[string]map[string]struct{}),
	}
}

// AddNode ensures the node exists. Nodes remember the order in which they
// were first added; that order breaks ties during sorting.
func (g *Graph) AddNode(name string) {
	if _, exists := g.nodes[name]; exists {
		return
	}

	g.nodes[name] = len(g.nodes)
	g.incoming[name] = make(map[string]struct{})
	g.outgoing[name] = make(map[string]struct{})
}

// AddEdge records that first must precede second.
func (g *Graph) AddEdge(first, second string) {
	g.AddNode(first)
	g.AddNode(second)

	g.outgoing[first][second] = struct{}{}
	g.incoming[second][first] = struct{}{}
}

// HasNode reports if the node exists in the graph.
func (g *Graph) HasNode(name string) bool {
	if g == nil {
		return false
	}
	_, ok := g.nodes[name]
	return ok
}

// Predecessors returns the nodes that must come before name, in declaration order.
func (g *Graph) Predecessors(name string) []string {
	return g.declared(g.incoming[name])
}

// Successors returns the nodes that must come after name, in declaration order.
func (g *Graph) Successors(name string) []string {
	return g.declared(g.outgoing[name])
}

// DetectCycles returns one cycle if present or nil when the graph is acyclic.
func (g *Graph) DetectCycles() []string {
	visited := make(map[string]bool)
	stack := make(map[string]bool)
	path := []string{}

	var cycle []string
	var dfs func(node string) bool

	dfs = func(node string) bool {
		visited[node] = true
		stack[node] = true
		path = append(path, node)

		for _, next := range g.Successors(node) {
			if !visited[next] {
				if dfs(next) {
					return true
				}
			} else if stack[next] {
				idx := len(path) - 1
				for idx >= 0 && path[idx] != next {
					idx--
				}
				if idx >= 0 {
					cycle = append([]string{}, path[idx:]...)
					return true
				}
			}
		}

		stack[node] = false
		path = path[:len(path)-1]
		return false
	}

	for _, node := range g.declaredNodes() {
		if !visited[node] {
			if dfs(node) {
				break
			}
		}
	}

	return cycle
}

// TopologicalSort returns all nodes so that every edge points forward. Among
// nodes that are ready at the same time, the earliest declared wins.
func (g *Graph) TopologicalSort() ([]string, error) {
	remaining := make(map[string]int, len(g.nodes))
	for node := range g.nodes {
		remaining[node] = len(g.incoming[node])
	}

	ready := make([]string, 0, len(g.nodes))
	for _, node := range g.declaredNodes() {
		if remaining[node] == 0 {
			ready = append(ready, node)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		current := ready[0]
		ready = ready[1:]
		result = append(result, current)

		for _, next := range g.Successors(current) {
			remaining[next]--
			if remaining[next] == 0 {
				ready = g.insertByDeclaration(ready, next)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, &CyclicOrderingError{Cycle: g.DetectCycles()}
	}

	return result, nil
}

func (g *Graph) insertByDeclaration(queue []string, node string) []string {
	idx := sort.Search(len(queue), func(i int) bool {
		return g.nodes[queue[i]] > g.nodes[node]
	})
	queue = append(queue, "")
	copy(queue[idx+1:], queue[idx:])
	queue[idx] = node
	return queue
}

func (g *Graph) declared(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return g.nodes[names[i]] < g.nodes[names[j]]
	})
	return names
}

func (g *Graph) declaredNodes() []string {
	names := make([]string, len(g.nodes))
	for name, idx := range g.nodes {
		names[idx] = name
	}
	return names
}
