package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// NodeID is a dense node handle, typically an arena index.
type NodeID uint32

// Graph is an adjacency list over dense ids. Edges[from] = []to.
type Graph struct {
	Edges [][]NodeID
	Indeg []int
}

// NewGraph allocates a graph with n nodes and no edges.
func NewGraph(n int) Graph {
	return Graph{
		Edges: make([][]NodeID, n),
		Indeg: make([]int, n),
	}
}

// AddEdge records from -> to once; repeated edges are ignored.
func (g *Graph) AddEdge(from, to NodeID) {
	if slices.Contains(g.Edges[from], to) {
		return
	}
	g.Edges[from] = append(g.Edges[from], to)
	g.Indeg[to]++
}

// Children returns the successors of id; it matches the FindCycles signature.
func (g Graph) Children(id NodeID) []NodeID {
	if int(id) >= len(g.Edges) {
		return nil
	}
	return g.Edges[id]
}

// Nodes lists every node id in ascending order.
func (g Graph) Nodes() []NodeID {
	out := make([]NodeID, len(g.Edges))
	for i := range g.Edges {
		id, err := safecast.Conv[NodeID](i)
		if err != nil {
			panic(fmt.Errorf("node id overflow: %w", err))
		}
		out[i] = id
	}
	return out
}

type Topo struct {
	Order   []NodeID   // linear order, edge sources first
	Batches [][]NodeID // waves of mutually independent nodes
	Cyclic  bool
	Cycles  []NodeID // nodes left with incoming edges after the sort
}

// ToposortKahn orders g with Kahn's algorithm. Nodes that cannot be ordered
// because they sit on (or behind) a cycle end up in Cycles.
func ToposortKahn(g Graph) *Topo {
	nodeCount := len(g.Edges)
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	topo := &Topo{
		Order:   make([]NodeID, 0, nodeCount),
		Batches: make([][]NodeID, 0),
	}

	current := make([]NodeID, 0, nodeCount)
	for _, id := range g.Nodes() {
		if indeg[id] == 0 {
			current = append(current, id)
		}
	}

	visited := 0
	for len(current) > 0 {
		batch := make([]NodeID, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]NodeID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, to := range g.Edges[id] {
				indeg[to]--
				if indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if visited != nodeCount {
		topo.Cyclic = true
		for _, id := range g.Nodes() {
			if indeg[id] > 0 {
				topo.Cycles = append(topo.Cycles, id)
			}
		}
	}

	return topo
}
