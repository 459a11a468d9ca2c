package dag

import (
	"reflect"
	"slices"
	"testing"
)

func adjacency(edges map[string][]string) func(string) []string {
	return func(n string) []string { return edges[n] }
}

func TestFindCyclesAcyclic(t *testing.T) {
	edges := map[string][]string{
		"a": {"b", "c"},
		"b": {"c"},
		"c": nil,
		"d": nil, // disconnected leaf
	}
	cycles := FindCycles([]string{"a", "b", "c", "d"}, adjacency(edges))
	if len(cycles) != 0 {
		t.Fatalf("expected no cycles, got %v", cycles)
	}
	if MembersByNode(cycles)["a"] != nil {
		t.Fatalf("a is on no cycle")
	}
}

func TestFindCyclesThreeNodeCycle(t *testing.T) {
	edges := map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}
	cycles := FindCycles([]string{"a", "b", "c"}, adjacency(edges))
	want := [][]string{{"a", "b", "c"}}
	if !reflect.DeepEqual(cycles, want) {
		t.Fatalf("cycles = %v, want %v", cycles, want)
	}
	through := adjacency(edges)
	for _, tt := range []struct {
		from, to string
		want     []string
	}{
		{"a", "b", []string{"a", "b", "c"}},
		{"b", "c", []string{"b", "c", "a"}},
		{"c", "a", []string{"c", "a", "b"}},
	} {
		if got := CycleThrough(tt.from, tt.to, through); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("CycleThrough(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestFindCyclesSelfEdge(t *testing.T) {
	edges := map[string][]string{"a": {"a"}}
	cycles := FindCycles([]string{"a"}, adjacency(edges))
	if len(cycles) != 1 || len(cycles[0]) != 1 || cycles[0][0] != "a" {
		t.Fatalf("expected one-node cycle, got %v", cycles)
	}
}

func TestFindCyclesOnlyCycleMembersReported(t *testing.T) {
	// entry -> a -> b -> a ; entry is not part of the cycle
	edges := map[string][]string{
		"entry": {"a"},
		"a":     {"b"},
		"b":     {"a"},
	}
	cycles := FindCycles([]string{"entry", "a", "b"}, adjacency(edges))
	members := MembersByNode(cycles)
	if _, ok := members["entry"]; ok {
		t.Fatalf("entry must not be a cycle member: %v", cycles)
	}
	if len(members["a"]) != 2 || len(members["b"]) != 2 {
		t.Fatalf("unexpected members %v", members)
	}
}

func TestFindCyclesOverlappingCycles(t *testing.T) {
	// a <-> b and a -> c -> b -> a share a and b; c is reached from a
	// after b has been finished
	edges := map[string][]string{
		"a": {"b", "c"},
		"b": {"a"},
		"c": {"b"},
	}
	cycles := FindCycles([]string{"a", "b", "c"}, adjacency(edges))
	want := [][]string{{"a", "b", "c"}}
	if !reflect.DeepEqual(cycles, want) {
		t.Fatalf("cycles = %v, want %v", cycles, want)
	}
	members := MembersByNode(cycles)
	for from, tos := range edges {
		for _, to := range tos {
			if !slices.Contains(members[from], to) {
				t.Fatalf("edge %s -> %s lies on a cycle but is not covered", from, to)
			}
		}
	}
	if got := CycleThrough("c", "b", adjacency(edges)); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Fatalf("CycleThrough(c, b) = %v", got)
	}
}

func TestCycleThroughUnreachable(t *testing.T) {
	edges := map[string][]string{"a": {"b"}, "b": {"c"}}
	if got := CycleThrough("a", "b", adjacency(edges)); got != nil {
		t.Fatalf("a -> b is on no cycle, got %v", got)
	}
	if got := CycleThrough("a", "a", adjacency(edges)); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("a self edge is a one-node cycle, got %v", got)
	}
}

func TestFindCyclesDisconnectedComponents(t *testing.T) {
	edges := map[int][]int{
		1: {2},
		2: nil,
		3: {4},
		4: {3},
	}
	cycles := FindCycles([]int{1, 2, 3, 4}, func(n int) []int { return edges[n] })
	if len(cycles) != 1 || !reflect.DeepEqual(cycles[0], []int{3, 4}) {
		t.Fatalf("cycles = %v", cycles)
	}
}

func TestToposortKahnBatches(t *testing.T) {
	// 0 -> 2, 1 has no edges
	g := NewGraph(3)
	g.AddEdge(0, 2)
	g.AddEdge(0, 2)

	topo := ToposortKahn(g)
	if topo.Cyclic {
		t.Fatalf("expected acyclic graph")
	}
	wantOrder := []NodeID{0, 1, 2}
	if !reflect.DeepEqual(topo.Order, wantOrder) {
		t.Fatalf("order = %v, want %v", topo.Order, wantOrder)
	}
	wantBatches := [][]NodeID{{0, 1}, {2}}
	if !reflect.DeepEqual(topo.Batches, wantBatches) {
		t.Fatalf("batches = %v, want %v", topo.Batches, wantBatches)
	}
	if g.Indeg[2] != 1 {
		t.Fatalf("duplicate edge counted twice: indeg %d", g.Indeg[2])
	}
}

func TestToposortKahnCycle(t *testing.T) {
	g := NewGraph(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 1)

	topo := ToposortKahn(g)
	if !topo.Cyclic {
		t.Fatalf("expected cycle")
	}
	if !reflect.DeepEqual(topo.Cycles, []NodeID{1, 2}) {
		t.Fatalf("cycles = %v", topo.Cycles)
	}
	if len(FindCycles(g.Nodes(), g.Children)) != 1 {
		t.Fatalf("FindCycles disagrees with Kahn")
	}
}
