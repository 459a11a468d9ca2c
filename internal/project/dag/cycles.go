package dag

import "slices"

// FindCycles returns the cyclic strongly connected components reachable
// from nodes under the children relation: every component of two or more
// nodes, and every single node with an edge to itself. An edge u->v lies on
// some cycle exactly when u and v share one of these components, so overlapping
// cycles collapse into one component and none of their edges is missed.
//
// Members are listed in depth-first discovery order and components in the
// order of their first member. Leaves and disconnected parts are fine; every
// node of nodes not yet visited starts a new search. Results are
// deterministic as long as nodes and children are.
func FindCycles[N comparable](nodes []N, children func(N) []N) [][]N {
	index := make(map[N]int, len(nodes))
	low := make(map[N]int, len(nodes))
	onStack := make(map[N]bool, len(nodes))
	stack := make([]N, 0, 16)
	var found [][]N

	var connect func(n N)
	connect = func(n N) {
		index[n] = len(index)
		low[n] = index[n]
		stack = append(stack, n)
		onStack[n] = true
		for _, next := range children(n) {
			if _, seen := index[next]; !seen {
				connect(next)
				low[n] = min(low[n], low[next])
			} else if onStack[next] {
				low[n] = min(low[n], index[next])
			}
		}
		if low[n] != index[n] {
			return
		}
		var component []N
		for {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[top] = false
			component = append(component, top)
			if top == n {
				break
			}
		}
		if len(component) == 1 && !slices.Contains(children(n), n) {
			return
		}
		slices.SortFunc(component, func(a, b N) int { return index[a] - index[b] })
		found = append(found, component)
	}

	for _, n := range nodes {
		if _, seen := index[n]; !seen {
			connect(n)
		}
	}
	slices.SortFunc(found, func(a, b []N) int { return index[a[0]] - index[b[0]] })
	return found
}

// MembersByNode maps every node on a cycle to its component.
func MembersByNode[N comparable](components [][]N) map[N][]N {
	out := make(map[N][]N)
	for _, component := range components {
		for _, n := range component {
			out[n] = component
		}
	}
	return out
}

// CycleThrough returns a shortest cycle whose first edge is from->to, as
// its members starting at from. It is nil when to does not reach from. A
// self edge gives the one-node cycle [from].
func CycleThrough[N comparable](from, to N, children func(N) []N) []N {
	if from == to {
		return []N{from}
	}
	parent := map[N]N{}
	seen := map[N]bool{to: true}
	queue := []N{to}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, next := range children(n) {
			if next == from {
				path := []N{n}
				for p := n; p != to; {
					p = parent[p]
					path = append(path, p)
				}
				slices.Reverse(path)
				return append([]N{from}, path...)
			}
			if !seen[next] {
				seen[next] = true
				parent[next] = n
				queue = append(queue, next)
			}
		}
	}
	return nil
}
