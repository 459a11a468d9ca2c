package driver

import (
	"slices"

	"strata/internal/compile"
	"strata/internal/project/dag"
)

// GraphFile is one file of a module graph.
type GraphFile struct {
	ID      compile.ID
	Path    string
	Failure string // load failure, empty when the file loaded
	Deps    []compile.ID
	InCycle bool
}

// GraphReport describes the module graph of one collection.
type GraphReport struct {
	Files []GraphFile
	// Batches groups files that can be analyzed together, dependencies
	// first. Files on a cycle are left out.
	Batches [][]compile.ID
	Cycles  [][]compile.ID
}

// Graph summarizes the module graph of coll.
func Graph(coll *compile.Collection) GraphReport {
	var report GraphReport
	deps := make(map[compile.ID][]compile.ID)
	seenCycle := make(map[compile.ID]bool)
	for _, e := range coll.Edges() {
		deps[e.From] = appendUnique(deps[e.From], e.To)
		if cycle := coll.Cycle(e.From, e.Decl); len(cycle) > 0 {
			report.Cycles = appendCycle(report.Cycles, cycle)
			for _, id := range cycle {
				seenCycle[id] = true
			}
		}
	}
	for id := compile.ID(1); int(id) <= coll.Len(); id++ {
		f := GraphFile{ID: id, Path: coll.Path(id), Deps: deps[id], InCycle: seenCycle[id]}
		if coll.Get(id) == nil {
			if _, err := coll.TryGetCompilation(f.Path); err != nil {
				f.Failure = err.Error()
			}
		}
		report.Files = append(report.Files, f)
	}

	// reverse edges so that dependencies come first
	g := dag.NewGraph(coll.Len() + 1)
	for _, e := range coll.Edges() {
		if e.From != e.To {
			g.AddEdge(dag.NodeID(e.To), dag.NodeID(e.From))
		}
	}
	topo := dag.ToposortKahn(g)
	for _, batch := range topo.Batches {
		var ids []compile.ID
		for _, n := range batch {
			id := compile.ID(n)
			if id == compile.NoID || seenCycle[id] || coll.Get(id) == nil {
				continue
			}
			ids = append(ids, id)
		}
		if len(ids) > 0 {
			report.Batches = append(report.Batches, ids)
		}
	}
	return report
}

func appendUnique(ids []compile.ID, id compile.ID) []compile.ID {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

func appendCycle(cycles [][]compile.ID, cycle []compile.ID) [][]compile.ID {
	for _, c := range cycles {
		if slices.Equal(c, cycle) {
			return cycles
		}
	}
	return append(cycles, cycle)
}
