// Package ast holds the arena-backed syntax tree of one strata file.
//
// All nodes of a file share one dense NodeID space, so later phases can keep
// per-node results in plain slices indexed by NodeID.
package ast
