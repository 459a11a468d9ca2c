// Package sema assigns types to the nodes of one bound file.
//
// A TypeManager is created per compilation after name binding has finished.
// Every node is evaluated at most once; the resulting TypeAssignment values
// are cached in a slice indexed by ast.NodeID and never change afterwards.
// Module declarations are typed against the interface of the referenced file,
// which is obtained through a ModuleResolver without typing that file.
package sema
