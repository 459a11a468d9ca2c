// Package compile ties the front end and the semantic passes together over
// a graph of files.
//
// A Collection owns one Compilation per file reachable from an entry file.
// Files are loaded at most once through a fileio.Resolver; a file that
// cannot be loaded keeps its failure in the collection and is reported once,
// at the module declaration that refers to it. After discovery the module
// graph is checked for cycles; a cycle becomes a diagnostic on every module
// declaration that takes part in it.
//
// A collection is confined to one goroutine. A new version of the sources
// means a new collection.
package compile
