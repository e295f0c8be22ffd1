// Package graph holds the ordered set of requested build targets and the
// traversal that every other layer relies on.
//
// # Structure
//
// A Graph is nothing more than its root Nodes. The DAG is implicit: it is
// whatever is reachable from the roots through each Node's tagged inputs.
// Nothing is copied or indexed up front, so building a Graph is free and a
// Graph can be walked any number of times.
//
// # Traversal
//
// Walk produces a topological order lazily, using an explicit stack and a
// three-state marker per node ID:
//
//	unvisited -> expanding -> done
//
// A node is expanded (its inputs pushed) the first time it reaches the top of
// the stack and is yielded the next time it is on top, when all of its inputs
// are done. Re-encountering an expanding node means the inputs loop back on
// themselves; the walk stops and reports a ConfigurationError that names the
// cycle.
//
// The traversal never recurses, so graph depth is bounded only by memory.
package graph
