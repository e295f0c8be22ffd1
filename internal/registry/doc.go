// Package registry provides the action table: the glue between the action
// kinds named in a build graph and the compiled Go handlers that produce
// their artifacts.
//
// Handlers are contributed by modules, each of which implements Module and
// registers one or more kinds. Before any work starts the registry is
// validated against the graph so that a node whose kind has no handler is
// reported up front rather than halfway through a build.
package registry
