/*
Package builder turns the format-agnostic manifest model into the build graph.

Graph construction is a multi-phase process:

 1. Node Creation: every source becomes a source node and every artifact is
    declared in the arena with its action kind. Names and output paths must be
    unique across the manifest.

 2. Dependency Linking: each artifact's `input` references are resolved to
    nodes and wired in declaration order, keeping their tags. Because all
    nodes exist before linking, references may point forward in the manifest,
    which also makes cycles expressible.

 3. Validation and Root Selection: every artifact is checked for cycles,
    reachable or not. The roots are the artifacts of the selected targets,
    otherwise of all targets, otherwise every artifact no other artifact
    consumes.

The produced *Plan carries the graph together with the per-node command
payloads used by the exec action, so action lookup data is fixed once at
planning time.
*/
package builder
