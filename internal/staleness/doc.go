// Package staleness decides which artifacts of a build graph are out of date.
//
// The only persisted build state is the filesystem: an artifact is fresh when
// its file exists and is strictly newer than every direct input and than the
// minModTime baseline, which stands for the freshness of the build logic
// itself. Dirtiness propagates to every downstream dependent.
package staleness
