// Package executor runs the registered action for every dirty node of a build
// graph, never starting a node before all of its inputs are finished.
//
// The serial mode follows graph.Walk exactly and runs one action at a time.
// With more than one worker, independent subgraphs run concurrently: each
// node carries an atomic count of unfinished inputs and is queued for the
// worker pool once that count reaches zero. In both modes the first failing
// action aborts the run and no further action is started.
package executor
