// Package node defines the immutable build artifact record used by every
// other layer: a Node names one file on disk, the kind of action that
// produces it, and its labeled direct inputs.
//
// Nodes are shared by identity. Two artifacts may reference the same
// intermediate Node, so membership and visited tracking always key on the
// small integer ID handed out by the Arena that created the Node, never on
// the file path.
package node
