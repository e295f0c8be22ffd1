package node

import (
	"errors"
	"fmt"
)

// ErrSealed is returned when wiring is attempted after Seal.
var ErrSealed = errors.New("arena is sealed")

// Arena allocates Nodes and owns the ID counter for one build invocation.
// It is not safe for concurrent use; graphs are built by a single planner.
//
// Nodes are created either in one step with New, when their inputs already
// exist, or in two steps with Declare and Wire, when a planner must refer to
// artifacts before all of them are known. Once Seal is called no node can be
// wired again.
type Arena struct {
	nodes   []*Node
	pending map[ID]struct{}
	sealed  bool
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{pending: make(map[ID]struct{})}
}

// New creates an immutable Node with the next free ID. Every input must
// belong to this arena; anything else is a programming error and panics.
func (a *Arena) New(path string, action Kind, inputs ...TaggedInput) *Node {
	if err := a.checkInputs(path, inputs); err != nil {
		panic(err.Error())
	}
	n := a.alloc(path, action)
	n.inputs = append([]TaggedInput(nil), inputs...)
	return n
}

// Source is shorthand for a leaf node with no producer.
func (a *Arena) Source(path string) *Node {
	return a.New(path, Source)
}

// Declare allocates a node whose inputs are supplied later by Wire.
func (a *Arena) Declare(path string, action Kind) *Node {
	n := a.alloc(path, action)
	if a.pending == nil {
		a.pending = make(map[ID]struct{})
	}
	a.pending[n.id] = struct{}{}
	return n
}

// Wire sets the inputs of a declared node. Each declared node can be wired
// at most once, and only before Seal.
func (a *Arena) Wire(n *Node, inputs ...TaggedInput) error {
	if a.sealed {
		return ErrSealed
	}
	if !a.owns(n) {
		return fmt.Errorf("node %s belongs to another arena", n)
	}
	if _, ok := a.pending[n.id]; !ok {
		return fmt.Errorf("node %s is not awaiting inputs", n)
	}
	if err := a.checkInputs(n.path, inputs); err != nil {
		return err
	}
	n.inputs = append([]TaggedInput(nil), inputs...)
	delete(a.pending, n.id)
	return nil
}

// Seal freezes the arena. Declared nodes that were never wired keep no inputs.
func (a *Arena) Seal() {
	a.sealed = true
	a.pending = nil
}

// Len returns the number of nodes allocated so far.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Get returns the node with the given ID.
func (a *Arena) Get(id ID) (*Node, bool) {
	if id < 0 || int(id) >= len(a.nodes) {
		return nil, false
	}
	return a.nodes[id], true
}

func (a *Arena) alloc(path string, action Kind) *Node {
	if a.sealed {
		panic("node: allocation on a sealed arena")
	}
	n := &Node{id: ID(len(a.nodes)), path: path, action: action}
	a.nodes = append(a.nodes, n)
	return n
}

func (a *Arena) checkInputs(path string, inputs []TaggedInput) error {
	for _, in := range inputs {
		if in.Node == nil {
			return fmt.Errorf("node: nil input %q for %s", in.Tag, path)
		}
		if !a.owns(in.Node) {
			return fmt.Errorf("node: input %s of %s belongs to another arena", in.Node, path)
		}
	}
	return nil
}

func (a *Arena) owns(n *Node) bool {
	return n != nil && int(n.id) < len(a.nodes) && a.nodes[n.id] == n
}
