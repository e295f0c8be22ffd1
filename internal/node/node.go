package node

import "fmt"

// ID is the arena-assigned identity of a Node. IDs are dense and start at 0.
type ID int

// Kind identifies the action that produces a Node's artifact.
type Kind string

// Source marks a leaf Node whose artifact exists on disk and has no producer.
const Source Kind = ""

// String returns the kind name, or "source" for the Source kind.
func (k Kind) String() string {
	if k == Source {
		return "source"
	}
	return string(k)
}

// TaggedInput records a dependency together with the role it plays for the
// consuming action, e.g. "vertex" vs "fragment".
type TaggedInput struct {
	Tag  string
	Node *Node
}

// Input is a convenience constructor for a TaggedInput.
func Input(tag string, n *Node) TaggedInput {
	return TaggedInput{Tag: tag, Node: n}
}

// Node is a single vertex in the build graph, representing one artifact.
// A Node is immutable after construction.
type Node struct {
	id     ID
	path   string
	action Kind
	inputs []TaggedInput
}

// ID returns the node's arena identity.
func (n *Node) ID() ID {
	return n.id
}

// Path returns the artifact file path.
func (n *Node) Path() string {
	return n.path
}

// Action returns the kind of action that produces this artifact.
func (n *Node) Action() Kind {
	return n.action
}

// IsSource reports whether the node is a source leaf with no producer.
func (n *Node) IsSource() bool {
	return n.action == Source
}

// NumInputs returns the number of direct inputs.
func (n *Node) NumInputs() int {
	return len(n.inputs)
}

// TaggedInputs returns a copy of the node's (tag, node) pairs in declaration order.
func (n *Node) TaggedInputs() []TaggedInput {
	out := make([]TaggedInput, len(n.inputs))
	copy(out, n.inputs)
	return out
}

// InputNodes returns the direct dependencies in declaration order, ignoring tags.
func (n *Node) InputNodes() []*Node {
	out := make([]*Node, 0, len(n.inputs))
	for _, in := range n.inputs {
		out = append(out, in.Node)
	}
	return out
}

// InputsWithTag returns the direct dependencies whose tag matches.
func (n *Node) InputsWithTag(tag string) []*Node {
	var out []*Node
	for _, in := range n.inputs {
		if in.Tag == tag {
			out = append(out, in.Node)
		}
	}
	return out
}

// String implements fmt.Stringer for log output.
func (n *Node) String() string {
	return fmt.Sprintf("%s#%d(%s)", n.action, n.id, n.path)
}
