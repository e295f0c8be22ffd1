package graph

import "github.com/vk/assetgraph/internal/node"

// Graph is an ordered collection of root (target) nodes.
type Graph struct {
	roots []*node.Node
}

// New creates a graph over the given roots. Order is preserved and
// determines the walk order between independent targets.
func New(roots ...*node.Node) *Graph {
	return &Graph{roots: append([]*node.Node(nil), roots...)}
}

// Roots returns a copy of the root nodes.
func (g *Graph) Roots() []*node.Node {
	out := make([]*node.Node, len(g.roots))
	copy(out, g.roots)
	return out
}

// Order collects the full walk into a slice.
func (g *Graph) Order() ([]*node.Node, error) {
	var out []*node.Node
	for n, err := range g.Walk() {
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Validate walks the graph once and reports any cycle.
func (g *Graph) Validate() error {
	for _, err := range g.Walk() {
		if err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of distinct reachable nodes, or 0 if the graph
// contains a cycle.
func (g *Graph) Len() int {
	order, err := g.Order()
	if err != nil {
		return 0
	}
	return len(order)
}
