package builder

import (
	"github.com/vk/assetgraph/internal/config"
	"github.com/vk/assetgraph/internal/graph"
	"github.com/vk/assetgraph/internal/node"
)

// Plan is the immutable result of Build.
type Plan struct {
	Arena *node.Arena
	Graph *graph.Graph

	commands map[node.ID][]string
	refs     map[config.Ref]*node.Node
}

// Command returns the argument vector declared for n, if any.
func (p *Plan) Command(n *node.Node) ([]string, bool) {
	cmd, ok := p.commands[n.ID()]
	if !ok {
		return nil, false
	}
	return append([]string(nil), cmd...), true
}

// Lookup resolves a manifest reference to its node.
func (p *Plan) Lookup(ref config.Ref) (*node.Node, bool) {
	n, ok := p.refs[ref]
	return n, ok
}
