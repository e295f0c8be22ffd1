package graph

import (
	"iter"

	"github.com/vk/assetgraph/internal/node"
)

type mark uint8

const (
	unvisited mark = iota
	expanding
	done
)

type frame struct {
	n        *node.Node
	expanded bool
}

// Walk returns a restartable sequence over every reachable node in
// dependency order: for each edge input -> n, input is yielded before n, and
// every node is yielded exactly once no matter how many dependents share it.
//
// If the inputs form a cycle the sequence yields a single (nil, err) pair,
// where err is a *ConfigurationError wrapping ErrCycle, and stops.
func (g *Graph) Walk() iter.Seq2[*node.Node, error] {
	return func(yield func(*node.Node, error) bool) {
		marks := make(map[node.ID]mark)

		stack := make([]frame, 0, len(g.roots))
		for i := len(g.roots) - 1; i >= 0; i-- {
			stack = append(stack, frame{n: g.roots[i]})
		}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			n := top.n

			if top.expanded {
				stack = stack[:len(stack)-1]
				marks[n.ID()] = done
				if !yield(n, nil) {
					return
				}
				continue
			}

			if marks[n.ID()] == done {
				stack = stack[:len(stack)-1]
				continue
			}

			marks[n.ID()] = expanding
			top.expanded = true

			// Push in reverse so the first declared input is walked first.
			inputs := n.InputNodes()
			for i := len(inputs) - 1; i >= 0; i-- {
				in := inputs[i]
				switch marks[in.ID()] {
				case done:
					continue
				case expanding:
					yield(nil, cycleError(cyclePath(stack, in)))
					return
				}
				stack = append(stack, frame{n: in})
			}
		}
	}
}

// cyclePath extracts the loop closed by an edge back to target. Expanded
// frames on the stack are exactly the current DFS path.
func cyclePath(stack []frame, target *node.Node) []string {
	var path []string
	inCycle := false
	for _, f := range stack {
		if !f.expanded {
			continue
		}
		if f.n == target {
			inCycle = true
		}
		if inCycle {
			path = append(path, f.n.Path())
		}
	}
	return append(path, target.Path())
}
