package node

import "sort"

// Set is an ID-keyed set of Nodes. Iteration order is ascending ID, which is
// the order nodes were created in, so results are deterministic.
type Set struct {
	members map[ID]*Node
}

// NewSet returns a set holding the given nodes.
func NewSet(nodes ...*Node) *Set {
	s := &Set{members: make(map[ID]*Node, len(nodes))}
	for _, n := range nodes {
		s.Add(n)
	}
	return s
}

// Add inserts n. Adding an existing member is a no-op.
func (s *Set) Add(n *Node) {
	if s.members == nil {
		s.members = make(map[ID]*Node)
	}
	s.members[n.id] = n
}

// Contains reports whether n is a member. A nil set contains nothing.
func (s *Set) Contains(n *Node) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[n.id]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// Nodes returns the members sorted by ID.
func (s *Set) Nodes() []*Node {
	if s == nil {
		return nil
	}
	out := make([]*Node, 0, len(s.members))
	for _, n := range s.members {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Paths returns the member artifact paths in ID order.
func (s *Set) Paths() []string {
	nodes := s.Nodes()
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.path)
	}
	return out
}
