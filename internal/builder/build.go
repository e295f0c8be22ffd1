package builder

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/vk/assetgraph/internal/config"
	"github.com/vk/assetgraph/internal/ctxlog"
	"github.com/vk/assetgraph/internal/graph"
	"github.com/vk/assetgraph/internal/node"
)

// Options controls root selection and action validation.
type Options struct {
	// Targets selects which targets to build. Empty means all.
	Targets []string
	// ActionKinds, when non-nil, is the closed set of accepted action kinds.
	ActionKinds []string
}

// build holds the intermediate state of one Build call.
type build struct {
	arena    *node.Arena
	refs     map[config.Ref]*node.Node
	paths    map[string]string
	commands map[node.ID][]string
}

// Build constructs the graph described by m. All manifest errors are
// *graph.ConfigurationError values wrapping graph.ErrInvalid, or ErrCycle
// when the references form a loop.
func Build(ctx context.Context, m *config.Model, opts Options) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building graph from manifest.", "sources", len(m.Sources), "artifacts", len(m.Artifacts), "targets", len(m.Targets))

	b := &build{
		arena:    node.NewArena(),
		refs:     make(map[config.Ref]*node.Node),
		paths:    make(map[string]string),
		commands: make(map[node.ID][]string),
	}

	// Phase 1: node creation.
	for _, s := range m.Sources {
		if err := b.addSource(s); err != nil {
			return nil, err
		}
	}
	for _, a := range m.Artifacts {
		if err := b.declareArtifact(a, opts.ActionKinds); err != nil {
			return nil, err
		}
	}

	// Phase 2: dependency linking.
	consumed := make(map[node.ID]bool)
	for _, a := range m.Artifacts {
		if err := b.linkArtifact(a, consumed); err != nil {
			return nil, err
		}
	}
	b.arena.Seal()

	// Phase 3: validation and roots. Cycles are rejected across the whole
	// manifest, not only below the selected roots.
	if err := graph.New(b.artifactNodes(m)...).Validate(); err != nil {
		return nil, err
	}
	roots, err := b.selectRoots(m, opts.Targets, consumed)
	if err != nil {
		return nil, err
	}
	g := graph.New(roots...)

	logger.Debug("Graph built.", "nodes", b.arena.Len(), "roots", len(roots))
	return &Plan{Arena: b.arena, Graph: g, commands: b.commands, refs: b.refs}, nil
}

func (b *build) claim(ref config.Ref, path, origin string) error {
	if ref.Name == "" {
		return graph.Invalidf("%s: %s block is missing a name", origin, ref.Kind)
	}
	if _, dup := b.refs[ref]; dup {
		return graph.Invalidf("%s: duplicate %s declaration", origin, ref)
	}
	if path == "" {
		return graph.Invalidf("%s: %s has no path", origin, ref)
	}
	clean := filepath.Clean(path)
	if owner, dup := b.paths[clean]; dup {
		return graph.Invalidf("%s: %s and %s both declare path %s", origin, owner, ref, clean)
	}
	b.paths[clean] = ref.String()
	return nil
}

func (b *build) addSource(s *config.Source) error {
	ref := config.Ref{Kind: config.RefSource, Name: s.Name}
	if err := b.claim(ref, s.Path, s.Origin); err != nil {
		return err
	}
	b.refs[ref] = b.arena.Source(filepath.Clean(s.Path))
	return nil
}

func (b *build) declareArtifact(a *config.Artifact, kinds []string) error {
	ref := config.Ref{Kind: config.RefArtifact, Name: a.Name}
	if err := b.claim(ref, a.Path, a.Origin); err != nil {
		return err
	}
	if a.Action == "" {
		return graph.Invalidf("%s: %s has no action", a.Origin, ref)
	}
	if len(a.Inputs) == 0 {
		return graph.Invalidf("%s: %s has no inputs; declare it as a source", a.Origin, ref)
	}
	if kinds != nil && !slices.Contains(kinds, a.Action) {
		return graph.Invalidf("%s: %s uses unknown action %q (known: %v)", a.Origin, ref, a.Action, kinds)
	}

	n := b.arena.Declare(filepath.Clean(a.Path), node.Kind(a.Action))
	b.refs[ref] = n
	if len(a.Command) > 0 {
		b.commands[n.ID()] = append([]string(nil), a.Command...)
	}
	return nil
}

func (b *build) linkArtifact(a *config.Artifact, consumed map[node.ID]bool) error {
	n := b.refs[config.Ref{Kind: config.RefArtifact, Name: a.Name}]
	inputs := make([]node.TaggedInput, 0, len(a.Inputs))
	for _, in := range a.Inputs {
		dep, ok := b.refs[in.From]
		if !ok {
			return graph.Invalidf("%s: artifact.%s input %q references undeclared %s", a.Origin, a.Name, in.Tag, in.From)
		}
		inputs = append(inputs, node.Input(in.Tag, dep))
		consumed[dep.ID()] = true
	}
	if err := b.arena.Wire(n, inputs...); err != nil {
		return graph.Invalidf("%s: wiring artifact.%s: %v", a.Origin, a.Name, err)
	}
	return nil
}

func (b *build) selectRoots(m *config.Model, selected []string, consumed map[node.ID]bool) ([]*node.Node, error) {
	byName := make(map[string]*config.Target, len(m.Targets))
	for _, t := range m.Targets {
		if t.Name == "" {
			return nil, graph.Invalidf("%s: target block is missing a name", t.Origin)
		}
		if _, dup := byName[t.Name]; dup {
			return nil, graph.Invalidf("%s: duplicate target %q", t.Origin, t.Name)
		}
		for _, ref := range t.Build {
			if _, ok := b.refs[ref]; !ok {
				return nil, graph.Invalidf("%s: target %q references undeclared %s", t.Origin, t.Name, ref)
			}
		}
		byName[t.Name] = t
	}

	var targets []*config.Target
	switch {
	case len(selected) > 0:
		for _, name := range selected {
			t, ok := byName[name]
			if !ok {
				return nil, graph.Invalidf("unknown target %q", name)
			}
			targets = append(targets, t)
		}
	case len(m.Targets) > 0:
		targets = m.Targets
	default:
		return b.unconsumedArtifacts(m, consumed), nil
	}

	var roots []*node.Node
	seen := make(map[node.ID]bool)
	for _, t := range targets {
		for _, ref := range t.Build {
			n := b.refs[ref]
			if !seen[n.ID()] {
				seen[n.ID()] = true
				roots = append(roots, n)
			}
		}
	}
	return roots, nil
}

func (b *build) artifactNodes(m *config.Model) []*node.Node {
	nodes := make([]*node.Node, 0, len(m.Artifacts))
	for _, a := range m.Artifacts {
		nodes = append(nodes, b.refs[config.Ref{Kind: config.RefArtifact, Name: a.Name}])
	}
	return nodes
}

// unconsumedArtifacts returns, in declaration order, the artifacts that are
// not an input of any other artifact.
func (b *build) unconsumedArtifacts(m *config.Model, consumed map[node.ID]bool) []*node.Node {
	var roots []*node.Node
	for _, a := range m.Artifacts {
		n := b.refs[config.Ref{Kind: config.RefArtifact, Name: a.Name}]
		if !consumed[n.ID()] {
			roots = append(roots, n)
		}
	}
	return roots
}
