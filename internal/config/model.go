package config

import (
	"fmt"
	"strings"
)

// Model is the unified, format-agnostic representation of one or more
// manifests: the declared sources, the artifacts derived from them and the
// named targets that select what to build.
type Model struct {
	Sources   []*Source
	Artifacts []*Artifact
	Targets   []*Target
}

// Source declares an input file that no action produces.
type Source struct {
	Name string
	Path string
	// Origin is a human readable location such as "shaders.hcl:3".
	Origin string
}

// Artifact declares a derived file together with the action that produces it.
type Artifact struct {
	Name   string
	Path   string
	Action string
	Inputs []*Input
	// Command is the argument vector used by the exec action.
	Command []string
	Origin  string
}

// Input is one labeled dependency of an artifact.
type Input struct {
	Tag  string
	From Ref
}

// Target names a set of artifacts to build.
type Target struct {
	Name   string
	Build  []Ref
	Origin string
}

// RefKind is the namespace a reference points into.
type RefKind string

const (
	RefSource   RefKind = "source"
	RefArtifact RefKind = "artifact"
)

// Ref points at a declared source or artifact by name.
type Ref struct {
	Kind RefKind
	Name string
}

func (r Ref) String() string {
	return string(r.Kind) + "." + r.Name
}

// ParseRef parses the textual form "source.<name>" or "artifact.<name>".
func ParseRef(s string) (Ref, error) {
	kind, name, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || name == "" || strings.Contains(name, ".") {
		return Ref{}, fmt.Errorf("invalid reference %q: expected source.<name> or artifact.<name>", s)
	}
	switch RefKind(kind) {
	case RefSource, RefArtifact:
		return Ref{Kind: RefKind(kind), Name: name}, nil
	default:
		return Ref{}, fmt.Errorf("invalid reference %q: unknown namespace %q", s, kind)
	}
}

// Merge appends every declaration of other to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Sources = append(m.Sources, other.Sources...)
	m.Artifacts = append(m.Artifacts, other.Artifacts...)
	m.Targets = append(m.Targets, other.Targets...)
}
