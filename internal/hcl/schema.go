package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Sources   []*sourceBlock   `hcl:"source,block"`
	Artifacts []*artifactBlock `hcl:"artifact,block"`
	Targets   []*targetBlock   `hcl:"target,block"`
}

type sourceBlock struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
	Body hcl.Body `hcl:",body"`
}

type artifactBlock struct {
	Name    string         `hcl:"name,label"`
	Path    string         `hcl:"path"`
	Action  string         `hcl:"action"`
	Inputs  []*inputBlock  `hcl:"input,block"`
	Command hcl.Expression `hcl:"command,optional"`
	Body    hcl.Body       `hcl:",body"`
}

// inputBlock is an `input "<tag>" { from = ... }` block inside an artifact.
type inputBlock struct {
	Tag  string         `hcl:"tag,label"`
	From hcl.Expression `hcl:"from"`
}

type targetBlock struct {
	Name  string         `hcl:"name,label"`
	Build hcl.Expression `hcl:"build"`
	Body  hcl.Body       `hcl:",body"`
}
