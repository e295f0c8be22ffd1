package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/assetgraph/internal/config"
	"github.com/vk/assetgraph/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	env map[string]string
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL manifest loader. env is exposed to manifests
// as the `env` variable.
func NewLoader(env map[string]string) *Loader {
	return &Loader{env: env}
}

// Load parses every given file and merges the declared blocks into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range paths {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, err
		}
		hclFile, diags := parser.ParseHCLFile(abs)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		evalCtx, err := newEvalContext(filepath.Dir(abs), l.env)
		if err != nil {
			return nil, err
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, s := range root.Sources {
			model.Sources = append(model.Sources, translateSource(s))
		}
		for _, a := range root.Artifacts {
			art, err := translateArtifact(ctx, a, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Artifacts = append(model.Artifacts, art)
		}
		for _, t := range root.Targets {
			target, err := translateTarget(t, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Targets = append(model.Targets, target)
		}
	}

	logger.Debug("HCL loading complete.", "sources", len(model.Sources), "artifacts", len(model.Artifacts), "targets", len(model.Targets))
	return model, nil
}
