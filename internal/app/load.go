package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vk/assetgraph/internal/builder"
	"github.com/vk/assetgraph/internal/config"
	"github.com/vk/assetgraph/internal/ctxlog"
	"github.com/vk/assetgraph/internal/fsutil"
	"github.com/vk/assetgraph/internal/hcl"
	"github.com/vk/assetgraph/internal/yamlmanifest"
)

// loadEnv applies the env file to the process environment, without
// overriding variables that are already set, and returns the result as a map.
// A missing env file is not an error.
func (a *App) loadEnv(ctx context.Context) (map[string]string, error) {
	logger := ctxlog.FromContext(ctx)
	if path := a.config.EnvFile; path != "" {
		err := godotenv.Load(path)
		switch {
		case err == nil:
			logger.Debug("Env file loaded.", "path", path)
		case errors.Is(err, fs.ErrNotExist):
			logger.Debug("Env file not found, skipping.", "path", path)
		default:
			return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}

	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env, nil
}

// loaderFor picks the manifest loader by file extension.
func loaderFor(path string, env map[string]string) (config.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl.NewLoader(env), nil
	case ".yaml", ".yml":
		return yamlmanifest.NewLoader(env), nil
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", path)
	}
}

// loadManifests reads every manifest file in order into one model.
func loadManifests(ctx context.Context, files []string, env map[string]string) (*config.Model, error) {
	model := &config.Model{}
	for _, file := range files {
		loader, err := loaderFor(file, env)
		if err != nil {
			return nil, err
		}
		m, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}
	return model, nil
}

// plan loads the configured manifests and builds the graph. It returns the
// plan and the manifest files that were read.
func (a *App) plan(ctx context.Context) (*builder.Plan, []string, error) {
	logger := ctxlog.FromContext(ctx)

	env, err := a.loadEnv(ctx)
	if err != nil {
		return nil, nil, err
	}

	files, err := fsutil.ResolveManifests(a.config.ManifestPaths)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve manifests: %w", err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no manifest files found in %v", a.config.ManifestPaths)
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	model, err := loadManifests(ctx, files, env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load manifests: %w", err)
	}
	logger.Info("Manifests loaded.", "files", len(files), "sources", len(model.Sources), "artifacts", len(model.Artifacts))

	p, err := builder.Build(ctx, model, builder.Options{
		Targets:     a.config.Targets,
		ActionKinds: a.registry.Kinds(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}
	return p, files, nil
}
