// Package testutil provides the shared harness for assetgraph integration
// tests: a temporary workspace of manifests and sources, a recording action
// module and assertions over build results.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/assetgraph/internal/app"
	"github.com/vk/assetgraph/internal/executor"
	"github.com/vk/assetgraph/internal/fsutil"
	"github.com/vk/assetgraph/internal/registry"
)

// Epoch is the modification time given to every fixture file. It predates
// any test binary, so freshly built outputs are always newer.
var Epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Harness is a temporary workspace holding manifests and source files.
type Harness struct {
	t         *testing.T
	Dir       string
	manifests []string
	modules   []registry.Module
}

// HarnessResult holds the outcomes of one build run.
type HarnessResult struct {
	LogOutput string
	Err       error
	Result    *executor.Result
	App       *app.App
}

// NewHarness writes files (relative path to content) below a fresh
// directory, pins their modification times to Epoch and remembers which of
// them are manifests. Extra modules are registered with every run.
func NewHarness(t *testing.T, files map[string]string, modules ...registry.Module) *Harness {
	t.Helper()
	h := &Harness{t: t, Dir: t.TempDir(), modules: modules}

	for name, content := range files {
		path := h.Path(name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		require.NoError(t, os.Chtimes(path, Epoch, Epoch))
		for _, ext := range fsutil.ManifestExtensions {
			if filepath.Ext(name) == ext {
				h.manifests = append(h.manifests, path)
			}
		}
	}
	sort.Strings(h.manifests)
	return h
}

// Path resolves a slash separated path relative to the workspace.
func (h *Harness) Path(rel string) string {
	return filepath.Join(h.Dir, filepath.FromSlash(rel))
}

// Read returns the content of a workspace file.
func (h *Harness) Read(rel string) string {
	h.t.Helper()
	data, err := os.ReadFile(h.Path(rel))
	require.NoError(h.t, err)
	return string(data)
}

// Touch sets the modification time of a workspace file.
func (h *Harness) Touch(rel string, mtime time.Time) {
	h.t.Helper()
	require.NoError(h.t, os.Chtimes(h.Path(rel), mtime, mtime))
}

// Settle gives the listed outputs strictly increasing modification times
// shortly in the future, in the given order. Outputs written back to back
// can share an mtime on file systems with coarse timestamps, which the
// staleness rule treats as stale.
func (h *Harness) Settle(rels ...string) {
	h.t.Helper()
	now := time.Now()
	for i, rel := range rels {
		h.Touch(rel, now.Add(time.Duration(i+1)*time.Minute))
	}
}

// Run builds the workspace with a background context.
func (h *Harness) Run(mutate func(cfg *app.Config)) *HarnessResult {
	h.t.Helper()
	return h.RunWithContext(context.Background(), mutate)
}

// RunWithContext builds the workspace. mutate may adjust the configuration
// before it is validated.
func (h *Harness) RunWithContext(ctx context.Context, mutate func(cfg *app.Config)) *HarnessResult {
	h.t.Helper()

	cfg := app.Config{
		ManifestPaths: h.manifests,
		LogFormat:     "text",
		WorkerCount:   1,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	validated, err := app.NewConfig(cfg)
	require.NoError(h.t, err)

	testApp, logBuffer := app.SetupAppTest(h.t, validated, h.modules...)
	res, runErr := testApp.Run(ctx)

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		Result:    res,
		App:       testApp,
	}
}

// Remove deletes a workspace file.
func (h *Harness) Remove(rel string) {
	h.t.Helper()
	require.NoError(h.t, os.Remove(h.Path(rel)))
}
