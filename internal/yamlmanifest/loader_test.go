package yamlmanifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/assetgraph/internal/config"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const pipeline = `
sources:
  - name: vert
    path: ${dir}/shaders/triangle.vert.glsl
artifacts:
  - name: vert_spv
    path: ${dir}/out/triangle.vert.spv
    action: exec
    inputs:
      - {tag: source, from: source.vert}
    command: ["${env.GLSLANG}", "-V", "-o", "$out", "$in.source"]
  - name: bundle
    path: ${dir}/out/bundle.bin
    action: concat
    inputs:
      - {tag: vertex, from: artifact.vert_spv}
targets:
  - name: all
    build: [artifact.bundle]
`

func TestLoader_Load(t *testing.T) {
	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	path := writeManifest(t, dir, "pipeline.yaml", pipeline)

	model, err := NewLoader(map[string]string{"GLSLANG": "glslc"}).Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, model.Sources, 1)
	assert.Equal(t, dir+"/shaders/triangle.vert.glsl", model.Sources[0].Path)
	assert.Equal(t, path, model.Sources[0].Origin)

	require.Len(t, model.Artifacts, 2)
	assert.Equal(t, []string{"glslc", "-V", "-o", "$out", "$in.source"}, model.Artifacts[0].Command)
	assert.Equal(t, []*config.Input{{Tag: "source", From: config.Ref{Kind: config.RefSource, Name: "vert"}}}, model.Artifacts[0].Inputs)
	assert.Equal(t, "concat", model.Artifacts[1].Action)

	require.Len(t, model.Targets, 1)
	assert.Equal(t, []config.Ref{{Kind: config.RefArtifact, Name: "bundle"}}, model.Targets[0].Build)
}

func TestLoader_EmptyFile(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "empty.yml", "")
	model, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, model.Sources)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "unknown key", content: "runners: []\n", wantErr: "failed to decode YAML file"},
		{name: "malformed", content: "sources: [\n", wantErr: "failed to decode YAML file"},
		{
			name:    "bad reference",
			content: "artifacts:\n  - {name: x, path: x, action: copy, inputs: [{tag: in, from: vert}]}\n",
			wantErr: "artifact 'x', input 'in'",
		},
		{
			name:    "bad target reference",
			content: "targets:\n  - {name: all, build: [step.x]}\n",
			wantErr: "target 'all'",
		},
		{
			name:    "undefined variable",
			content: "sources:\n  - {name: x, path: \"${env.NOPE}/x\"}\n",
			wantErr: "undefined variables: env.NOPE",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), "m.yaml", tc.content)
			_, err := NewLoader(nil).Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
