package hcl

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
source "vert" {
  path = "${dir}/shaders/triangle.vert.glsl"
}

artifact "vert_spv" {
  path    = "${dir}/out/triangle.vert.spv"
  action  = "exec"
  input "source" { from = source.vert }
  command = ["${env.GLSLANG}", "-V", "-o", "$out", "$in.source", 100]
}

artifact "bundle" {
  path   = "${dir}/out/${lower("BUNDLE")}.bin"
  action = "concat"
  input "vertex" { from = artifact.vert_spv }
  input "extra"  { from = "source.vert" }
}

target "all" {
  build = [artifact.bundle, "artifact.vert_spv"]
}
`

func TestLoader_Load(t *testing.T) {
	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	path := writeManifest(t, dir, "pipeline.hcl", pipeline)

	model, err := NewLoader(map[string]string{"GLSLANG": "/opt/bin/glslangValidator"}).Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, model.Sources, 1)
	assert.Equal(t, "vert", model.Sources[0].Name)
	assert.Equal(t, filepath.Join(dir, "shaders", "triangle.vert.glsl"), filepath.Clean(model.Sources[0].Path))
	assert.Contains(t, model.Sources[0].Origin, "pipeline.hcl:")

	require.Len(t, model.Artifacts, 2)
	spv := model.Artifacts[0]
	assert.Equal(t, "exec", spv.Action)
	assert.Equal(t, []*config.Input{{Tag: "source", From: config.Ref{Kind: config.RefSource, Name: "vert"}}}, spv.Inputs)
	assert.Equal(t, []string{"/opt/bin/glslangValidator", "-V", "-o", "$out", "$in.source", "100"}, spv.Command)

	bundle := model.Artifacts[1]
	assert.Equal(t, filepath.Join(dir, "out", "bundle.bin"), filepath.Clean(bundle.Path))
	assert.Nil(t, bundle.Command)
	assert.Equal(t, []*config.Input{
		{Tag: "vertex", From: config.Ref{Kind: config.RefArtifact, Name: "vert_spv"}},
		{Tag: "extra", From: config.Ref{Kind: config.RefSource, Name: "vert"}},
	}, bundle.Inputs)

	require.Len(t, model.Targets, 1)
	assert.Equal(t, []config.Ref{
		{Kind: config.RefArtifact, Name: "bundle"},
		{Kind: config.RefArtifact, Name: "vert_spv"},
	}, model.Targets[0].Build)
}

func TestLoader_MergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeManifest(t, dir, "a.hcl", `source "one" { path = "one" }`)
	b := writeManifest(t, dir, "b.hcl", `source "two" { path = "two" }`)

	model, err := NewLoader(nil).Load(context.Background(), a, b)
	require.NoError(t, err)
	require.Len(t, model.Sources, 2)
	assert.Equal(t, "one", model.Sources[0].Name)
	assert.Equal(t, "two", model.Sources[1].Name)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "syntax error",
			content: `source "x" {`,
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "missing path",
			content: `source "x" {}`,
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "unknown block",
			content: `runner "x" {}`,
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "undefined env var",
			content: `source "x" { path = env.NOPE }`,
			wantErr: "failed to decode HCL file",
		},
		{
			name: "bad reference namespace",
			content: `artifact "x" {
  path = "x"
  action = "copy"
  input "in" { from = target.all }
}`,
			wantErr: `unknown namespace "target"`,
		},
		{
			name: "reference too deep",
			content: `artifact "x" {
  path = "x"
  action = "copy"
  input "in" { from = artifact.y.path }
}`,
			wantErr: "expected a reference",
		},
		{
			name: "command not a list",
			content: `artifact "x" {
  path = "x"
  action = "exec"
  command = { a = 1 }
}`,
			wantErr: "must be a list of strings",
		},
		{
			name:    "build not a list",
			content: `target "all" { build = "artifact.x" }`,
			wantErr: "target 'all', build",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), "m.hcl", tc.content)
			_, err := NewLoader(nil).Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
