package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/assetgraph/internal/graph"
	"github.com/vk/assetgraph/internal/staleness"
	"github.com/vk/assetgraph/internal/testutil"
)

// Test for: manifest problems are reported before any action runs.
func TestErrorHandling_ManifestValidation(t *testing.T) {
	testCases := []struct {
		name     string
		manifest string
		wantIs   error
		wantMsg  string
	}{
		{
			name: "cycle",
			manifest: `
artifact "a" {
  path   = "${dir}/out/a"
  action = "copy"
  input "in" { from = artifact.b }
}
artifact "b" {
  path   = "${dir}/out/b"
  action = "copy"
  input "in" { from = artifact.a }
}
`,
			wantIs:  graph.ErrCycle,
			wantMsg: "out/a -> ",
		},
		{
			name: "unknown action",
			manifest: `
source "s" { path = "${dir}/seed.txt" }
artifact "a" {
  path   = "${dir}/out/a"
  action = "glslang"
  input "in" { from = source.s }
}
`,
			wantIs:  graph.ErrInvalid,
			wantMsg: `unknown action "glslang"`,
		},
		{
			name: "artifact without inputs",
			manifest: `
artifact "stamp" {
  path   = "${dir}/out/stamp"
  action = "copy"
}
`,
			wantIs:  graph.ErrInvalid,
			wantMsg: "artifact.stamp has no inputs",
		},
		{
			name: "dangling reference",
			manifest: `
artifact "a" {
  path   = "${dir}/out/a"
  action = "copy"
  input "in" { from = source.missing }
}
`,
			wantIs:  graph.ErrInvalid,
			wantMsg: "references undeclared source.missing",
		},
		{
			name: "missing source file",
			manifest: `
source "gone" { path = "${dir}/gone.glsl" }
artifact "a" {
  path   = "${dir}/out/a"
  action = "copy"
  input "in" { from = source.gone }
}
`,
			wantIs:  staleness.ErrMissingSource,
			wantMsg: "gone.glsl",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := testutil.NewHarness(t, map[string]string{
				"build.hcl": tc.manifest,
				"seed.txt":  "seed",
			})

			result := h.Run(nil)

			require.Error(t, result.Err)
			assert.ErrorIs(t, result.Err, tc.wantIs)
			assert.Contains(t, result.Err.Error(), tc.wantMsg)
			assert.NoDirExists(t, h.Path("out"))
		})
	}
}
