package concat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/assetgraph/internal/node"
	"github.com/vk/assetgraph/internal/registry"
)

func TestRun_JoinsInputsInOrder(t *testing.T) {
	dir := t.TempDir()
	arena := node.NewArena()
	a := arena.Source(filepath.Join(dir, "a"))
	b := arena.Source(filepath.Join(dir, "b"))
	require.NoError(t, os.WriteFile(a.Path(), []byte("vertex;"), 0o644))
	require.NoError(t, os.WriteFile(b.Path(), []byte("fragment;"), 0o644))
	out := arena.New(filepath.Join(dir, "bundle"), Kind, node.Input("x", b), node.Input("y", a), node.Input("x", b))

	h, ok := registry.New(&Module{}).Lookup(Kind)
	require.True(t, ok)
	require.NoError(t, h.Run(context.Background(), out))

	got, err := os.ReadFile(out.Path())
	require.NoError(t, err)
	assert.Equal(t, "fragment;vertex;fragment;", string(got))
}

func TestRun_MissingInputLeavesOutputUntouched(t *testing.T) {
	dir := t.TempDir()
	arena := node.NewArena()
	missing := arena.Source(filepath.Join(dir, "missing"))
	out := arena.New(filepath.Join(dir, "bundle"), Kind, node.Input("x", missing))
	require.NoError(t, os.WriteFile(out.Path(), []byte("previous"), 0o644))

	err := Run(context.Background(), out)
	require.ErrorIs(t, err, os.ErrNotExist)

	got, err := os.ReadFile(out.Path())
	require.NoError(t, err)
	assert.Equal(t, "previous", string(got))
}

func TestRun_NoInputs(t *testing.T) {
	arena := node.NewArena()
	out := arena.New(filepath.Join(t.TempDir(), "bundle"), Kind)
	assert.ErrorIs(t, Run(context.Background(), out), ErrNoInputs)
}
