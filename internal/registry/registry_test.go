package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/assetgraph/internal/graph"
	"github.com/vk/assetgraph/internal/node"
)

type stubModule struct {
	kinds []node.Kind
}

func (m *stubModule) Register(r *Registry) {
	for _, k := range m.kinds {
		r.RegisterHandler(k, HandlerFunc(func(context.Context, *node.Node) error { return nil }))
	}
}

func TestNew_RegistersModules(t *testing.T) {
	r := New(&stubModule{kinds: []node.Kind{"exec", "concat"}}, &stubModule{kinds: []node.Kind{"copy"}})
	assert.Equal(t, []string{"concat", "copy", "exec"}, r.Kinds())

	h, ok := r.Lookup("exec")
	require.True(t, ok)
	assert.NoError(t, h.Run(context.Background(), nil))

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegisterHandler_Panics(t *testing.T) {
	noop := HandlerFunc(func(context.Context, *node.Node) error { return nil })

	t.Run("duplicate", func(t *testing.T) {
		r := New()
		r.RegisterHandler("exec", noop)
		assert.Panics(t, func() { r.RegisterHandler("exec", noop) })
	})
	t.Run("source kind", func(t *testing.T) {
		assert.Panics(t, func() { New().RegisterHandler(node.Source, noop) })
	})
	t.Run("nil handler", func(t *testing.T) {
		assert.Panics(t, func() { New().RegisterHandler("exec", nil) })
	})
}

func TestValidate(t *testing.T) {
	a := node.NewArena()
	src := a.Source("a.glsl")
	spv := a.New("a.spv", "exec", node.Input("source", src))
	metal := a.New("a.metal", "translate", node.Input("spv", spv))
	other := a.New("b.metal", "translate", node.Input("spv", spv))
	g := graph.New(metal, other)

	t.Run("all kinds registered", func(t *testing.T) {
		r := New(&stubModule{kinds: []node.Kind{"exec", "translate"}})
		assert.NoError(t, r.Validate(context.Background(), g))
	})

	t.Run("missing kind reported once", func(t *testing.T) {
		r := New(&stubModule{kinds: []node.Kind{"exec"}})
		err := r.Validate(context.Background(), g)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "action 'translate' (first used by a.metal)")
		assert.NotContains(t, err.Error(), "b.metal")
	})

	t.Run("sources need no handler", func(t *testing.T) {
		assert.NoError(t, New().Validate(context.Background(), graph.New(src)))
	})

	t.Run("cycle", func(t *testing.T) {
		ca := node.NewArena()
		x := ca.Declare("x", "exec")
		require.NoError(t, ca.Wire(x, node.Input("in", x)))
		err := New(&stubModule{kinds: []node.Kind{"exec"}}).Validate(context.Background(), graph.New(x))
		assert.ErrorIs(t, err, graph.ErrCycle)
	})
}
