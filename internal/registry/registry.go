package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/assetgraph/internal/node"
)

// Handler produces the artifact of a single node. It must read only the
// node's declared inputs, write exactly n.Path() on success, and return an
// error without leaving a partially written output on failure.
type Handler interface {
	Run(ctx context.Context, n *node.Node) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, n *node.Node) error

// Run calls f(ctx, n).
func (f HandlerFunc) Run(ctx context.Context, n *node.Node) error {
	return f(ctx, n)
}

// Module is the interface that all action modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry maps action kinds to their handlers for a single application instance.
type Registry struct {
	handlers map[node.Kind]Handler
}

// New creates and initializes a new Registry instance, registering the given modules.
func New(modules ...Module) *Registry {
	r := &Registry{handlers: make(map[node.Kind]Handler)}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterHandler binds a handler to an action kind. Registering the source
// kind or the same kind twice is a programming error and panics.
func (r *Registry) RegisterHandler(kind node.Kind, h Handler) {
	if kind == node.Source {
		panic("cannot register a handler for source nodes")
	}
	if h == nil {
		panic(fmt.Sprintf("nil handler for action '%s'", kind))
	}
	if _, exists := r.handlers[kind]; exists {
		panic(fmt.Sprintf("handler for action '%s' already registered", kind))
	}
	slog.Debug("Registering action handler.", "action", kind.String())
	r.handlers[kind] = h
}

// Lookup returns the handler for kind.
func (r *Registry) Lookup(kind node.Kind) (Handler, bool) {
	h, ok := r.handlers[kind]
	return h, ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}
