// Package copy provides the "copy" action, which copies its single input to
// the output path.
package copy

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/assetgraph/internal/fsutil"
	"github.com/vk/assetgraph/internal/node"
	"github.com/vk/assetgraph/internal/registry"
)

// Kind is the action kind handled by this module.
const Kind node.Kind = "copy"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(Kind, registry.HandlerFunc(Run))
}

// Run copies the only input of n to n.Path(), keeping the input's permissions.
func Run(_ context.Context, n *node.Node) error {
	inputs := n.InputNodes()
	if len(inputs) != 1 {
		return fmt.Errorf("copy requires exactly one input, got %d", len(inputs))
	}

	src, err := os.Open(inputs[0].Path())
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	return fsutil.WriteAtomic(n.Path(), info.Mode().Perm(), func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	})
}
