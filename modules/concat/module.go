// Package concat provides the "concat" action, which joins the contents of
// its inputs in declaration order.
package concat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/assetgraph/internal/fsutil"
	"github.com/vk/assetgraph/internal/node"
	"github.com/vk/assetgraph/internal/registry"
)

// Kind is the action kind handled by this module.
const Kind node.Kind = "concat"

// ErrNoInputs is returned for a concat node without inputs.
var ErrNoInputs = errors.New("concat requires at least one input")

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(Kind, registry.HandlerFunc(Run))
}

// Run writes the concatenation of n's inputs to n.Path().
func Run(ctx context.Context, n *node.Node) error {
	inputs := n.InputNodes()
	if len(inputs) == 0 {
		return ErrNoInputs
	}
	return fsutil.WriteAtomic(n.Path(), 0o644, func(w io.Writer) error {
		for _, in := range inputs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := appendFile(w, in.Path()); err != nil {
				return err
			}
		}
		return nil
	})
}

func appendFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}
