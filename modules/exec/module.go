// Package exec provides the "exec" action: it runs an external tool whose
// argument vector was declared in the manifest.
//
// Arguments may use these tokens:
//
//	$out        the file the tool must write (a temporary sibling of the output)
//	$in         every input path, one argument each, in declaration order
//	$in.<tag>   the paths of the inputs carrying <tag>
//
// `$out` is also replaced inside larger arguments such as `--output=$out`.
// The temporary file is renamed onto the output only when the tool exits
// successfully and has created it.
package exec

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	osexec "os/exec"
	"strings"

	"github.com/vk/assetgraph/internal/ctxlog"
	"github.com/vk/assetgraph/internal/fsutil"
	"github.com/vk/assetgraph/internal/node"
	"github.com/vk/assetgraph/internal/registry"
)

// Kind is the action kind handled by this module.
const Kind node.Kind = "exec"

// ErrNoCommand is returned for an exec node without a declared command.
var ErrNoCommand = errors.New("no command declared")

// ErrNoOutput is returned when the tool exits successfully without writing $out.
var ErrNoOutput = errors.New("exited successfully but did not write $out")

// CommandSource supplies the argument vector bound to a node at planning time.
type CommandSource interface {
	Command(n *node.Node) ([]string, bool)
}

// Module implements the registry.Module interface for this package.
type Module struct {
	Commands CommandSource
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(Kind, registry.HandlerFunc(m.run))
}

func (m *Module) run(ctx context.Context, n *node.Node) error {
	logger := ctxlog.FromContext(ctx).With("path", n.Path())

	var template []string
	if m.Commands != nil {
		template, _ = m.Commands.Command(n)
	}
	if len(template) == 0 {
		return ErrNoCommand
	}

	tmp, err := fsutil.TempSibling(n.Path())
	if err != nil {
		return err
	}
	// Only the name is reserved; the tool must create $out itself.
	if err := os.Remove(tmp); err != nil {
		return fmt.Errorf("reserving temp name for %s: %w", n.Path(), err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmp)
		}
	}()

	args, err := Expand(template, n, tmp)
	if err != nil {
		return err
	}

	logger.Debug("Running tool.", "args", args)
	cmd := osexec.CommandContext(ctx, args[0], args[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w\n%s", args[0], err, strings.TrimSpace(string(output)))
	}
	if len(output) > 0 {
		logger.Debug("Tool output.", "output", string(output))
	}

	if _, err := os.Stat(tmp); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", args[0], ErrNoOutput)
		}
		return err
	}
	if err := os.Rename(tmp, n.Path()); err != nil {
		return fmt.Errorf("moving tool output into place: %w", err)
	}
	committed = true
	return nil
}

// Expand substitutes the $out and $in tokens of template for node n.
func Expand(template []string, n *node.Node, out string) ([]string, error) {
	args := make([]string, 0, len(template)+n.NumInputs())
	for _, arg := range template {
		switch {
		case arg == "$in":
			for _, in := range n.InputNodes() {
				args = append(args, in.Path())
			}
		case strings.HasPrefix(arg, "$in."):
			tag := strings.TrimPrefix(arg, "$in.")
			inputs := n.InputsWithTag(tag)
			if len(inputs) == 0 {
				return nil, fmt.Errorf("argument %q: node has no input tagged %q", arg, tag)
			}
			for _, in := range inputs {
				args = append(args, in.Path())
			}
		default:
			args = append(args, strings.ReplaceAll(arg, "$out", out))
		}
	}
	if len(args) == 0 || args[0] == "" {
		return nil, ErrNoCommand
	}
	return args, nil
}
