package executor

import (
	"errors"
	"fmt"

	"github.com/vk/assetgraph/internal/node"
)

// ErrNoHandler is wrapped when a node's action kind has no registered handler.
var ErrNoHandler = errors.New("no handler registered")

// ActionExecutionError identifies the node whose action failed.
type ActionExecutionError struct {
	Path   string
	Action node.Kind
	Err    error
}

func (e *ActionExecutionError) Error() string {
	return fmt.Sprintf("action '%s' failed for %s: %v", e.Action, e.Path, e.Err)
}

func (e *ActionExecutionError) Unwrap() error { return e.Err }
