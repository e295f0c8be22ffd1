package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/assetgraph/internal/ctxlog"
	"github.com/vk/assetgraph/internal/graph"
)

// Validate checks that every reachable non-source node has a registered
// handler. It also surfaces graph cycles, since it walks the graph.
func (r *Registry) Validate(ctx context.Context, g *graph.Graph) error {
	logger := ctxlog.FromContext(ctx)

	var errs []string
	reported := make(map[string]bool)
	checked := 0
	for n, err := range g.Walk() {
		if err != nil {
			return err
		}
		checked++
		if n.IsSource() {
			continue
		}
		if _, ok := r.handlers[n.Action()]; ok {
			continue
		}
		kind := n.Action().String()
		if reported[kind] {
			continue
		}
		reported[kind] = true
		errs = append(errs, fmt.Sprintf("action '%s' (first used by %s) has no registered handler", kind, n.Path()))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validation passed.", "nodes", checked, "handlers", len(r.handlers))
	return nil
}
