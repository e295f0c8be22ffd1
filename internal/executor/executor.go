package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/assetgraph/internal/ctxlog"
	"github.com/vk/assetgraph/internal/graph"
	"github.com/vk/assetgraph/internal/metrics"
	"github.com/vk/assetgraph/internal/node"
	"github.com/vk/assetgraph/internal/registry"
)

// Executor invokes registry handlers for dirty nodes in dependency order.
type Executor struct {
	registry   *registry.Registry
	metrics    *metrics.Metrics
	numWorkers int
}

// Option configures an Executor.
type Option func(*Executor)

// WithWorkers sets the size of the worker pool. Values below 2 select the
// serial executor.
func WithWorkers(n int) Option {
	return func(e *Executor) { e.numWorkers = n }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Executor) { e.metrics = m }
}

// New creates an executor backed by the given action table.
func New(reg *registry.Registry, opts ...Option) *Executor {
	e := &Executor{registry: reg, numWorkers: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result summarizes one execution pass.
type Result struct {
	// Executed lists the artifact paths whose action ran, in completion order.
	Executed []string
	// Skipped counts derived nodes left alone because they were clean.
	Skipped int
}

// Execute runs the action of every node in dirty, or of every derived node
// when force is set. Source nodes are never executed.
//
// The first failure is returned as an *ActionExecutionError and ends the
// run; the returned Result still describes the work done before it.
func (e *Executor) Execute(ctx context.Context, g *graph.Graph, dirty *node.Set, force bool) (*Result, error) {
	if e.numWorkers > 1 {
		return e.runParallel(ctx, g, dirty, force)
	}
	return e.runSerial(ctx, g, dirty, force)
}

func (e *Executor) runSerial(ctx context.Context, g *graph.Graph, dirty *node.Set, force bool) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Serial execution started.", "force", force, "dirty", dirty.Len())

	res := &Result{}
	for n, err := range g.Walk() {
		if err != nil {
			return res, err
		}
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("execution cancelled: %w", err)
		}
		if n.IsSource() {
			continue
		}
		if !force && !dirty.Contains(n) {
			logger.Debug("Skipping clean node.", "path", n.Path())
			res.Skipped++
			e.metrics.NodeSkipped()
			continue
		}
		if err := e.runNode(ctx, n); err != nil {
			return res, err
		}
		res.Executed = append(res.Executed, n.Path())
	}

	logger.Debug("Serial execution finished.", "executed", len(res.Executed), "skipped", res.Skipped)
	return res, nil
}

// runNode prepares the output directory and invokes the node's handler.
func (e *Executor) runNode(ctx context.Context, n *node.Node) (err error) {
	logger := ctxlog.FromContext(ctx).With("path", n.Path(), "action", n.Action().String())

	handler, ok := e.registry.Lookup(n.Action())
	if !ok {
		return &ActionExecutionError{Path: n.Path(), Action: n.Action(), Err: ErrNoHandler}
	}

	if err := os.MkdirAll(filepath.Dir(n.Path()), 0o755); err != nil {
		return &ActionExecutionError{Path: n.Path(), Action: n.Action(), Err: fmt.Errorf("creating output directory: %w", err)}
	}

	logger.Info("▶️ Building artifact")
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &ActionExecutionError{Path: n.Path(), Action: n.Action(), Err: fmt.Errorf("handler panicked: %v", r)}
		}
		e.metrics.ObserveAction(n.Action().String(), time.Since(start), err)
		if err != nil {
			logger.Error("Action failed.", "error", err)
			return
		}
		logger.Info("✅ Artifact built", "duration", time.Since(start))
	}()

	if err := handler.Run(ctx, n); err != nil {
		return &ActionExecutionError{Path: n.Path(), Action: n.Action(), Err: err}
	}
	return nil
}
