package executor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vk/assetgraph/internal/ctxlog"
	"github.com/vk/assetgraph/internal/graph"
	"github.com/vk/assetgraph/internal/node"
)

// task is the scheduling state of one node during a parallel run.
type task struct {
	n *node.Node
	// depCount is the number of distinct inputs that have not finished yet.
	depCount   atomic.Int32
	dependents []*task
}

// parallelRun holds the shared state of one runParallel invocation.
type parallelRun struct {
	e     *Executor
	dirty *node.Set
	force bool

	ready  chan *task
	wg     sync.WaitGroup
	cancel context.CancelFunc

	mu       sync.Mutex
	res      Result
	firstErr error
}

func (e *Executor) runParallel(ctx context.Context, g *graph.Graph, dirty *node.Set, force bool) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	order, err := g.Order()
	if err != nil {
		return &Result{}, err
	}
	tasks := buildTasks(order)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	run := &parallelRun{
		e:      e,
		dirty:  dirty,
		force:  force,
		ready:  make(chan *task, len(tasks)),
		cancel: cancel,
	}

	run.wg.Add(len(tasks))
	rootCount := 0
	for _, t := range tasks {
		if t.depCount.Load() == 0 {
			run.ready <- t
			rootCount++
		}
	}
	logger.Debug("Starting worker pool.", "workers", e.numWorkers, "nodes", len(tasks), "ready", rootCount)

	for i := 0; i < e.numWorkers; i++ {
		go run.worker(runCtx, i)
	}

	run.wg.Wait()
	close(run.ready)
	logger.Debug("Worker pool drained.", "executed", len(run.res.Executed), "skipped", run.res.Skipped)

	res := run.res
	if run.firstErr != nil {
		return &res, run.firstErr
	}
	if err := ctx.Err(); err != nil {
		return &res, fmt.Errorf("execution cancelled: %w", err)
	}
	return &res, nil
}

// buildTasks indexes the walk order and counts each node's distinct inputs.
func buildTasks(order []*node.Node) []*task {
	byID := make(map[node.ID]*task, len(order))
	tasks := make([]*task, 0, len(order))
	for _, n := range order {
		t := &task{n: n}
		byID[n.ID()] = t
		tasks = append(tasks, t)
	}
	for _, t := range tasks {
		seen := make(map[node.ID]bool)
		for _, in := range t.n.InputNodes() {
			if seen[in.ID()] {
				continue
			}
			seen[in.ID()] = true
			parent := byID[in.ID()]
			parent.dependents = append(parent.dependents, t)
			t.depCount.Add(1)
		}
	}
	return tasks
}

// worker is the core processing loop for a single concurrent worker.
func (r *parallelRun) worker(ctx context.Context, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for t := range r.ready {
		r.process(ctx, t)

		// Dependents are always released so the WaitGroup drains; once the
		// run is cancelled they are drained without executing.
		for _, dep := range t.dependents {
			if dep.depCount.Add(-1) == 0 {
				r.ready <- dep
			}
		}
		r.wg.Done()
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}

func (r *parallelRun) process(ctx context.Context, t *task) {
	n := t.n
	if ctx.Err() != nil || n.IsSource() {
		return
	}
	if !r.force && !r.dirty.Contains(n) {
		r.mu.Lock()
		r.res.Skipped++
		r.mu.Unlock()
		r.e.metrics.NodeSkipped()
		return
	}

	err := r.e.runNode(ctx, n)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		if r.firstErr == nil {
			r.firstErr = err
			r.cancel()
		}
		return
	}
	r.res.Executed = append(r.res.Executed, n.Path())
}
