package app

import (
	"context"
	"fmt"

	"github.com/vk/assetgraph/internal/ctxlog"
	"github.com/vk/assetgraph/internal/executor"
	"github.com/vk/assetgraph/internal/staleness"
)

// Run performs one incremental build: it plans the graph from the manifests,
// finds the stale artifacts and executes their actions in dependency order.
func (a *App) Run(ctx context.Context) (res *executor.Result, err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer()
		defer func() { _ = a.closeHealthCheckServer() }()
	}
	defer func() { a.metrics.RunFinished(err) }()

	plan, manifests, err := a.plan(ctx)
	if err != nil {
		return nil, err
	}
	a.execModule.Commands = plan

	if err := a.registry.Validate(ctx, plan.Graph); err != nil {
		return nil, err
	}
	a.logger.Debug("Registry validation passed.")

	minModTime, err := a.minModTime(ctx, manifests)
	if err != nil {
		return nil, err
	}

	analyzer := staleness.New(staleness.WithCacheSize(a.config.StatCacheSize))
	dirty, err := analyzer.FindDirtyNodes(ctx, plan.Graph.Roots(), minModTime)
	if err != nil {
		return nil, fmt.Errorf("staleness analysis failed: %w", err)
	}
	a.metrics.SetDirty(dirty.Len())

	if dirty.Len() == 0 && !a.config.Force {
		a.logger.Info("✅ Everything is up to date.", "nodes", plan.Arena.Len())
		return &executor.Result{}, nil
	}

	a.logger.Info("🚀 Starting build.", "dirty", dirty.Len(), "force", a.config.Force, "workers", a.config.WorkerCount)
	exec := executor.New(a.registry,
		executor.WithWorkers(a.config.WorkerCount),
		executor.WithMetrics(a.metrics),
	)
	res, err = exec.Execute(ctx, plan.Graph, dirty, a.config.Force)
	if err != nil {
		return res, fmt.Errorf("execution failed: %w", err)
	}

	a.logger.Info("🏁 Build finished.", "built", len(res.Executed), "up_to_date", res.Skipped)
	a.logger.Debug("App.Run method finished.")
	return res, nil
}
