package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vk/assetgraph/internal/ctxlog"
)

// minModTime is the newest modification time among the build logic: the
// manifests, the running executable and any extra logic paths. Every
// artifact older than it is considered stale.
func (a *App) minModTime(ctx context.Context, manifests []string) (time.Time, error) {
	logger := ctxlog.FromContext(ctx)

	var newest time.Time
	consider := func(path string) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if mt := info.ModTime(); mt.After(newest) {
			newest = mt
		}
		return nil
	}

	for _, path := range manifests {
		if err := consider(path); err != nil {
			return time.Time{}, fmt.Errorf("stat manifest: %w", err)
		}
	}
	for _, path := range a.config.LogicPaths {
		if err := consider(path); err != nil {
			return time.Time{}, fmt.Errorf("stat logic path: %w", err)
		}
	}
	if exe, err := os.Executable(); err == nil {
		if err := consider(exe); err != nil {
			logger.Warn("Could not stat executable, ignoring it for staleness.", "path", exe, "error", err)
		}
	}

	logger.Debug("Computed staleness baseline.", "min_mod_time", newest)
	return newest, nil
}
