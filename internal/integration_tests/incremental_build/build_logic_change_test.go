package integration_tests

import (
	"testing"
	"time"

	"github.com/vk/assetgraph/internal/app"
)

// Test for: a newer manifest makes every artifact stale.
func TestIncrementalBuild_ManifestChangeRebuildsAll(t *testing.T) {
	h, _ := newDiamond(t)
	h.AssertBuilt(h.Run(nil), diamondOutputs...)
	h.Settle(diamondOutputs...)

	h.Touch("build.hcl", time.Now().Add(time.Hour))
	h.AssertBuilt(h.Run(nil), diamondOutputs...)
}

// Test for: an extra logic path behaves like the manifest.
func TestIncrementalBuild_LogicPathChangeRebuildsAll(t *testing.T) {
	h, _ := newDiamond(t)
	h.AssertBuilt(h.Run(nil), diamondOutputs...)
	h.Settle(diamondOutputs...)

	withLogic := func(cfg *app.Config) { cfg.LogicPaths = []string{h.Path("src/common.h")} }
	h.AssertBuilt(h.Run(withLogic))

	h.Touch("src/common.h", time.Now().Add(time.Hour))
	h.AssertBuilt(h.Run(withLogic), diamondOutputs...)
}

// Test for: force rebuilds an up to date workspace.
func TestIncrementalBuild_ForceIgnoresTimestamps(t *testing.T) {
	h, _ := newDiamond(t)
	h.AssertBuilt(h.Run(func(cfg *app.Config) { cfg.Targets = []string{"all"} }), diamondOutputs...)
	h.Settle(diamondOutputs...)

	h.AssertBuilt(h.Run(func(cfg *app.Config) { cfg.Force = true }), diamondOutputs...)
}
