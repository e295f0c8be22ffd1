package app

import (
	"github.com/vk/assetgraph/internal/registry"
	"github.com/vk/assetgraph/modules/concat"
	"github.com/vk/assetgraph/modules/copy"
	"github.com/vk/assetgraph/modules/exec"
)

// coreModules returns the action modules compiled into the assetgraph
// binary. The exec module is returned separately because its command table
// is only known once the manifest has been planned.
func coreModules() (*exec.Module, []registry.Module) {
	execModule := &exec.Module{}
	return execModule, []registry.Module{
		execModule,
		&concat.Module{},
		&copy.Module{},
	}
}
