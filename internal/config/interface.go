package config

import "context"

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads the given manifest files and translates them into the
	// format-agnostic model. Declarations keep file order, then source order.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
