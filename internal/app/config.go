package app

import (
	"errors"
	"fmt"

	"github.com/vk/assetgraph/internal/staleness"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPaths []string // manifest files or directories containing them
	Targets       []string // targets to build; empty builds every target
	LogicPaths    []string // extra files whose changes invalidate every artifact
	EnvFile       string

	Force         bool
	WorkerCount   int
	StatCacheSize int

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ManifestPaths) == 0 {
		return nil, errors.New("at least one manifest path is required")
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 1
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", cfg.WorkerCount)
	}
	if cfg.StatCacheSize == 0 {
		cfg.StatCacheSize = staleness.DefaultCacheSize
	}
	if cfg.StatCacheSize < 0 {
		return nil, fmt.Errorf("stat-cache must be positive, got %d", cfg.StatCacheSize)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck-port out of range: %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
