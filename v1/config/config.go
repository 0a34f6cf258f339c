// Package config loads the settings of every package from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tracerelay/v1/logger"
	"github.com/Aleph-Alpha/tracerelay/v1/metrics"
	"github.com/Aleph-Alpha/tracerelay/v1/pipeline"
	"github.com/Aleph-Alpha/tracerelay/v1/relay"
	"github.com/Aleph-Alpha/tracerelay/v1/tracer"
)

// Config holds all application configuration.
type Config struct {
	Server  pipeline.Config
	Relay   relay.Config
	Tracer  tracer.Config
	Metrics metrics.Config
	Logger  logger.Config
}

// Load reads the configuration from environment variables. Each field is
// looked up by the name in its envconfig tag, e.g. SERVER_ADDRESS or
// RELAY_TIMEOUT; unset variables take the tag's default.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Out exposes each section as its own dependency.
type Out struct {
	fx.Out

	Server  pipeline.Config
	Relay   relay.Config
	Tracer  tracer.Config
	Metrics metrics.Config
	Logger  logger.Config
}

// Sections splits cfg for the dependency injection container.
func Sections(cfg *Config) Out {
	return Out{
		Server:  cfg.Server,
		Relay:   cfg.Relay,
		Tracer:  cfg.Tracer,
		Metrics: cfg.Metrics,
		Logger:  cfg.Logger,
	}
}

// FXModule loads the configuration once and provides every section.
var FXModule = fx.Module("config",
	fx.Provide(
		Load,
		Sections,
	),
)
