package skills

import (
	"context"

	"github.com/marrick66/spec-agent-skills/pkg/logger"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the skills section of the application configuration.
type Config struct {
	Enabled bool     `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Dirs    []string `mapstructure:"dirs" json:"dirs" yaml:"dirs"`
	Allowed []string `mapstructure:"allowed" json:"allowed" yaml:"allowed"`
}

// ConfigFromViper reads the skills.* keys. Skills are enabled unless
// skills.enabled is false or the no_skills flag is set.
func ConfigFromViper() (Config, error) {
	cfg := Config{Enabled: true}
	if err := viper.UnmarshalKey("skills", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode skills configuration")
	}
	if viper.GetBool("no_skills") {
		cfg.Enabled = false
	}
	return cfg, nil
}

// Initialize builds a registry from the configuration. When skills are
// disabled it returns an empty registry and false.
func Initialize(ctx context.Context, cfg Config) (*FileSystemRegistry, bool, error) {
	log := logger.G(ctx)
	reg := NewRegistry(WithLogger(log))

	if !cfg.Enabled {
		log.Debug("skills are disabled")
		return reg, false, nil
	}

	opts := []DiscoveryOption{WithDiscoveryLogger(log), WithAllowlist(cfg.Allowed...)}
	if len(cfg.Dirs) > 0 {
		opts = append(opts, WithSkillDirs(cfg.Dirs...))
	} else {
		opts = append(opts, WithDefaultDirs())
	}

	discovery, err := NewDiscovery(opts...)
	if err != nil {
		return nil, false, err
	}

	loaded, err := discovery.LoadInto(reg)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to load skills")
	}

	log.WithField("count", len(loaded)).Debug("skills initialized")
	return reg, true, nil
}
