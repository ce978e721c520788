package main

import (
	"context"
	"fmt"
	"os"

	"github.com/marrick66/spec-agent-skills/pkg/logger"
	"github.com/marrick66/spec-agent-skills/pkg/presenter"
	"github.com/marrick66/spec-agent-skills/pkg/skills"
	"github.com/marrick66/spec-agent-skills/pkg/telemetry"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("AGENTSKILLS")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.agentskills")
	viper.AddConfigPath(".")

	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "fmt")
	viper.SetDefault("personas.file", "personas.json")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "agentskills",
	Short: "Load, validate and serve Agent Skills",
	Long: `agentskills discovers skill directories (a SKILL.md with YAML frontmatter plus
optional scripts/, references/ and assets/), validates them and serves them to
agents through progressive disclosure: metadata up front, instructions on
activation, and resource files on demand.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := logger.Configure(viper.GetString("log_level"), viper.GetString("log_format")); err != nil {
			return err
		}

		ctx := logger.WithFields(cmd.Context(), logrus.Fields{"command": cmd.CommandPath()})
		shutdown, err := initTracing(ctx)
		if err != nil {
			logger.G(ctx).WithError(err).Warn("failed to initialize tracing")
		} else {
			tracingShutdown = shutdown
		}
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		if tracingShutdown == nil {
			return
		}
		if err := tracingShutdown(context.WithoutCancel(cmd.Context())); err != nil {
			logger.G(cmd.Context()).WithError(err).Warn("failed to shut down tracing")
		}
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var tracingShutdown func(context.Context) error

// loadRegistry builds the registry from the skills.* configuration and the
// --skills-dir override.
func loadRegistry(ctx context.Context) (*skills.FileSystemRegistry, error) {
	cfg, err := skills.ConfigFromViper()
	if err != nil {
		return nil, err
	}
	if dirs := viper.GetStringSlice("skills_dir"); len(dirs) > 0 {
		cfg.Dirs = dirs
	}

	var (
		reg     *skills.FileSystemRegistry
		enabled bool
	)
	err = telemetry.WithSpan(ctx, "skills.initialize", func(ctx context.Context) error {
		var err error
		if reg, enabled, err = skills.Initialize(ctx, cfg); err != nil {
			return err
		}
		telemetry.SetAttributes(ctx,
			attribute.Bool("skills.enabled", enabled),
			attribute.Int("skills.count", reg.Len()),
		)
		return nil
	}, attribute.StringSlice("skills.dirs", cfg.Dirs))
	if err != nil {
		return nil, err
	}
	if !enabled {
		presenter.Warning("Skills are disabled")
	}
	return reg, nil
}

// mustLoadRegistry is loadRegistry for commands that cannot run without
// skills.
func mustLoadRegistry(ctx context.Context) *skills.FileSystemRegistry {
	reg, err := loadRegistry(ctx)
	if err != nil {
		presenter.Error(err, "Failed to load skills")
		os.Exit(1)
	}
	return reg
}

// configuredDirs returns the skill roots the registry would search.
func configuredDirs() ([]string, error) {
	if dirs := viper.GetStringSlice("skills_dir"); len(dirs) > 0 {
		return dirs, nil
	}
	cfg, err := skills.ConfigFromViper()
	if err != nil {
		return nil, err
	}
	if len(cfg.Dirs) > 0 {
		return cfg.Dirs, nil
	}
	dirs, err := skills.DefaultSkillDirs()
	if err != nil {
		return nil, errors.Wrap(err, "failed to determine default skill directories")
	}
	return dirs, nil
}

func main() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt or json)")
	rootCmd.PersistentFlags().Bool("no-skills", false, "Disable skill loading")
	rootCmd.PersistentFlags().StringSlice("skills-dir", nil, "Skill root directory to search (repeatable, overrides skills.dirs)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("no_skills", rootCmd.PersistentFlags().Lookup("no-skills"))
	viper.BindPFlag("skills_dir", rootCmd.PersistentFlags().Lookup("skills-dir"))

	rootCmd.AddCommand(withTracing(listCmd))
	rootCmd.AddCommand(withTracing(showCmd))
	rootCmd.AddCommand(withTracing(readCmd))
	rootCmd.AddCommand(withTracing(promptCmd))
	rootCmd.AddCommand(withTracing(personaCmd))
	rootCmd.AddCommand(withTracing(validateCmd))
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
