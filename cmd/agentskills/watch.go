package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/marrick66/spec-agent-skills/pkg/logger"
	"github.com/marrick66/spec-agent-skills/pkg/presenter"
	"github.com/marrick66/spec-agent-skills/pkg/skills"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type WatchConfig struct {
	Debounce time.Duration
}

func NewWatchConfig() *WatchConfig {
	return &WatchConfig{Debounce: 300 * time.Millisecond}
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir...]",
	Short: "Re-validate skills whenever they change",
	Long: `Watch skill roots and every skill directory inside them, re-running validation
after each burst of changes. Runs until interrupted with Ctrl+C.`,
	Run: func(cmd *cobra.Command, args []string) {
		config := getWatchConfigFromFlags(cmd)

		dirs := args
		if len(dirs) == 0 {
			var err error
			if dirs, err = configuredDirs(); err != nil {
				presenter.Error(err, "Failed to determine skill directories")
				os.Exit(1)
			}
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		revalidate := func() {
			presenter.Separator()
			report, _ := validateDirs(dirs)
			presenter.Validation(report)
		}
		revalidate()

		presenter.Info("Watching for changes, press Ctrl+C to stop")
		if err := watchSkills(ctx, dirs, config.Debounce, revalidate); err != nil {
			presenter.Error(err, "Watch failed")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewWatchConfig()
	watchCmd.Flags().Duration("debounce", defaults.Debounce, "Quiet period before re-validating after a change")
}

func getWatchConfigFromFlags(cmd *cobra.Command) *WatchConfig {
	config := NewWatchConfig()
	if debounce, err := cmd.Flags().GetDuration("debounce"); err == nil && debounce > 0 {
		config.Debounce = debounce
	}
	return config
}

// watchSkills calls onChange once per burst of filesystem events under
// dirs, waiting for debounce of quiet first. It returns when ctx is done.
// fsnotify is not recursive, so each root and each skill directory in it
// is watched, and newly created directories are added as they appear.
func watchSkills(ctx context.Context, dirs []string, debounce time.Duration, onChange func()) error {
	log := logger.G(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			log.WithError(err).WithField("dir", dir).Debug("cannot watch directory, skipping")
			continue
		}
		watched++

		candidates, err := skills.CandidateDirs(dir)
		if err != nil {
			continue
		}
		for _, c := range candidates {
			if err := watcher.Add(c); err != nil {
				log.WithError(err).WithField("dir", c).Debug("cannot watch skill directory")
			}
		}
	}
	if watched == 0 {
		return errors.New("none of the skill directories can be watched")
	}

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			log.WithField("event", event.String()).Debug("skill file changed")
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("file watcher error")
		case <-timer.C:
			onChange()
		}
	}
}
