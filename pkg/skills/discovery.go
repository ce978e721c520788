package skills

import (
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/marrick66/spec-agent-skills/pkg/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Discovery loads skills from several root directories into a registry.
// Roots are searched in order and the first root to provide a name wins,
// so repo-local skills shadow user-global ones.
type Discovery struct {
	skillDirs []string
	allowed   []glob.Glob
	log       *logrus.Entry
}

// DiscoveryOption is a function that configures a Discovery
type DiscoveryOption func(*Discovery) error

// WithSkillDirs sets custom skill directories
func WithSkillDirs(dirs ...string) DiscoveryOption {
	return func(d *Discovery) error {
		d.skillDirs = dirs
		return nil
	}
}

// WithDefaultDirs searches ./.agentskills/skills and then
// ~/.agentskills/skills
func WithDefaultDirs() DiscoveryOption {
	return func(d *Discovery) error {
		dirs, err := DefaultSkillDirs()
		if err != nil {
			return err
		}
		d.skillDirs = dirs
		return nil
	}
}

// WithAllowlist restricts discovery to skills whose names match at least one
// of the glob patterns. An empty list allows everything.
func WithAllowlist(patterns ...string) DiscoveryOption {
	return func(d *Discovery) error {
		for _, p := range patterns {
			g, err := glob.Compile(p)
			if err != nil {
				return errors.Wrapf(err, "invalid skill allowlist pattern %q", p)
			}
			d.allowed = append(d.allowed, g)
		}
		return nil
	}
}

// WithDiscoveryLogger sets the logger used to report skipped roots and
// shadowed skills
func WithDiscoveryLogger(entry *logrus.Entry) DiscoveryOption {
	return func(d *Discovery) error {
		d.log = entry
		return nil
	}
}

// DefaultSkillDirs returns the repo-local and user-global skill roots.
func DefaultSkillDirs() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user home directory")
	}
	return []string{
		"./.agentskills/skills",
		filepath.Join(homeDir, ".agentskills", "skills"),
	}, nil
}

// NewDiscovery creates a new skill discovery instance. Without options the
// default directories are used.
func NewDiscovery(opts ...DiscoveryOption) (*Discovery, error) {
	d := &Discovery{log: logger.L}

	if len(opts) == 0 {
		opts = []DiscoveryOption{WithDefaultDirs()}
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// SkillDirs returns the configured roots in search order.
func (d *Discovery) SkillDirs() []string {
	return append([]string(nil), d.skillDirs...)
}

// Allowed reports whether a skill name passes the allowlist.
func (d *Discovery) Allowed(name string) bool {
	if len(d.allowed) == 0 {
		return true
	}
	for _, g := range d.allowed {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// LoadInto loads every allowed skill from the configured roots into reg.
// Missing roots are skipped. A skill that fails to parse aborts the call.
func (d *Discovery) LoadInto(reg Registry) ([]*Skill, error) {
	var loaded []*Skill

	for _, root := range d.skillDirs {
		candidates, err := CandidateDirs(root)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				d.log.WithField("dir", root).Debug("skills directory does not exist, skipping")
				continue
			}
			return loaded, err
		}

		for _, dir := range candidates {
			name := filepath.Base(dir)
			if !d.Allowed(name) {
				continue
			}
			if reg.Contains(name) {
				d.log.WithField("skill", name).WithField("dir", dir).Debug("skill shadowed by an earlier directory")
				continue
			}

			skill, err := reg.Load(dir)
			if err != nil {
				return loaded, err
			}
			loaded = append(loaded, skill)
		}
	}

	return loaded, nil
}
