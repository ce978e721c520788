package skills

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/marrick66/spec-agent-skills/pkg/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Registry is the lookup interface consumers use to discover, activate and
// read skills. FileSystemRegistry is the filesystem-backed implementation.
type Registry interface {
	Load(path string) (*Skill, error)
	LoadAll(parent string) ([]*Skill, error)
	Get(name string) (*Skill, bool)
	ListMetadata() []Metadata
	Activate(name string) (string, error)
	ReadResource(name, resourceType, relPath string) (string, error)
	Contains(name string) bool
	Len() int
	Names() []string
}

// FileSystemRegistry keeps skills loaded from local directories in memory,
// keyed by name. Loading is append-only: a name can be loaded once and is
// never removed.
type FileSystemRegistry struct {
	mu     sync.RWMutex
	skills map[string]*Skill
	order  []string
	log    *logrus.Entry
}

var _ Registry = (*FileSystemRegistry)(nil)

// Option configures a FileSystemRegistry
type Option func(*FileSystemRegistry)

// WithLogger sets the logger used for load diagnostics
func WithLogger(entry *logrus.Entry) Option {
	return func(r *FileSystemRegistry) {
		r.log = entry
	}
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *FileSystemRegistry {
	r := &FileSystemRegistry{
		skills: make(map[string]*Skill),
		log:    logger.L,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load parses the skill directory at path and adds it to the registry.
// Loading a name that is already present fails with ErrConflict.
func (r *FileSystemRegistry) Load(path string) (*Skill, error) {
	skill, err := ParseSkill(path)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := skill.Name()
	if _, exists := r.skills[name]; exists {
		return nil, errors.Wrapf(ErrConflict, "skill %q is already loaded", name)
	}
	r.skills[name] = skill
	r.order = append(r.order, name)

	r.log.WithField("skill", name).WithField("path", skill.Path).Debug("loaded skill")
	return skill, nil
}

// LoadAll loads every immediate subdirectory of parent that contains a
// SKILL.md, in name order. The first failure stops the batch and is
// returned; skills loaded before it remain in the registry.
func (r *FileSystemRegistry) LoadAll(parent string) ([]*Skill, error) {
	candidates, err := CandidateDirs(parent)
	if err != nil {
		return nil, err
	}

	loaded := make([]*Skill, 0, len(candidates))
	for _, dir := range candidates {
		skill, err := r.Load(dir)
		if err != nil {
			return loaded, err
		}
		loaded = append(loaded, skill)
	}

	r.log.WithField("dir", parent).WithField("count", len(loaded)).Debug("loaded skills from directory")
	return loaded, nil
}

// Get returns the named skill.
func (r *FileSystemRegistry) Get(name string) (*Skill, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	skill, ok := r.skills[name]
	return skill, ok
}

// ListMetadata returns the metadata of every skill in load order.
func (r *FileSystemRegistry) ListMetadata() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metas := make([]Metadata, 0, len(r.order))
	for _, name := range r.order {
		metas = append(metas, r.skills[name].Metadata.clone())
	}
	return metas
}

// Activate marks the skill as activated and returns its instructions.
// Activating twice is harmless and returns the same text.
func (r *FileSystemRegistry) Activate(name string) (string, error) {
	skill, ok := r.Get(name)
	if !ok {
		return "", errors.Wrapf(ErrNotFound, "skill %q in registry", name)
	}
	skill.markActivated()
	return skill.Instructions, nil
}

// ReadResource returns the text of a file in one of the skill's resource
// directories. The path is always resolved through ResolveResourcePath.
func (r *FileSystemRegistry) ReadResource(name, resourceType, relPath string) (string, error) {
	skill, ok := r.Get(name)
	if !ok {
		return "", errors.Wrapf(ErrNotFound, "skill %q in registry", name)
	}

	path, err := ResolveResourcePath(skill, resourceType, relPath)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read resource %s", relPath)
	}
	return string(content), nil
}

// Contains reports whether a skill with the name is loaded.
func (r *FileSystemRegistry) Contains(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Len returns the number of loaded skills.
func (r *FileSystemRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.skills)
}

// Names returns the loaded skill names in load order.
func (r *FileSystemRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// CandidateDirs returns the immediate subdirectories of parent that contain
// a SKILL.md regular file, sorted by name. Symlinked directories count.
func CandidateDirs(parent string) ([]string, error) {
	root, err := filepath.Abs(parent)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve skills directory %s", parent)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "skills directory %s", root)
		}
		return nil, errors.Wrapf(err, "failed to read skills directory %s", root)
	}

	var dirs []string
	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if !isRegularFile(filepath.Join(dir, SkillFileName)) {
			continue
		}
		dirs = append(dirs, dir)
	}

	sort.Strings(dirs)
	return dirs, nil
}
