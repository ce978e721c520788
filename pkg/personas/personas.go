// Package personas binds named agent personas to a subset of the loaded
// skills. A persona's system prompt is its own prompt followed by the
// skills section for exactly its skills.
package personas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/marrick66/spec-agent-skills/pkg/skills"
	"github.com/marrick66/spec-agent-skills/pkg/sysprompt"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the records file used when none is configured.
const DefaultFile = "personas.json"

// Record is a persona as stored in the records file.
type Record struct {
	Name       string   `json:"name" yaml:"name"`
	SysPrompt  string   `json:"sys_prompt" yaml:"sys_prompt"`
	SkillNames []string `json:"skill_names" yaml:"skill_names"`
}

// Persona is a record resolved against a registry.
type Persona struct {
	Name      string
	SysPrompt string
	Skills    []*skills.Skill
}

// Metadata returns the metadata of the persona's skills in record order.
func (p *Persona) Metadata() []skills.Metadata {
	metas := make([]skills.Metadata, 0, len(p.Skills))
	for _, s := range p.Skills {
		metas = append(metas, s.Metadata)
	}
	return metas
}

// Repository resolves persona records against a skill registry.
type Repository struct {
	registry skills.Registry
	records  map[string]Record
	path     string
}

// NewRepository reads the records file at path. The file holds an object
// keyed by persona name; .yaml and .yml files are read as YAML, anything
// else as JSON.
func NewRepository(reg skills.Registry, path string) (*Repository, error) {
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(skills.ErrNotFound, "personas file %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read personas file %s", path)
	}

	records, err := decodeRecords(path, data)
	if err != nil {
		return nil, err
	}

	return &Repository{registry: reg, records: records, path: path}, nil
}

func decodeRecords(path string, data []byte) (map[string]Record, error) {
	records := map[string]Record{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, errors.Wrapf(skills.ErrInvalidStructure, "personas file %s: %s", path, err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, errors.Wrapf(skills.ErrInvalidStructure, "personas file %s: %s", path, err)
		}
	}

	for key, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			return nil, errors.Wrapf(skills.ErrValidation, "persona %q: name is required", key)
		}
	}
	return records, nil
}

// Names returns the persona names in sorted order.
func (r *Repository) Names() []string {
	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get resolves the named persona. An unknown persona reports false with a
// nil error. A persona naming a skill that is not loaded fails with
// skills.ErrNotFound.
func (r *Repository) Get(name string) (*Persona, bool, error) {
	rec, ok := r.records[name]
	if !ok {
		return nil, false, nil
	}

	persona := &Persona{Name: name}
	for _, skillName := range rec.SkillNames {
		skill, ok := r.registry.Get(skillName)
		if !ok {
			return nil, true, errors.Wrapf(skills.ErrNotFound, "skill %q of persona %q", skillName, name)
		}
		persona.Skills = append(persona.Skills, skill)
	}

	prompt, err := sysprompt.RenderSystemPrompt(rec.SysPrompt, persona.Metadata())
	if err != nil {
		return nil, true, errors.Wrapf(err, "failed to render system prompt for persona %q", name)
	}
	persona.SysPrompt = prompt
	return persona, true, nil
}
