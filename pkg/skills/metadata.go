package skills

import (
	"maps"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength          = 64
	MaxDescriptionLength   = 1024
	MaxCompatibilityLength = 500
)

// Rules reported in FieldError.Rule
const (
	ruleNameLength          = "must be 1-64 characters"
	ruleNamePattern         = "must be lowercase alphanumeric with hyphens and must not start or end with a hyphen"
	ruleNameHyphens         = "must not contain consecutive hyphens"
	ruleDescriptionLength   = "must be 1-1024 characters"
	ruleCompatibilityLength = "must be at most 500 characters"
)

var namePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Metadata is the validated frontmatter of a SKILL.md file. It is the only
// part of a skill that is always visible to the agent.
type Metadata struct {
	Name          string            `json:"name" yaml:"name"`
	Description   string            `json:"description" yaml:"description"`
	License       string            `json:"license,omitempty" yaml:"license,omitempty"`
	Compatibility string            `json:"compatibility,omitempty" yaml:"compatibility,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	AllowedTools  []string          `json:"allowed_tools,omitempty" yaml:"allowed_tools,omitempty"`
}

// RawMetadata holds the decoded frontmatter fields before validation.
type RawMetadata struct {
	Name          string            `mapstructure:"name"`
	Description   string            `mapstructure:"description"`
	License       string            `mapstructure:"license"`
	Compatibility string            `mapstructure:"compatibility"`
	Metadata      map[string]string `mapstructure:"metadata"`
	AllowedTools  []string          `mapstructure:"allowed_tools"`
}

// NewMetadata validates raw frontmatter fields and builds a Metadata.
// The name is trimmed of surrounding whitespace before validation.
func NewMetadata(raw RawMetadata) (Metadata, error) {
	name := strings.TrimSpace(raw.Name)
	if err := ValidateName(name); err != nil {
		return Metadata{}, err
	}
	if err := ValidateDescription(raw.Description); err != nil {
		return Metadata{}, err
	}
	if err := ValidateCompatibility(raw.Compatibility); err != nil {
		return Metadata{}, err
	}

	return Metadata{
		Name:          name,
		Description:   raw.Description,
		License:       raw.License,
		Compatibility: raw.Compatibility,
		Metadata:      maps.Clone(raw.Metadata),
		AllowedTools:  slices.Clone(raw.AllowedTools),
	}, nil
}

// ValidateName checks a skill name against the naming rules.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 1 || n > MaxNameLength {
		return fieldError("name", name, ruleNameLength)
	}
	if !namePattern.MatchString(name) {
		return fieldError("name", name, ruleNamePattern)
	}
	if strings.Contains(name, "--") {
		return fieldError("name", name, ruleNameHyphens)
	}
	return nil
}

// ValidateDescription requires a description of 1 to 1024 characters.
func ValidateDescription(desc string) error {
	n := utf8.RuneCountInString(desc)
	if n < 1 || n > MaxDescriptionLength {
		return fieldError("description", "", ruleDescriptionLength)
	}
	return nil
}

// ValidateCompatibility allows an empty value or up to 500 characters.
func ValidateCompatibility(compat string) error {
	if utf8.RuneCountInString(compat) > MaxCompatibilityLength {
		return fieldError("compatibility", "", ruleCompatibilityLength)
	}
	return nil
}

func (m Metadata) clone() Metadata {
	m.Metadata = maps.Clone(m.Metadata)
	m.AllowedTools = slices.Clone(m.AllowedTools)
	return m
}
