package skills

import (
	"maps"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseSkill parses the skill directory at path. It either returns a fully
// validated Skill or an error; no partial skill is ever produced.
func ParseSkill(path string) (*Skill, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve skill path %s", path)
	}
	if err := ValidateSkillDirectory(dir); err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	content, err := os.ReadFile(filepath.Join(dir, SkillFileName))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s in %s", SkillFileName, dir)
	}
	if !utf8.Valid(content) {
		return nil, errors.Wrapf(ErrInvalidStructure, "%s in %s is not valid UTF-8", SkillFileName, dir)
	}

	frontmatter, body, err := SplitFrontmatter(string(content))
	if err != nil {
		return nil, errors.Wrapf(err, "skill %s", dir)
	}

	raw, err := decodeRawMetadata(frontmatter)
	if err != nil {
		return nil, errors.Wrapf(err, "skill %s", dir)
	}

	metadata, err := NewMetadata(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "skill %s", dir)
	}

	if err := ValidateNameMatchesDirectory(metadata.Name, filepath.Base(dir)); err != nil {
		return nil, err
	}

	return &Skill{
		Metadata:     metadata,
		Instructions: body,
		Resources:    DiscoverResources(dir),
		Path:         dir,
	}, nil
}

// SplitFrontmatter splits SKILL.md content into its decoded YAML
// frontmatter and the trimmed Markdown body. The content must start with
// "---"; the first two delimiters separate the header from the body.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	if !strings.HasPrefix(content, frontmatterDelimiter) {
		return nil, "", errors.Wrap(ErrInvalidStructure, "SKILL.md must start with YAML frontmatter delimited by ---")
	}

	parts := strings.SplitN(content, frontmatterDelimiter, 3)
	if len(parts) < 3 {
		return nil, "", errors.Wrap(ErrInvalidStructure, "SKILL.md frontmatter must be delimited by --- on both sides")
	}

	var decoded any
	if err := yaml.Unmarshal([]byte(parts[1]), &decoded); err != nil {
		return nil, "", errors.Wrapf(ErrInvalidStructure, "SKILL.md frontmatter is not valid YAML: %s", err)
	}

	frontmatter, ok := decoded.(map[string]any)
	if !ok {
		return nil, "", errors.Wrap(ErrInvalidStructure, "SKILL.md frontmatter must be a YAML mapping")
	}

	return frontmatter, strings.TrimSpace(parts[2]), nil
}

// NormalizeAllowedTools converts the allowed-tools frontmatter value into a
// list. A string is split on whitespace and a list of strings is returned
// unchanged.
func NormalizeAllowedTools(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.Fields(v), nil
	case []string:
		return v, nil
	case []any:
		tools := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fieldError("allowed-tools", "", "must be a string or a list of strings")
			}
			tools = append(tools, s)
		}
		return tools, nil
	default:
		return nil, fieldError("allowed-tools", "", "must be a string or a list of strings")
	}
}

func decodeRawMetadata(frontmatter map[string]any) (RawMetadata, error) {
	for _, key := range []string{"name", "description"} {
		if _, ok := frontmatter[key]; !ok {
			return RawMetadata{}, fieldError(key, "", "is required")
		}
	}

	normalized := maps.Clone(frontmatter)
	if value, ok := normalized["allowed-tools"]; ok {
		delete(normalized, "allowed-tools")
		tools, err := NormalizeAllowedTools(value)
		if err != nil {
			return RawMetadata{}, err
		}
		if tools != nil {
			normalized["allowed_tools"] = tools
		}
	}

	var raw RawMetadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &raw,
		TagName: "mapstructure",
	})
	if err != nil {
		return RawMetadata{}, errors.Wrap(err, "failed to create frontmatter decoder")
	}
	if err := decoder.Decode(normalized); err != nil {
		return RawMetadata{}, errors.Wrapf(ErrValidation, "invalid frontmatter fields: %s", err)
	}

	return raw, nil
}
