package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/marrick66/spec-agent-skills/pkg/logger"
	"github.com/marrick66/spec-agent-skills/pkg/skills"
	tooltypes "github.com/marrick66/spec-agent-skills/pkg/types/tools"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// ActivateSkillTool loads a skill's full instructions.
type ActivateSkillTool struct {
	registry skills.Registry
}

// ActivateSkillInput defines the input parameters for activate_skill
type ActivateSkillInput struct {
	SkillName string `json:"skill_name" jsonschema:"description=The name of the skill to activate (e.g. 'pdf-processing')"`
}

// ActivateSkillResult carries the instructions and the resource listing
// of an activated skill.
type ActivateSkillResult struct {
	skillName    string
	directory    string
	instructions string
	resources    map[string][]string
	err          string
}

// NewActivateSkillTool creates an activate_skill tool over reg
func NewActivateSkillTool(reg skills.Registry) *ActivateSkillTool {
	return &ActivateSkillTool{registry: reg}
}

func (t *ActivateSkillTool) Name() string {
	return tooltypes.ActivateSkillToolName
}

func (t *ActivateSkillTool) Description() string {
	return `Activate a skill and load its full instructions.

Call this after identifying a relevant skill from list_skills.
Returns the complete Markdown instructions from the skill's SKILL.md body, followed by the files available in its scripts, references and assets directories.`
}

func (t *ActivateSkillTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[ActivateSkillInput]()
}

func (t *ActivateSkillTool) ValidateInput(parameters string) error {
	var input ActivateSkillInput
	if err := decodeInput(parameters, &input); err != nil {
		return err
	}
	if input.SkillName == "" {
		return errors.New("skill_name is required")
	}
	return nil
}

func (t *ActivateSkillTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input ActivateSkillInput
	if err := decodeInput(parameters, &input); err != nil {
		return nil, err
	}
	return []attribute.KeyValue{attribute.String("skill_name", input.SkillName)}, nil
}

func (t *ActivateSkillTool) Execute(ctx context.Context, parameters string) tooltypes.ToolResult {
	var input ActivateSkillInput
	if err := decodeInput(parameters, &input); err != nil {
		return &ActivateSkillResult{err: err.Error()}
	}

	instructions, err := t.registry.Activate(input.SkillName)
	if err != nil {
		return &ActivateSkillResult{skillName: input.SkillName, err: err.Error()}
	}

	result := &ActivateSkillResult{
		skillName:    input.SkillName,
		instructions: instructions,
		resources:    map[string][]string{},
	}

	skill, ok := t.registry.Get(input.SkillName)
	if !ok {
		return result
	}
	result.directory = skill.Path

	for _, rt := range skills.ResourceTypes {
		files, err := skill.Resources.ListFiles(rt)
		if err != nil {
			logger.G(ctx).WithError(err).WithField("resource_type", rt).Warn("failed to list skill resources")
			continue
		}
		if len(files) > 0 {
			result.resources[string(rt)] = files
		}
	}
	return result
}

func (r *ActivateSkillResult) GetResult() string {
	if r.err != "" {
		return ""
	}

	var lines []string
	for _, rt := range skills.ResourceTypes {
		files := r.resources[string(rt)]
		if len(files) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", titleCase(string(rt)), strings.Join(files, ", ")))
	}

	if len(lines) == 0 {
		return r.instructions
	}
	return r.instructions + "\n\n---\nAvailable resources:\n" + strings.Join(lines, "\n")
}

func (r *ActivateSkillResult) GetError() string { return r.err }

func (r *ActivateSkillResult) IsError() bool { return r.err != "" }

func (r *ActivateSkillResult) AssistantFacing() string {
	return tooltypes.StringifyToolResult(r.GetResult(), r.err)
}

func (r *ActivateSkillResult) StructuredData() tooltypes.StructuredToolResult {
	if r.IsError() {
		return tooltypes.NewStructuredResult(tooltypes.ActivateSkillToolName, r.err, nil)
	}
	return tooltypes.NewStructuredResult(tooltypes.ActivateSkillToolName, "", tooltypes.ActivateSkillMetadata{
		SkillName:    r.skillName,
		Directory:    r.directory,
		Instructions: r.instructions,
		Resources:    r.resources,
	})
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
