package tools

import (
	"context"

	"github.com/invopop/jsonschema"
	"github.com/marrick66/spec-agent-skills/pkg/skills"
	tooltypes "github.com/marrick66/spec-agent-skills/pkg/types/tools"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// ReadSkillResourceTool returns the contents of a single resource file.
type ReadSkillResourceTool struct {
	registry skills.Registry
}

// ReadSkillResourceInput defines the input parameters for read_skill_resource
type ReadSkillResourceInput struct {
	SkillName    string `json:"skill_name" jsonschema:"description=Name of the skill (e.g. 'pdf-processing')"`
	ResourceType string `json:"resource_type" jsonschema:"description=Type of resource directory,enum=scripts,enum=references,enum=assets"`
	FilePath     string `json:"file_path" jsonschema:"description=Relative path to the file within the resource directory"`
}

// ReadSkillResourceResult holds the file contents or the failure.
type ReadSkillResourceResult struct {
	input   ReadSkillResourceInput
	content string
	err     string
}

// NewReadSkillResourceTool creates a read_skill_resource tool over reg
func NewReadSkillResourceTool(reg skills.Registry) *ReadSkillResourceTool {
	return &ReadSkillResourceTool{registry: reg}
}

func (t *ReadSkillResourceTool) Name() string {
	return tooltypes.ReadSkillResourceToolName
}

func (t *ReadSkillResourceTool) Description() string {
	return `Read a resource file from a skill.

Use this to load scripts, reference docs, or assets from a skill's optional directories after activating it.
- resource_type is one of: scripts, references, assets
- file_path is relative to that directory, e.g. "api/v1/endpoints.md"
Paths that leave the resource directory are rejected.`
}

func (t *ReadSkillResourceTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[ReadSkillResourceInput]()
}

func (t *ReadSkillResourceTool) ValidateInput(parameters string) error {
	var input ReadSkillResourceInput
	if err := decodeInput(parameters, &input); err != nil {
		return err
	}
	switch {
	case input.SkillName == "":
		return errors.New("skill_name is required")
	case input.ResourceType == "":
		return errors.New("resource_type is required")
	case input.FilePath == "":
		return errors.New("file_path is required")
	}
	return nil
}

func (t *ReadSkillResourceTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input ReadSkillResourceInput
	if err := decodeInput(parameters, &input); err != nil {
		return nil, err
	}
	return []attribute.KeyValue{
		attribute.String("skill_name", input.SkillName),
		attribute.String("resource_type", input.ResourceType),
		attribute.String("file_path", input.FilePath),
	}, nil
}

func (t *ReadSkillResourceTool) Execute(_ context.Context, parameters string) tooltypes.ToolResult {
	var input ReadSkillResourceInput
	if err := decodeInput(parameters, &input); err != nil {
		return &ReadSkillResourceResult{err: err.Error()}
	}

	content, err := t.registry.ReadResource(input.SkillName, input.ResourceType, input.FilePath)
	if err != nil {
		return &ReadSkillResourceResult{input: input, err: err.Error()}
	}
	return &ReadSkillResourceResult{input: input, content: content}
}

func (r *ReadSkillResourceResult) GetResult() string { return r.content }

func (r *ReadSkillResourceResult) GetError() string { return r.err }

func (r *ReadSkillResourceResult) IsError() bool { return r.err != "" }

func (r *ReadSkillResourceResult) AssistantFacing() string {
	return tooltypes.StringifyToolResult(r.content, r.err)
}

func (r *ReadSkillResourceResult) StructuredData() tooltypes.StructuredToolResult {
	if r.IsError() {
		return tooltypes.NewStructuredResult(tooltypes.ReadSkillResourceToolName, r.err, nil)
	}
	return tooltypes.NewStructuredResult(tooltypes.ReadSkillResourceToolName, "", tooltypes.ReadSkillResourceMetadata{
		SkillName:    r.input.SkillName,
		ResourceType: r.input.ResourceType,
		FilePath:     r.input.FilePath,
		Content:      r.content,
		Size:         len(r.content),
	})
}
