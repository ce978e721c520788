package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/marrick66/spec-agent-skills/pkg/skills"
	tooltypes "github.com/marrick66/spec-agent-skills/pkg/types/tools"
	"go.opentelemetry.io/otel/attribute"
)

// NoSkillsMessage is returned by list_skills for an empty registry.
const NoSkillsMessage = "No skills are currently loaded."

// ListSkillsTool reports the name and description of every loaded skill.
type ListSkillsTool struct {
	registry skills.Registry
}

// ListSkillsInput is empty; list_skills takes no arguments.
type ListSkillsInput struct{}

// ListSkillsResult is the metadata-level listing of a registry.
type ListSkillsResult struct {
	skills []tooltypes.SkillSummary
}

// NewListSkillsTool creates a list_skills tool over reg
func NewListSkillsTool(reg skills.Registry) *ListSkillsTool {
	return &ListSkillsTool{registry: reg}
}

func (t *ListSkillsTool) Name() string {
	return tooltypes.ListSkillsToolName
}

func (t *ListSkillsTool) Description() string {
	return `List all available agent skills with their names and descriptions.

Call this tool to discover which skills are available before activating one.
Only names and descriptions are returned; use activate_skill to load a skill's full instructions.`
}

func (t *ListSkillsTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[ListSkillsInput]()
}

// ValidateInput accepts an empty string or any JSON object.
func (t *ListSkillsTool) ValidateInput(parameters string) error {
	if strings.TrimSpace(parameters) == "" {
		return nil
	}
	var input ListSkillsInput
	return decodeInput(parameters, &input)
}

func (t *ListSkillsTool) TracingKVs(string) ([]attribute.KeyValue, error) {
	return []attribute.KeyValue{attribute.Int("skills.count", t.registry.Len())}, nil
}

func (t *ListSkillsTool) Execute(_ context.Context, _ string) tooltypes.ToolResult {
	metas := t.registry.ListMetadata()
	summaries := make([]tooltypes.SkillSummary, 0, len(metas))
	for _, m := range metas {
		summaries = append(summaries, tooltypes.SkillSummary{Name: m.Name, Description: m.Description})
	}
	return &ListSkillsResult{skills: summaries}
}

func (r *ListSkillsResult) GetResult() string {
	if len(r.skills) == 0 {
		return NoSkillsMessage
	}

	lines := make([]string, 0, len(r.skills))
	for _, s := range r.skills {
		lines = append(lines, fmt.Sprintf("- **%s**: %s", s.Name, s.Description))
	}
	return strings.Join(lines, "\n")
}

func (r *ListSkillsResult) GetError() string { return "" }

func (r *ListSkillsResult) IsError() bool { return false }

func (r *ListSkillsResult) AssistantFacing() string {
	return tooltypes.StringifyToolResult(r.GetResult(), "")
}

func (r *ListSkillsResult) StructuredData() tooltypes.StructuredToolResult {
	return tooltypes.NewStructuredResult(tooltypes.ListSkillsToolName, "", tooltypes.ListSkillsMetadata{
		Skills: r.skills,
	})
}
