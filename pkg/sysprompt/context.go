package sysprompt

import (
	"maps"

	"github.com/marrick66/spec-agent-skills/pkg/skills"
	tooltypes "github.com/marrick66/spec-agent-skills/pkg/types/tools"
)

// PromptContext holds the variables available to prompt templates.
type PromptContext struct {
	// CustomPrompt is placed verbatim ahead of the skills section.
	CustomPrompt string
	// Skills is the metadata-level view of every available skill.
	Skills []SkillEntry
	// ToolNames maps list, activate and read to the tool names.
	ToolNames map[string]string
	// Args holds user-supplied values for custom templates, read with
	// {{default .Args.key "fallback"}}.
	Args map[string]string
}

// SkillEntry is what a prompt may reveal about a skill before activation.
type SkillEntry struct {
	Name        string
	Description string
}

// NewPromptContext builds a context from a custom prompt and skill
// metadata.
func NewPromptContext(custom string, metas []skills.Metadata) *PromptContext {
	entries := make([]SkillEntry, 0, len(metas))
	for _, m := range metas {
		entries = append(entries, SkillEntry{Name: m.Name, Description: m.Description})
	}

	return &PromptContext{
		CustomPrompt: custom,
		Skills:       entries,
		ToolNames: map[string]string{
			"list":     tooltypes.ListSkillsToolName,
			"activate": tooltypes.ActivateSkillToolName,
			"read":     tooltypes.ReadSkillResourceToolName,
		},
		Args: map[string]string{},
	}
}

// WithArgs returns a copy of ctx whose Args are args.
func (ctx *PromptContext) WithArgs(args map[string]string) *PromptContext {
	c := *ctx
	c.Args = maps.Clone(args)
	if c.Args == nil {
		c.Args = map[string]string{}
	}
	return &c
}
