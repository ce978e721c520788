// Package sysprompt renders the skills section of an agent system prompt.
// Only skill names and descriptions are rendered; instructions and
// resources stay behind the skill tools.
package sysprompt

import (
	"github.com/marrick66/spec-agent-skills/pkg/skills"
)

// RenderSystemPrompt renders custom followed by the skills usage
// instructions and an <available_skills> block listing metas. Names and
// descriptions are XML-escaped. With no skills the result is empty.
func RenderSystemPrompt(custom string, metas []skills.Metadata) (string, error) {
	return defaultRenderer.RenderSkillsPrompt(NewPromptContext(custom, metas))
}

// RenderSkillsPrompt renders the skills template. It returns "" when the
// context lists no skills.
func (r *Renderer) RenderSkillsPrompt(ctx *PromptContext) (string, error) {
	if len(ctx.Skills) == 0 {
		return "", nil
	}
	return r.RenderPrompt(SkillsTemplate, ctx)
}

// ForRegistry renders the system prompt for every skill in reg, in load
// order.
func ForRegistry(reg skills.Registry, custom string) (string, error) {
	return RenderSystemPrompt(custom, reg.ListMetadata())
}
