// Package renderers turns structured skill tool results into text for the
// terminal.
package renderers

import (
	"fmt"

	"github.com/marrick66/spec-agent-skills/pkg/types/tools"
)

// CLIRenderer renders one kind of structured tool result.
type CLIRenderer interface {
	RenderCLI(result tools.StructuredToolResult) string
}

// RendererRegistry maps tool names to renderers.
type RendererRegistry struct {
	renderers map[string]CLIRenderer
}

// NewRendererRegistry creates a registry with the skill tool renderers
// registered.
func NewRendererRegistry() *RendererRegistry {
	registry := &RendererRegistry{renderers: make(map[string]CLIRenderer)}

	registry.Register(tools.ListSkillsToolName, &ListSkillsRenderer{})
	registry.Register(tools.ActivateSkillToolName, &ActivateSkillRenderer{})
	registry.Register(tools.ReadSkillResourceToolName, &ReadSkillResourceRenderer{})

	return registry
}

// Register adds a renderer for a specific tool name
func (r *RendererRegistry) Register(toolName string, renderer CLIRenderer) {
	r.renderers[toolName] = renderer
}

// Render finds the renderer for the result's tool and renders the result.
func (r *RendererRegistry) Render(result tools.StructuredToolResult) string {
	if renderer, ok := r.renderers[result.ToolName]; ok {
		return renderer.RenderCLI(result)
	}
	return r.renderFallback(result)
}

func (r *RendererRegistry) renderFallback(result tools.StructuredToolResult) string {
	if !result.Success {
		return fmt.Sprintf("Error (%s): %s", result.ToolName, result.Error)
	}
	return fmt.Sprintf("Tool Result (%s):\nSuccess: %v\nTimestamp: %s",
		result.ToolName, result.Success, result.Timestamp.Format("2006-01-02 15:04:05"))
}
