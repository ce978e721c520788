package renderers

import (
	"fmt"
	"strings"

	"github.com/marrick66/spec-agent-skills/pkg/types/tools"
)

// ListSkillsRenderer renders list_skills results
type ListSkillsRenderer struct{}

func (r *ListSkillsRenderer) RenderCLI(result tools.StructuredToolResult) string {
	if !result.Success {
		return fmt.Sprintf("Error: %s", result.Error)
	}

	var meta tools.ListSkillsMetadata
	if !extractMetadata(result.Metadata, &meta) {
		return "Error: Invalid metadata type for list_skills"
	}
	if len(meta.Skills) == 0 {
		return "No skills loaded"
	}

	width := 0
	for _, s := range meta.Skills {
		width = max(width, len(s.Name))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Skills: %d\n", len(meta.Skills))
	for _, s := range meta.Skills {
		fmt.Fprintf(&sb, "  %-*s  %s\n", width, s.Name, s.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ActivateSkillRenderer renders activate_skill results
type ActivateSkillRenderer struct{}

func (r *ActivateSkillRenderer) RenderCLI(result tools.StructuredToolResult) string {
	if !result.Success {
		return fmt.Sprintf("Error: %s", result.Error)
	}

	var meta tools.ActivateSkillMetadata
	if !extractMetadata(result.Metadata, &meta) {
		return "Error: Invalid metadata type for activate_skill"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Skill '%s' activated from %s\n", meta.SkillName, meta.Directory)
	for _, rt := range []string{"scripts", "references", "assets"} {
		files := meta.Resources[rt]
		if len(files) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "  %s/ (%d)\n", rt, len(files))
		for _, f := range files {
			fmt.Fprintf(&sb, "    %s\n", f)
		}
	}
	sb.WriteString("\n")
	sb.WriteString(meta.Instructions)
	return sb.String()
}

// ReadSkillResourceRenderer renders read_skill_resource results
type ReadSkillResourceRenderer struct{}

func (r *ReadSkillResourceRenderer) RenderCLI(result tools.StructuredToolResult) string {
	if !result.Success {
		return fmt.Sprintf("Error: %s", result.Error)
	}

	var meta tools.ReadSkillResourceMetadata
	if !extractMetadata(result.Metadata, &meta) {
		return "Error: Invalid metadata type for read_skill_resource"
	}

	return fmt.Sprintf("%s/%s/%s (%d bytes)\n\n%s",
		meta.SkillName, meta.ResourceType, meta.FilePath, meta.Size, meta.Content)
}
