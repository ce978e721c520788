package renderers

import (
	"testing"

	"github.com/marrick66/spec-agent-skills/pkg/types/tools"
	"github.com/stretchr/testify/assert"
)

func TestListSkillsRenderer(t *testing.T) {
	r := &ListSkillsRenderer{}

	out := r.RenderCLI(tools.NewStructuredResult(tools.ListSkillsToolName, "", tools.ListSkillsMetadata{
		Skills: []tools.SkillSummary{
			{Name: "pdf", Description: "PDF files"},
			{Name: "data-analysis", Description: "Analyze data"},
		},
	}))
	assert.Equal(t, "Skills: 2\n  pdf            PDF files\n  data-analysis  Analyze data", out)

	empty := r.RenderCLI(tools.NewStructuredResult(tools.ListSkillsToolName, "", tools.ListSkillsMetadata{}))
	assert.Equal(t, "No skills loaded", empty)
}

func TestActivateSkillRenderer(t *testing.T) {
	out := (&ActivateSkillRenderer{}).RenderCLI(tools.NewStructuredResult(tools.ActivateSkillToolName, "", tools.ActivateSkillMetadata{
		SkillName:    "pdf",
		Directory:    "/skills/pdf",
		Instructions: "# PDF",
		Resources:    map[string][]string{"scripts": {"a.py", "b.py"}},
	}))

	assert.Contains(t, out, "Skill 'pdf' activated from /skills/pdf")
	assert.Contains(t, out, "  scripts/ (2)\n    a.py\n    b.py\n")
	assert.NotContains(t, out, "assets/")
	assert.Contains(t, out, "\n# PDF")
}

func TestReadSkillResourceRenderer(t *testing.T) {
	out := (&ReadSkillResourceRenderer{}).RenderCLI(tools.NewStructuredResult(tools.ReadSkillResourceToolName, "", tools.ReadSkillResourceMetadata{
		SkillName:    "pdf",
		ResourceType: "scripts",
		FilePath:     "a.py",
		Content:      "print(1)\n",
		Size:         9,
	}))
	assert.Equal(t, "pdf/scripts/a.py (9 bytes)\n\nprint(1)\n", out)

	failed := (&ReadSkillResourceRenderer{}).RenderCLI(tools.NewStructuredResult(tools.ReadSkillResourceToolName, "denied", nil))
	assert.Equal(t, "Error: denied", failed)
}
