package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/marrick66/spec-agent-skills/pkg/presenter"
	"github.com/marrick66/spec-agent-skills/pkg/skills"
	"github.com/marrick66/spec-agent-skills/pkg/tools"
	tooltypes "github.com/marrick66/spec-agent-skills/pkg/types/tools"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type ShowConfig struct {
	Outline bool
}

func NewShowConfig() *ShowConfig {
	return &ShowConfig{Outline: false}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded skills",
	Long:  `List the name and description of every skill found in the configured skill directories.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		reg := mustLoadRegistry(ctx)
		exitOnToolError(runSkillTool(ctx, reg, tooltypes.ListSkillsToolName, nil))
	},
}

var showCmd = &cobra.Command{
	Use:   "show <skill-name>",
	Short: "Activate a skill and print its instructions",
	Long: `Activate a skill and print its instructions followed by its resource files.

Examples:
  agentskills show pdf-processing
  agentskills show pdf-processing --outline`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := getShowConfigFromFlags(cmd)
		reg := mustLoadRegistry(ctx)

		if config.Outline {
			if err := printOutline(reg, args[0]); err != nil {
				presenter.Error(err, "Failed to outline skill")
				os.Exit(1)
			}
			return
		}

		exitOnToolError(runSkillTool(ctx, reg, tooltypes.ActivateSkillToolName, map[string]any{
			"skill_name": args[0],
		}))
	},
}

var readCmd = &cobra.Command{
	Use:   "read <skill-name> <scripts|references|assets> <path>",
	Short: "Print a resource file of a skill",
	Long: `Print a file from one of a skill's resource directories. Paths are relative to
the resource directory and may not escape it.

Examples:
  agentskills read pdf-processing scripts extract.py
  agentskills read pdf-processing references forms/FORMS.md`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		reg := mustLoadRegistry(ctx)
		exitOnToolError(runSkillTool(ctx, reg, tooltypes.ReadSkillResourceToolName, map[string]any{
			"skill_name":    args[0],
			"resource_type": args[1],
			"file_path":     args[2],
		}))
	},
}

func init() {
	defaults := NewShowConfig()
	showCmd.Flags().Bool("outline", defaults.Outline, "Print only the headings of the instructions")
}

func getShowConfigFromFlags(cmd *cobra.Command) *ShowConfig {
	config := NewShowConfig()
	if outline, err := cmd.Flags().GetBool("outline"); err == nil {
		config.Outline = outline
	}
	return config
}

// runSkillTool runs one of the skill tools against reg and prints its
// structured result. It reports whether the tool failed.
func runSkillTool(ctx context.Context, reg skills.Registry, name string, input map[string]any) bool {
	params := "{}"
	if input != nil {
		b, err := json.Marshal(input)
		if err != nil {
			presenter.Error(err, "Failed to encode tool input")
			return true
		}
		params = string(b)
	}

	result := tools.RunTool(ctx, tools.ForRegistry(reg), name, params)
	presenter.ToolResult(result.StructuredData())
	return result.IsError()
}

func exitOnToolError(failed bool) {
	if failed {
		os.Exit(1)
	}
}

// printOutline prints the heading tree of a skill's instructions without
// activating it.
func printOutline(reg skills.Registry, name string) error {
	skill, ok := reg.Get(name)
	if !ok {
		return errors.Wrapf(skills.ErrNotFound, "skill %q in registry", name)
	}

	presenter.Section(skill.Name())
	headings := skill.Outline()
	if len(headings) == 0 {
		presenter.Info("(no headings)")
		return nil
	}
	for _, h := range headings {
		presenter.Raw(fmt.Sprintf("%s%s", strings.Repeat("  ", h.Level-1), h.Text))
	}
	return nil
}
