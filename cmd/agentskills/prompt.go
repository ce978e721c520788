package main

import (
	"maps"
	"os"

	"github.com/marrick66/spec-agent-skills/pkg/personas"
	"github.com/marrick66/spec-agent-skills/pkg/presenter"
	"github.com/marrick66/spec-agent-skills/pkg/skills"
	"github.com/marrick66/spec-agent-skills/pkg/sysprompt"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type PromptConfig struct {
	Custom   string
	Template string
	Args     map[string]string
}

func NewPromptConfig() *PromptConfig {
	return &PromptConfig{Args: map[string]string{}}
}

type PersonaConfig struct {
	File string
	List bool
}

func NewPersonaConfig() *PersonaConfig {
	return &PersonaConfig{File: personas.DefaultFile}
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the skills system prompt",
	Long: `Print the system prompt section that advertises the loaded skills to an agent.
Only names and descriptions are included.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getPromptConfigFromFlags(cmd)
		reg := mustLoadRegistry(cmd.Context())

		prompt, err := renderPrompt(reg, config)
		if err != nil {
			presenter.Error(err, "Failed to render system prompt")
			os.Exit(1)
		}
		if prompt == "" {
			presenter.Warning("No skills loaded, the system prompt is empty")
			return
		}
		presenter.Raw(prompt)
	},
}

var personaCmd = &cobra.Command{
	Use:   "persona [name]",
	Short: "Print a persona's system prompt",
	Long: `Print the system prompt of a persona: its own prompt followed by the skills
section for the skills it names. Personas are read from a JSON or YAML file.

Examples:
  agentskills persona --list
  agentskills persona reviewer --file personas.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getPersonaConfigFromFlags(cmd)
		reg := mustLoadRegistry(cmd.Context())

		repo, err := personas.NewRepository(reg, config.File)
		if err != nil {
			presenter.Error(err, "Failed to load personas")
			os.Exit(1)
		}

		if config.List || len(args) == 0 {
			presenter.Section("Personas")
			for _, name := range repo.Names() {
				presenter.Raw(name)
			}
			return
		}

		persona, ok, err := repo.Get(args[0])
		if err != nil {
			presenter.Error(err, "Failed to resolve persona")
			os.Exit(1)
		}
		if !ok {
			presenter.Error(errors.Errorf("persona %q not found in %s", args[0], config.File), "")
			os.Exit(1)
		}
		presenter.Raw(persona.SysPrompt)
	},
}

func init() {
	promptDefaults := NewPromptConfig()
	promptCmd.Flags().String("custom", promptDefaults.Custom, "Text placed ahead of the skills section (overrides sysprompt.custom)")
	promptCmd.Flags().String("template", promptDefaults.Template, "Path to a custom skills template (overrides sysprompt.template)")
	promptCmd.Flags().StringToString("arg", promptDefaults.Args, "Template argument as key=value, available as .Args.key (repeatable, merged over sysprompt.args)")

	personaDefaults := NewPersonaConfig()
	personaCmd.Flags().String("file", personaDefaults.File, "Personas file (overrides personas.file)")
	personaCmd.Flags().Bool("list", personaDefaults.List, "List persona names")
}

func getPromptConfigFromFlags(cmd *cobra.Command) *PromptConfig {
	config := NewPromptConfig()
	config.Custom = viper.GetString("sysprompt.custom")
	config.Template = viper.GetString("sysprompt.template")

	if cmd.Flags().Changed("custom") {
		config.Custom, _ = cmd.Flags().GetString("custom")
	}
	if cmd.Flags().Changed("template") {
		config.Template, _ = cmd.Flags().GetString("template")
	}

	maps.Copy(config.Args, viper.GetStringMapString("sysprompt.args"))
	if args, err := cmd.Flags().GetStringToString("arg"); err == nil {
		maps.Copy(config.Args, args)
	}
	return config
}

func getPersonaConfigFromFlags(cmd *cobra.Command) *PersonaConfig {
	config := NewPersonaConfig()
	if file := viper.GetString("personas.file"); file != "" {
		config.File = file
	}
	if cmd.Flags().Changed("file") {
		config.File, _ = cmd.Flags().GetString("file")
	}
	if list, err := cmd.Flags().GetBool("list"); err == nil {
		config.List = list
	}
	return config
}

// renderPrompt renders the skills prompt for reg. A template that cannot
// be loaded produces a warning and the built-in template is used instead.
func renderPrompt(reg skills.Registry, config *PromptConfig) (string, error) {
	renderer, err := sysprompt.RendererForTemplate(config.Template)
	if err != nil {
		presenter.Warning(err.Error())
	}
	ctx := sysprompt.NewPromptContext(config.Custom, reg.ListMetadata()).WithArgs(config.Args)
	return renderer.RenderSkillsPrompt(ctx)
}
