package main

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/marrick66/spec-agent-skills/pkg/presenter"
	"github.com/marrick66/spec-agent-skills/pkg/skills"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir...]",
	Short: "Validate skill directories",
	Long: `Validate skill directories and report every problem found. Each argument may be
a single skill directory (containing SKILL.md) or a root holding several skills.
Without arguments the configured skill roots are validated.

Unlike loading, validation does not stop at the first bad skill.`,
	Run: func(cmd *cobra.Command, args []string) {
		dirs := args
		if len(dirs) == 0 {
			var err error
			if dirs, err = configuredDirs(); err != nil {
				presenter.Error(err, "Failed to determine skill directories")
				os.Exit(1)
			}
		}

		report, err := validateDirs(dirs)
		presenter.Validation(report)
		if err != nil {
			os.Exit(1)
		}
	},
}

// validateDirs parses every skill under dirs and collects all failures.
// Names loaded from an earlier root shadow the same name in later roots,
// as in discovery, so duplicates are not reported as errors.
func validateDirs(dirs []string) (presenter.ValidationReport, error) {
	report := presenter.ValidationReport{Invalid: map[string]error{}}
	seen := map[string]bool{}
	var result *multierror.Error

	fail := func(key string, err error) {
		report.Invalid[key] = err
		result = multierror.Append(result, errors.Wrap(err, key))
	}

	for _, dir := range dirs {
		candidates, err := validationCandidates(dir)
		if err != nil {
			fail(dir, err)
			continue
		}

		for _, candidate := range candidates {
			skill, err := skills.ParseSkill(candidate)
			if err != nil {
				fail(candidate, err)
				continue
			}
			if seen[skill.Name()] {
				continue
			}
			seen[skill.Name()] = true
			report.Valid = append(report.Valid, skill.Name())
		}
	}

	return report, result.ErrorOrNil()
}

// validationCandidates treats dir as a single skill when it holds a
// SKILL.md, and as a skill root otherwise.
func validationCandidates(dir string) ([]string, error) {
	if _, err := os.Stat(filepath.Join(dir, skills.SkillFileName)); err == nil {
		return []string{dir}, nil
	}
	return skills.CandidateDirs(dir)
}
