package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/marrick66/spec-agent-skills/pkg/skills"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDirs(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		root := t.TempDir()
		writeSkill(t, root, "beta", "beta", "Second skill")
		writeSkill(t, root, "alpha", "alpha", "First skill")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-skill"), 0o755))

		report, err := validateDirs([]string{root})
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "beta"}, report.Valid)
		assert.Empty(t, report.Invalid)
	})

	t.Run("reports every failure", func(t *testing.T) {
		root := t.TempDir()
		writeSkill(t, root, "good", "good", "Works")
		mismatch := writeSkill(t, root, "mismatch", "other-name", "Wrong name")
		badName := writeSkill(t, root, "Bad_Name", "Bad_Name", "Invalid name")

		report, err := validateDirs([]string{root})
		require.Error(t, err)

		assert.Equal(t, []string{"good"}, report.Valid)
		require.Len(t, report.Invalid, 2)
		assert.ErrorIs(t, report.Invalid[mismatch], skills.ErrValidation)
		assert.ErrorIs(t, report.Invalid[badName], skills.ErrValidation)

		var merr *multierror.Error
		require.True(t, errors.As(err, &merr))
		assert.Len(t, merr.Errors, 2)
	})

	t.Run("single skill directory", func(t *testing.T) {
		dir := writeSkill(t, t.TempDir(), "solo", "solo", "Alone")

		report, err := validateDirs([]string{dir})
		require.NoError(t, err)
		assert.Equal(t, []string{"solo"}, report.Valid)
	})

	t.Run("missing root", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing")

		report, err := validateDirs([]string{missing})
		require.Error(t, err)
		assert.ErrorIs(t, report.Invalid[missing], skills.ErrNotFound)
	})

	t.Run("earlier root shadows later", func(t *testing.T) {
		first, second := t.TempDir(), t.TempDir()
		writeSkill(t, first, "shared", "shared", "From first")
		writeSkill(t, second, "shared", "shared", "From second")

		report, err := validateDirs([]string{first, second})
		require.NoError(t, err)
		assert.Equal(t, []string{"shared"}, report.Valid)
	})
}
