package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrontmatter(t *testing.T) {
	t.Run("valid frontmatter", func(t *testing.T) {
		fm, body, err := SplitFrontmatter("---\nname: test\n---\nBody content.")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "test"}, fm)
		assert.Equal(t, "Body content.", body)
	})

	t.Run("empty body", func(t *testing.T) {
		fm, body, err := SplitFrontmatter("---\nname: test\n---\n")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "test"}, fm)
		assert.Equal(t, "", body)
	})

	t.Run("missing opening delimiter", func(t *testing.T) {
		_, _, err := SplitFrontmatter("name: test\n---\nBody")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStructure))
		assert.Contains(t, err.Error(), "must start with")
	})

	t.Run("missing closing delimiter", func(t *testing.T) {
		_, _, err := SplitFrontmatter("---\nname: test\n")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStructure))
		assert.Contains(t, err.Error(), "delimited by ---")
	})

	t.Run("sequence frontmatter", func(t *testing.T) {
		_, _, err := SplitFrontmatter("---\n- item1\n- item2\n---\nBody")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStructure))
		assert.Contains(t, err.Error(), "YAML mapping")
	})

	t.Run("empty frontmatter", func(t *testing.T) {
		_, _, err := SplitFrontmatter("---\n---\nBody")
		assert.True(t, errors.Is(err, ErrInvalidStructure))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, _, err := SplitFrontmatter("---\nname: [unclosed\n---\nBody")
		assert.True(t, errors.Is(err, ErrInvalidStructure))
	})
}

func TestNormalizeAllowedTools(t *testing.T) {
	tools, err := NormalizeAllowedTools("Bash(git:*) Read")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bash(git:*)", "Read"}, tools)

	tools, err = NormalizeAllowedTools([]any{"Bash(git:*)", "Read"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bash(git:*)", "Read"}, tools)

	tools, err = NormalizeAllowedTools(nil)
	require.NoError(t, err)
	assert.Nil(t, tools)

	_, err = NormalizeAllowedTools([]any{"Read", 3})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = NormalizeAllowedTools(42)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestParseSkill(t *testing.T) {
	t.Run("minimal skill", func(t *testing.T) {
		dir := minimalSkill(t, t.TempDir())

		skill, err := ParseSkill(dir)
		require.NoError(t, err)
		assert.Equal(t, "my-skill", skill.Metadata.Name)
		assert.Equal(t, "A test skill for unit testing.", skill.Metadata.Description)
		assert.Equal(t, "# Instructions\n\nDo the thing step by step.", skill.Instructions)
		assert.False(t, skill.Activated())
		assert.True(t, filepath.IsAbs(skill.Path))
		assert.Equal(t, "my-skill", filepath.Base(skill.Path))
	})

	t.Run("full skill", func(t *testing.T) {
		skill, err := ParseSkill(fullSkill(t, t.TempDir()))
		require.NoError(t, err)
		assert.Equal(t, "full-skill", skill.Metadata.Name)
		assert.Equal(t, "Apache-2.0", skill.Metadata.License)
		assert.Equal(t, "Requires Python 3.13+", skill.Metadata.Compatibility)
		assert.Equal(t, map[string]string{"author": "test-org", "version": "1.0"}, skill.Metadata.Metadata)
		assert.Equal(t, []string{"Bash(git:*)", "Read"}, skill.Metadata.AllowedTools)
	})

	t.Run("allowed-tools as a list", func(t *testing.T) {
		content := "---\nname: list-tools\ndescription: d\nallowed-tools:\n  - Bash(git:*)\n  - Read\n---\nBody\n"
		dir := writeSkill(t, t.TempDir(), "list-tools", content)

		skill, err := ParseSkill(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"Bash(git:*)", "Read"}, skill.Metadata.AllowedTools)
	})

	t.Run("relative path is made absolute", func(t *testing.T) {
		parent := t.TempDir()
		minimalSkill(t, parent)
		t.Chdir(parent)

		skill, err := ParseSkill("my-skill")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(skill.Path))
	})

	t.Run("resource discovery", func(t *testing.T) {
		skill, err := ParseSkill(fullSkill(t, t.TempDir()))
		require.NoError(t, err)
		assert.NotEmpty(t, skill.Resources.ScriptsDir)
		assert.NotEmpty(t, skill.Resources.ReferencesDir)
		assert.NotEmpty(t, skill.Resources.AssetsDir)
	})

	t.Run("no resources", func(t *testing.T) {
		skill, err := ParseSkill(minimalSkill(t, t.TempDir()))
		require.NoError(t, err)
		assert.Equal(t, Resources{}, skill.Resources)
	})

	t.Run("resource path that is a file is ignored", func(t *testing.T) {
		dir := minimalSkill(t, t.TempDir())
		writeFile(t, filepath.Join(dir, "scripts"), "not a directory")

		skill, err := ParseSkill(dir)
		require.NoError(t, err)
		assert.Empty(t, skill.Resources.ScriptsDir)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := ParseSkill(filepath.Join(t.TempDir(), "nonexistent"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("missing SKILL.md", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "empty")
		require.NoError(t, os.Mkdir(dir, 0o755))

		_, err := ParseSkill(dir)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Contains(t, err.Error(), SkillFileName)
	})

	t.Run("name directory mismatch", func(t *testing.T) {
		dir := writeSkill(t, t.TempDir(), "wrong-name", "---\nname: correct-name\ndescription: Test.\n---\nBody\n")

		_, err := ParseSkill(dir)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Contains(t, err.Error(), "must match directory name")
		assert.Contains(t, err.Error(), "correct-name")
		assert.Contains(t, err.Error(), "wrong-name")
	})

	t.Run("missing required field", func(t *testing.T) {
		dir := writeSkill(t, t.TempDir(), "no-desc", "---\nname: no-desc\n---\nBody\n")

		_, err := ParseSkill(dir)
		require.Error(t, err)
		var fieldErr *FieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "description", fieldErr.Field)
		assert.Equal(t, "is required", fieldErr.Rule)
	})

	t.Run("invalid name", func(t *testing.T) {
		dir := writeSkill(t, t.TempDir(), "Bad-Skill", skillMD("Bad-Skill", "d"))

		_, err := ParseSkill(dir)
		var fieldErr *FieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "name", fieldErr.Field)
		assert.Equal(t, ruleNamePattern, fieldErr.Rule)
	})

	t.Run("metadata values must be strings", func(t *testing.T) {
		content := "---\nname: bad-meta\ndescription: d\nmetadata:\n  nested:\n    deep: true\n---\nBody\n"
		dir := writeSkill(t, t.TempDir(), "bad-meta", content)

		_, err := ParseSkill(dir)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("malformed document", func(t *testing.T) {
		dir := writeSkill(t, t.TempDir(), "no-frontmatter", "# Just markdown\n")

		_, err := ParseSkill(dir)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStructure))
	})

	t.Run("path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		writeFile(t, file, "hi")

		_, err := ParseSkill(file)
		assert.True(t, errors.Is(err, ErrNotDirectory))
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		content := "---\nname: bad-bytes\ndescription: d\n---\nBody \xff\xfe\n"
		dir := writeSkill(t, t.TempDir(), "bad-bytes", content)

		_, err := ParseSkill(dir)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStructure))
		assert.Contains(t, err.Error(), "not valid UTF-8")
	})
}
