package sysprompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer(t *testing.T) {
	renderer := NewRenderer(TemplateFS)

	t.Run("templates are pre-parsed", func(t *testing.T) {
		require.NoError(t, renderer.parseErr)
		assert.NotNil(t, renderer.templates.Lookup(SkillsTemplate))
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := renderer.RenderPrompt("templates/missing.tmpl", NewPromptContext("", nil))
		assert.EqualError(t, err, "template templates/missing.tmpl not found")
	})

	t.Run("include and default functions", func(t *testing.T) {
		r := NewRendererWithTemplateOverride(TemplateFS, map[string]string{
			"templates/outer.tmpl": `{{default .Args.project "fallback"}}|{{include "templates/inner.tmpl" .}}`,
			"templates/inner.tmpl": `{{xml .CustomPrompt}}`,
		})
		out, err := r.RenderPrompt("templates/outer.tmpl", NewPromptContext("a<b", nil))
		require.NoError(t, err)
		assert.Equal(t, "fallback|a&lt;b", out)
	})

	t.Run("default with a supplied argument", func(t *testing.T) {
		r := NewRendererWithTemplateOverride(TemplateFS, map[string]string{
			"templates/outer.tmpl": `{{default .Args.project "fallback"}}/{{default .Args.blank "empty"}}`,
		})
		ctx := NewPromptContext("", nil).WithArgs(map[string]string{"project": "atlas", "blank": "  "})
		out, err := r.RenderPrompt("templates/outer.tmpl", ctx)
		require.NoError(t, err)
		assert.Equal(t, "atlas/empty", out)
	})

	t.Run("parse error surfaces on render", func(t *testing.T) {
		r := NewRendererWithTemplateOverride(TemplateFS, map[string]string{SkillsTemplate: "{{ .Broken"})
		_, err := r.RenderPrompt(SkillsTemplate, NewPromptContext("", nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize templates")
	})

	t.Run("templates outside templates/ are ignored", func(t *testing.T) {
		fsys := fstest.MapFS{
			"templates/a.tmpl": {Data: []byte("A")},
			"other/b.tmpl":     {Data: []byte("B")},
			"templates/c.txt":  {Data: []byte("C")},
		}
		paths, err := collectTemplatePaths(fsys, "templates")
		require.NoError(t, err)
		assert.Equal(t, []string{"templates/a.tmpl"}, paths)
	})
}

func TestRendererForTemplate(t *testing.T) {
	metas := NewPromptContext("", nil)
	metas.Skills = []SkillEntry{{Name: "pdf", Description: "PDFs"}}

	t.Run("empty path uses embedded template", func(t *testing.T) {
		r, err := RendererForTemplate("  ")
		require.NoError(t, err)
		assert.Same(t, defaultRenderer, r)
	})

	t.Run("custom template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "skills.tmpl")
		require.NoError(t, os.WriteFile(path, []byte(`{{range .Skills}}* {{.Name}}{{end}}`), 0o644))

		r, err := RendererForTemplate(path)
		require.NoError(t, err)
		out, err := r.RenderSkillsPrompt(metas)
		require.NoError(t, err)
		assert.Equal(t, "* pdf", out)
	})

	t.Run("missing file falls back", func(t *testing.T) {
		r, err := RendererForTemplate("/no/such/file.tmpl")
		require.Error(t, err)
		require.NotNil(t, r)

		out, err := r.RenderSkillsPrompt(metas)
		require.NoError(t, err)
		assert.Contains(t, out, "<available_skills>")
	})

	t.Run("invalid template falls back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.tmpl")
		require.NoError(t, os.WriteFile(path, []byte(`{{if}}`), 0o644))

		r, err := RendererForTemplate(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse custom sysprompt template")
		assert.Same(t, defaultRenderer, r)
	})

	t.Run("directory is rejected", func(t *testing.T) {
		_, err := RendererForTemplate(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be a regular file")
	})
}

func TestResolveCustomTemplatePath(t *testing.T) {
	path, err := resolveCustomTemplatePath("./test.tmpl")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.True(t, strings.HasSuffix(path, "test.tmpl"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	path, err = resolveCustomTemplatePath("~/sysprompt.tmpl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sysprompt.tmpl"), path)

	_, err = resolveCustomTemplatePath("~other/x.tmpl")
	assert.Error(t, err)

	_, err = resolveCustomTemplatePath("a\x00b")
	assert.EqualError(t, err, "sysprompt path contains null byte")
}

func TestDefaultValue(t *testing.T) {
	assert.Equal(t, "fb", defaultValue(nil, "fb"))
	assert.Equal(t, "fb", defaultValue("", "fb"))
	assert.Equal(t, "fb", defaultValue(" \t", "fb"))
	assert.Equal(t, "v", defaultValue("v", "fb"))
	assert.Equal(t, "3", defaultValue(3, "fb"))
}

func TestPromptContextWithArgs(t *testing.T) {
	ctx := NewPromptContext("custom", nil)
	args := map[string]string{"team": "infra"}

	withArgs := ctx.WithArgs(args)
	args["team"] = "changed"

	assert.Equal(t, "infra", withArgs.Args["team"])
	assert.Empty(t, ctx.Args)
	assert.Equal(t, "custom", withArgs.CustomPrompt)
	assert.NotNil(t, ctx.WithArgs(nil).Args)
}
