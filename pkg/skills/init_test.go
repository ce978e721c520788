package skills

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromViper(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("defaults to enabled", func(t *testing.T) {
		viper.Reset()
		cfg, err := ConfigFromViper()
		require.NoError(t, err)
		assert.True(t, cfg.Enabled)
		assert.Empty(t, cfg.Dirs)
	})

	t.Run("reads dirs and allowlist", func(t *testing.T) {
		viper.Reset()
		viper.Set("skills.dirs", []string{"/a", "/b"})
		viper.Set("skills.allowed", []string{"pdf-*"})
		cfg, err := ConfigFromViper()
		require.NoError(t, err)
		assert.True(t, cfg.Enabled)
		assert.Equal(t, []string{"/a", "/b"}, cfg.Dirs)
		assert.Equal(t, []string{"pdf-*"}, cfg.Allowed)
	})

	t.Run("explicitly disabled", func(t *testing.T) {
		viper.Reset()
		viper.Set("skills.enabled", false)
		cfg, err := ConfigFromViper()
		require.NoError(t, err)
		assert.False(t, cfg.Enabled)
	})

	t.Run("no_skills overrides", func(t *testing.T) {
		viper.Reset()
		viper.Set("skills.enabled", true)
		viper.Set("no_skills", true)
		cfg, err := ConfigFromViper()
		require.NoError(t, err)
		assert.False(t, cfg.Enabled)
	})
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		reg, enabled, err := Initialize(ctx, Config{Enabled: false, Dirs: []string{t.TempDir()}})
		require.NoError(t, err)
		assert.False(t, enabled)
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("loads configured dirs", func(t *testing.T) {
		dir := t.TempDir()
		minimalSkill(t, dir)
		fullSkill(t, dir)

		reg, enabled, err := Initialize(ctx, Config{Enabled: true, Dirs: []string{dir}, Allowed: []string{"full-*"}})
		require.NoError(t, err)
		assert.True(t, enabled)
		assert.Equal(t, []string{"full-skill"}, reg.Names())
	})

	t.Run("invalid skill fails", func(t *testing.T) {
		dir := t.TempDir()
		writeSkill(t, dir, "broken", "no frontmatter here\n")

		_, _, err := Initialize(ctx, Config{Enabled: true, Dirs: []string{dir}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidStructure)
		assert.Contains(t, err.Error(), "failed to load skills")
	})

	t.Run("missing dir is not an error", func(t *testing.T) {
		reg, enabled, err := Initialize(ctx, Config{Enabled: true, Dirs: []string{filepath.Join(t.TempDir(), "missing")}})
		require.NoError(t, err)
		assert.True(t, enabled)
		assert.Equal(t, 0, reg.Len())
	})
}
