package sysprompt

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// RendererForTemplate returns a renderer whose skills template is replaced
// by the file at templatePath. An empty path selects the embedded
// template. On error the default renderer is returned along with the
// error so callers can warn and carry on.
func RendererForTemplate(templatePath string) (*Renderer, error) {
	if strings.TrimSpace(templatePath) == "" {
		return defaultRenderer, nil
	}

	renderer, err := newRendererFromCustomTemplate(templatePath)
	if err != nil {
		return defaultRenderer, errors.Wrapf(err, "failed to load custom sysprompt %s", templatePath)
	}
	return renderer, nil
}

func newRendererFromCustomTemplate(templatePath string) (*Renderer, error) {
	resolvedPath, err := resolveCustomTemplatePath(templatePath)
	if err != nil {
		return nil, err
	}

	content, err := loadCustomTemplateContent(resolvedPath)
	if err != nil {
		return nil, err
	}

	renderer := NewRendererWithTemplateOverride(TemplateFS, map[string]string{SkillsTemplate: content})
	if renderer.parseErr != nil {
		return nil, errors.Wrapf(renderer.parseErr, "failed to parse custom sysprompt template %s", resolvedPath)
	}
	return renderer, nil
}

func resolveCustomTemplatePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("custom sysprompt path is empty")
	}
	if strings.ContainsRune(trimmed, '\x00') {
		return "", errors.New("sysprompt path contains null byte")
	}

	expanded, err := expandHomePath(trimmed)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve sysprompt path %s", trimmed)
	}
	return absPath, nil
}

func loadCustomTemplateContent(resolvedPath string) (string, error) {
	info, err := os.Stat(resolvedPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to stat custom sysprompt template %s", resolvedPath)
	}
	if !info.Mode().IsRegular() {
		return "", errors.Errorf("custom sysprompt template %s must be a regular file", resolvedPath)
	}

	content, err := os.ReadFile(resolvedPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read custom sysprompt template %s", resolvedPath)
	}
	if !utf8.Valid(content) {
		return "", errors.Errorf("custom sysprompt template %s is not valid UTF-8", resolvedPath)
	}
	return string(content), nil
}

func expandHomePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve home directory for sysprompt path")
	}

	switch {
	case path == "~":
		return homeDir, nil
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(homeDir, path[2:]), nil
	}
	return "", errors.Errorf("unsupported sysprompt path format: %s", path)
}
