package sysprompt

import (
	"fmt"
	"io/fs"
	"slices"
	"sort"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// Renderer renders the embedded prompt templates, optionally with some of
// them overridden.
type Renderer struct {
	templates *template.Template
	parseErr  error
}

var defaultRenderer = NewRenderer(TemplateFS)

// NewRenderer parses every .tmpl file under templates/ in fsys.
func NewRenderer(fsys fs.FS) *Renderer {
	return NewRendererWithTemplateOverride(fsys, nil)
}

// NewRendererWithTemplateOverride creates a renderer with custom template
// overrides keyed by template path (e.g. templates/skills.tmpl). Paths not
// present in fsys are added as new templates.
func NewRendererWithTemplateOverride(fsys fs.FS, overrides map[string]string) *Renderer {
	r := &Renderer{}
	r.templates, r.parseErr = parseTemplates(fsys, overrides)
	return r
}

// RenderPrompt renders a named template with the provided context
func (r *Renderer) RenderPrompt(name string, ctx *PromptContext) (string, error) {
	if r.parseErr != nil {
		return "", errors.Wrap(r.parseErr, "failed to initialize templates")
	}
	if r.templates.Lookup(name) == nil {
		return "", errors.Errorf("template %s not found", name)
	}

	var buf strings.Builder
	if err := r.templates.ExecuteTemplate(&buf, name, ctx); err != nil {
		return "", errors.Wrapf(err, "failed to execute template %s", name)
	}
	return buf.String(), nil
}

// xmlEscaper escapes the characters that would break an XML text node.
var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func parseTemplates(templateFS fs.FS, overrides map[string]string) (*template.Template, error) {
	paths, err := collectTemplatePaths(templateFS, "templates")
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect template paths")
	}

	templates := template.New("templates")
	var self *template.Template
	templates = templates.Funcs(template.FuncMap{
		"include": func(name string, data any) (string, error) {
			var buf strings.Builder
			err := self.ExecuteTemplate(&buf, name, data)
			return buf.String(), err
		},
		"xml": xmlEscaper.Replace,
		"default": defaultValue,
	})
	self = templates

	for _, path := range paths {
		content, ok := overrides[path]
		if !ok {
			b, err := fs.ReadFile(templateFS, path)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read template file %s", path)
			}
			content = string(b)
		}
		if _, err := templates.New(path).Parse(content); err != nil {
			return nil, errors.Wrapf(err, "failed to parse template %s", path)
		}
	}

	for path, content := range overrides {
		if slices.Contains(paths, path) {
			continue
		}
		if _, err := templates.New(path).Parse(content); err != nil {
			return nil, errors.Wrapf(err, "failed to parse override template %s", path)
		}
	}

	return templates, nil
}

func collectTemplatePaths(templateFS fs.FS, dir string) ([]string, error) {
	if _, err := fs.Stat(templateFS, dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	err := fs.WalkDir(templateFS, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// defaultValue returns fallback when value is missing, nil or blank. A
// missing map key reaches template funcs as nil, so value must be any.
func defaultValue(value any, fallback string) string {
	if value == nil {
		return fallback
	}
	s := fmt.Sprint(value)
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
