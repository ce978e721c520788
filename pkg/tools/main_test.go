package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marrick66/spec-agent-skills/pkg/skills"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newTestRegistry loads two skills: pdf-processing with resources and
// notes without any.
func newTestRegistry(t *testing.T) *skills.FileSystemRegistry {
	t.Helper()
	parent := t.TempDir()

	pdf := filepath.Join(parent, "pdf-processing")
	writeFile(t, filepath.Join(pdf, skills.SkillFileName), `---
name: pdf-processing
description: Extract text and tables from PDF files.
---
# PDF Processing

Run scripts/extract.py on the input file.
`)
	writeFile(t, filepath.Join(pdf, "scripts", "extract.py"), "print('extract')\n")
	writeFile(t, filepath.Join(pdf, "scripts", "merge.py"), "print('merge')\n")
	writeFile(t, filepath.Join(pdf, "references", "forms", "FORMS.md"), "# Forms\n")

	notes := filepath.Join(parent, "notes")
	writeFile(t, filepath.Join(notes, skills.SkillFileName), `---
name: notes
description: Take <structured> notes & summaries.
---
Write notes.
`)

	reg := skills.NewRegistry()
	_, err := reg.LoadAll(parent)
	require.NoError(t, err)
	return reg
}
