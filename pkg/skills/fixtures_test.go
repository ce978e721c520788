package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const minimalSkillMD = `---
name: my-skill
description: A test skill for unit testing.
---

# Instructions

Do the thing step by step.
`

const fullSkillMD = `---
name: full-skill
description: A fully-featured skill with all optional fields.
license: Apache-2.0
compatibility: Requires Python 3.13+
metadata:
  author: test-org
  version: "1.0"
allowed-tools: Bash(git:*) Read
---

# Full Skill Instructions

These are detailed instructions.
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeSkill(t *testing.T, parent, dirName, skillMD string) string {
	t.Helper()
	dir := filepath.Join(parent, dirName)
	writeFile(t, filepath.Join(dir, SkillFileName), skillMD)
	return dir
}

func minimalSkill(t *testing.T, parent string) string {
	t.Helper()
	return writeSkill(t, parent, "my-skill", minimalSkillMD)
}

func fullSkill(t *testing.T, parent string) string {
	t.Helper()
	dir := writeSkill(t, parent, "full-skill", fullSkillMD)
	writeFile(t, filepath.Join(dir, "scripts", "run.sh"), "#!/bin/bash\necho hello\n")
	writeFile(t, filepath.Join(dir, "references", "REFERENCE.md"), "# Reference\n\nDetails here.\n")
	writeFile(t, filepath.Join(dir, "references", "api", "v1", "endpoints.md"), "GET /items\n")
	writeFile(t, filepath.Join(dir, "assets", "template.txt"), "Template content.\n")
	return dir
}

func skillMD(name, description string) string {
	return "---\nname: " + name + "\ndescription: " + description + "\n---\nBody for " + name + "\n"
}
