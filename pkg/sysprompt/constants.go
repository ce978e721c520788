package sysprompt

import "embed"

//go:embed templates/*
var TemplateFS embed.FS

// SkillsTemplate is the embedded template for the skills section of a
// system prompt.
const SkillsTemplate = "templates/skills.tmpl"
