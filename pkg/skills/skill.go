// Package skills loads Agent Skills from the filesystem and serves them
// through progressive disclosure. A skill is a directory containing a
// SKILL.md file with YAML frontmatter followed by Markdown instructions,
// plus optional scripts/, references/ and assets/ directories.
//
// Only the frontmatter metadata is meant to be shown to a model up front.
// Instructions are returned on activation and resource files are read one
// at a time through the Registry, which confines every read to the
// skill's resource directories.
package skills

import "sync/atomic"

// SkillFileName is the required document at the top of a skill directory.
const SkillFileName = "SKILL.md"

// Skill is a fully parsed skill. Skills are created by ParseSkill and owned
// by the Registry that loaded them.
type Skill struct {
	Metadata     Metadata
	Instructions string
	Resources    Resources
	Path         string // absolute skill root directory

	activated atomic.Bool
}

// Name returns the skill's unique name.
func (s *Skill) Name() string {
	return s.Metadata.Name
}

// Activated reports whether the skill has been activated.
func (s *Skill) Activated() bool {
	return s.activated.Load()
}

// markActivated flips the activation flag. It never resets.
func (s *Skill) markActivated() {
	s.activated.Store(true)
}
