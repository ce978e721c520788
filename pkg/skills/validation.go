package skills

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ValidateSkillDirectory checks that dir exists, is a directory and holds
// a SKILL.md regular file at its top level.
func ValidateSkillDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotFound, "skill directory %s", dir)
		}
		return errors.Wrapf(err, "failed to stat skill directory %s", dir)
	}
	if !info.IsDir() {
		return errors.Wrapf(ErrNotDirectory, "skill path %s", dir)
	}

	if !isRegularFile(filepath.Join(dir, SkillFileName)) {
		return errors.Wrapf(ErrNotFound, "%s in %s", SkillFileName, dir)
	}
	return nil
}

// ValidateNameMatchesDirectory requires the declared name to equal the
// directory's base name exactly.
func ValidateNameMatchesDirectory(name, dirName string) error {
	if name != dirName {
		return errors.Wrapf(ErrValidation, "skill name %q must match directory name %q", name, dirName)
	}
	return nil
}

// ResolveResourcePath resolves relPath inside the skill's resourceType
// directory and returns the canonical path of the file. Any path whose
// canonical form is not strictly inside the canonical resource directory
// is rejected with ErrSecurityViolation, whether or not it exists.
func ResolveResourcePath(skill *Skill, resourceType, relPath string) (string, error) {
	rt, err := ParseResourceType(resourceType)
	if err != nil {
		return "", err
	}

	dir := skill.Resources.Dir(rt)
	if dir == "" {
		return "", errors.Wrapf(ErrNotFound, "skill %q has no %s/ directory", skill.Metadata.Name, rt)
	}
	if relPath == "" {
		return "", errors.Wrapf(ErrNotFound, "empty resource path in %s/ of skill %q", rt, skill.Metadata.Name)
	}

	base, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", errors.Wrapf(ErrNotFound, "%s/ directory of skill %q", rt, skill.Metadata.Name)
	}
	if base, err = filepath.Abs(base); err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", dir)
	}

	if filepath.IsAbs(relPath) {
		return "", errors.Wrapf(ErrSecurityViolation, "path traversal detected: %s", relPath)
	}

	target, err := canonicalPath(base + string(filepath.Separator) + relPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve resource path %s", relPath)
	}
	if !IsWithinDir(base, target) {
		return "", errors.Wrapf(ErrSecurityViolation, "path traversal detected: %s", relPath)
	}

	if !isRegularFile(target) {
		return "", errors.Wrapf(ErrNotFound, "resource file %s", relPath)
	}
	return target, nil
}

// IsWithinDir reports whether target lies strictly below base, comparing
// path components rather than raw string prefixes. Both paths should be
// canonical.
func IsWithinDir(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}

// canonicalPath resolves symlinks and dot segments. When the path does not
// exist the deepest existing ancestor is resolved and the remainder is
// joined lexically.
func canonicalPath(p string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return filepath.Abs(resolved)
	}

	clean := filepath.Clean(p)
	parent := filepath.Dir(clean)
	if parent == clean {
		return clean, nil
	}

	resolvedParent, err := canonicalPath(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(clean)), nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
