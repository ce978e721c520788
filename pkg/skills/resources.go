package skills

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// ResourceType names one of the optional resource directories of a skill.
type ResourceType string

const (
	ResourceScripts    ResourceType = "scripts"
	ResourceReferences ResourceType = "references"
	ResourceAssets     ResourceType = "assets"
)

// ResourceTypes lists the known resource types in display order.
var ResourceTypes = []ResourceType{ResourceScripts, ResourceReferences, ResourceAssets}

// ParseResourceType converts a caller-supplied string into a ResourceType.
func ParseResourceType(s string) (ResourceType, error) {
	for _, rt := range ResourceTypes {
		if string(rt) == s {
			return rt, nil
		}
	}

	names := make([]string, len(ResourceTypes))
	for i, rt := range ResourceTypes {
		names[i] = string(rt)
	}
	return "", errors.Wrapf(ErrValidation, "invalid resource type %q, must be one of: %s", s, strings.Join(names, ", "))
}

// Resources records which resource directories exist under a skill root.
// An empty path means the directory is absent.
type Resources struct {
	ScriptsDir    string `json:"scripts_dir,omitempty"`
	ReferencesDir string `json:"references_dir,omitempty"`
	AssetsDir     string `json:"assets_dir,omitempty"`
}

// DiscoverResources checks for the resource directories directly beneath
// skillDir. Only existing directories are recorded.
func DiscoverResources(skillDir string) Resources {
	var r Resources
	for _, rt := range ResourceTypes {
		dir := filepath.Join(skillDir, string(rt))
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		r.set(rt, dir)
	}
	return r
}

// Dir returns the directory for a resource type, or "" when it is absent
// or the type is unknown.
func (r Resources) Dir(rt ResourceType) string {
	switch rt {
	case ResourceScripts:
		return r.ScriptsDir
	case ResourceReferences:
		return r.ReferencesDir
	case ResourceAssets:
		return r.AssetsDir
	}
	return ""
}

func (r *Resources) set(rt ResourceType, dir string) {
	switch rt {
	case ResourceScripts:
		r.ScriptsDir = dir
	case ResourceReferences:
		r.ReferencesDir = dir
	case ResourceAssets:
		r.AssetsDir = dir
	}
}

// ListFiles returns the sorted, slash-separated paths of every file under
// the resource directory, relative to it. An absent directory yields an
// empty list.
func (r Resources) ListFiles(rt ResourceType) ([]string, error) {
	return r.ListFilesMatching(rt, "**")
}

// ListFilesMatching is ListFiles restricted to paths matching a doublestar
// pattern such as "**/*.py". Symlinked directories are not descended into,
// and every listed path resolves to a regular file inside the resource
// directory, so the listing never names a file ReadResource would refuse.
func (r Resources) ListFilesMatching(rt ResourceType, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Wrapf(ErrValidation, "invalid resource pattern %q", pattern)
	}

	dir := r.Dir(rt)
	if dir == "" {
		return []string{}, nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return []string{}, nil
	}
	base, err := canonicalPath(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s directory", rt)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern,
		doublestar.WithFilesOnly(), doublestar.WithNoFollow())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s files", rt)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if isListableFile(base, filepath.Join(dir, filepath.FromSlash(m))) {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// isListableFile reports whether path resolves to a regular file inside
// base, the canonical resource directory.
func isListableFile(base, path string) bool {
	target, err := filepath.EvalSymlinks(path)
	if err != nil || !isRegularFile(target) {
		return false
	}
	return IsWithinDir(base, target)
}
