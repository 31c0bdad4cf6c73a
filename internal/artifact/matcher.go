package artifact

import (
	"path"
	"strings"

	"depthcharge/internal/config"
)

// PathMatcher tests changed file paths against the cache-artifact naming
// convention. Patterns ending in "/" match a directory component anywhere in
// the path; other patterns glob-match the base name.
type PathMatcher struct {
	enabled  bool
	globs    []string
	dirParts []string
}

// NewPathMatcher builds a matcher from artifact configuration.
func NewPathMatcher(cfg config.ArtifactConfig) *PathMatcher {
	m := &PathMatcher{enabled: cfg.Enabled}
	for _, pattern := range cfg.PathPatterns {
		if strings.HasSuffix(pattern, "/") {
			m.dirParts = append(m.dirParts, strings.TrimSuffix(pattern, "/"))
		} else {
			m.globs = append(m.globs, pattern)
		}
	}
	return m
}

// Matches reports whether filePath follows the cache-artifact convention.
func (m *PathMatcher) Matches(filePath string) bool {
	if !m.enabled {
		return false
	}
	base := path.Base(filePath)
	for _, glob := range m.globs {
		if ok, err := path.Match(glob, base); err == nil && ok {
			return true
		}
	}
	if len(m.dirParts) > 0 {
		for _, part := range strings.Split(path.Dir(filePath), "/") {
			for _, dir := range m.dirParts {
				if part == dir {
					return true
				}
			}
		}
	}
	return false
}
