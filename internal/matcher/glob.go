package matcher

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobMatcher matches entry names against a glob pattern.
type GlobMatcher struct {
	pattern    string
	ignoreCase bool
}

// NewGlobMatcher creates a GlobMatcher, rejecting malformed patterns up front
// so a typo is reported instead of silently matching nothing.
func NewGlobMatcher(pattern string, ignoreCase bool) (*GlobMatcher, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %q", pattern) //nolint:err113 // Validation with actual value
	}

	if ignoreCase {
		pattern = strings.ToLower(pattern)
	}

	return &GlobMatcher{
		pattern:    pattern,
		ignoreCase: ignoreCase,
	}, nil
}

// HasPattern reports whether a non-empty pattern was given.
func (m *GlobMatcher) HasPattern() bool {
	return m.pattern != ""
}

// Match reports whether name matches the pattern.
func (m *GlobMatcher) Match(name string) bool {
	if m.ignoreCase {
		name = strings.ToLower(name)
	}

	// Pattern was validated at construction
	matched, _ := doublestar.Match(m.pattern, name)

	return matched
}

// String returns the pattern as compiled.
func (m *GlobMatcher) String() string {
	return m.pattern
}
