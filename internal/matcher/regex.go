package matcher

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// Exported constants.
const (
	// RegexMatchTimeout bounds one match so a pathological pattern cannot
	// stall the walk on a single name.
	RegexMatchTimeout = 100 * time.Millisecond
)

// RegexMatcher matches entry names against a .NET-style regular expression.
// The expression is unanchored: it matches if it is found anywhere in the name.
type RegexMatcher struct {
	re *regexp2.Regexp
}

// NewRegexMatcher compiles pattern.
func NewRegexMatcher(pattern string, ignoreCase bool) (*RegexMatcher, error) {
	if pattern == "" {
		return &RegexMatcher{}, nil
	}

	opts := regexp2.None
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	re.MatchTimeout = RegexMatchTimeout

	return &RegexMatcher{re: re}, nil
}

// HasPattern reports whether a non-empty pattern was given.
func (m *RegexMatcher) HasPattern() bool {
	return m.re != nil
}

// Match reports whether name matches. A match that times out counts as no match.
func (m *RegexMatcher) Match(name string) bool {
	if m.re == nil {
		return true
	}

	matched, err := m.re.MatchString(name)

	return err == nil && matched
}

// String returns the source expression.
func (m *RegexMatcher) String() string {
	if m.re == nil {
		return ""
	}

	return m.re.String()
}
