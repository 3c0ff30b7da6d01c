// Package matcher compiles search patterns into name matchers.
package matcher

import (
	"fmt"
	"strings"

	"github.com/joe/find-files/internal/search"
)

// Kind selects the pattern syntax.
type Kind int

const (
	// Glob - shell-style wildcards with ** and {a,b} support
	Glob Kind = iota
	// Regex - .NET-compatible regular expressions
	Regex
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "glob", "":
		return Glob, nil
	case "regex", "re", "regexp":
		return Regex, nil
	default:
		return Glob, fmt.Errorf("invalid pattern kind: %s (valid: glob, regex)", s) //nolint:err113 // Validation with actual value
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// New compiles pattern into a search.Matcher. An empty pattern yields a
// matcher with no pattern, which the engine never consults.
func New(pattern string, kind Kind, ignoreCase bool) (search.Matcher, error) {
	switch kind {
	case Glob:
		m, err := NewGlobMatcher(pattern, ignoreCase)
		if err != nil {
			return nil, err
		}

		return m, nil
	case Regex:
		m, err := NewRegexMatcher(pattern, ignoreCase)
		if err != nil {
			return nil, err
		}

		return m, nil
	default:
		return nil, fmt.Errorf("unsupported pattern kind %d", kind) //nolint:err113 // Programming error with actual value
	}
}
