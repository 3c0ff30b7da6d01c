package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
// Rules are checked in order, so a message mentioning both a bad pattern
// and a path is reported as a pattern problem.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		rules: []categoryRule{
			{CategoryPattern, []string{
				"invalid glob pattern",
				"invalid regex pattern",
				"invalid pattern kind",
			}},
			{CategoryPermission, []string{
				"permission denied",
				"access denied",
				"operation not permitted",
			}},
			{CategoryPath, []string{
				"no such file or directory",
				"file does not exist",
				"not a directory",
				"path does not exist",
			}},
			{CategoryConnection, []string{
				"ssh connection failed",
				"sftp session creation failed",
				"connection refused",
				"connection lost",
				"no route to host",
				"handshake failed",
				"no ssh authentication methods",
			}},
			{CategoryIO, []string{
				"input/output error",
				"i/o error",
				"too many open files",
				"stale file handle",
			}},
		},
	}
}

// categoryRule maps one category to the message fragments that signal it.
type categoryRule struct {
	category ErrorCategory
	patterns []string
}

// patternMatcher is the concrete implementation of PatternMatcher.
type patternMatcher struct {
	rules []categoryRule
}

// Match returns the error category based on pattern matching.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, rule := range m.rules {
		for _, pattern := range rule.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return rule.category
			}
		}
	}

	return CategoryUnknown
}
