// Package errors provides actionable error handling with context-aware suggestions.
//
// This package enriches traversal errors with categorization and actionable
// suggestions so a user whose search stopped on a directory can see why and
// what to try next. It detects the error type (permission, missing path,
// remote connection, I/O, bad pattern) and offers guidance for that category.
//
// Basic Usage:
//
//	enricher := errors.NewEnricher()
//	if err := enum.Err(); err != nil {
//	    enriched := enricher.Enrich(err, "")
//	    fmt.Fprintln(os.Stderr, enriched)
//	    fmt.Fprintln(os.Stderr, errors.FormatSuggestions(enriched))
//	}
//
// Enriched errors keep the original in their chain, so errors.Is and
// errors.As still see it.
package errors

import (
	"errors"
	"strings"
)

// Exported constants.
const (
	CategoryConnection ErrorCategory = "connection"
	CategoryIO         ErrorCategory = "io"
	CategoryPath       ErrorCategory = "path"
	CategoryPattern    ErrorCategory = "pattern"
	CategoryPermission ErrorCategory = "permission"
	CategoryUnknown    ErrorCategory = "unknown"
)

// ActionableError represents an error with actionable suggestions for the user.
type ActionableError interface {
	error
	Unwrap() error
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// NewActionableError creates a new ActionableError wrapping err.
func NewActionableError(
	err error,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		err:          err,
		category:     category,
		suggestions:  suggestions,
		affectedPath: affectedPath,
	}
}

// ErrorCategory represents the type of error that occurred.
type ErrorCategory string

// FormatSuggestions formats the suggestions from an ActionableError as a bulleted list
// for display. Returns empty string if the error is nil or has no suggestions.
func FormatSuggestions(err error) string {
	if err == nil {
		return ""
	}

	var actionable ActionableError
	if !errors.As(err, &actionable) {
		return ""
	}

	suggestions := actionable.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, suggestion := range suggestions {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// actionableError is the concrete implementation of ActionableError.
type actionableError struct {
	err          error
	category     ErrorCategory
	suggestions  []string
	affectedPath string
}

// AffectedPath returns the file path affected by this error.
func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *actionableError) Category() ErrorCategory {
	return e.category
}

// Error implements the error interface.
func (e *actionableError) Error() string {
	return e.err.Error()
}

// Suggestions returns the list of actionable suggestions.
func (e *actionableError) Suggestions() []string {
	return e.suggestions
}

// Unwrap returns the original error.
func (e *actionableError) Unwrap() error {
	return e.err
}
