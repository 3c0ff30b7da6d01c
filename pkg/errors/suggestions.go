package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryConnection:
		return g.generateConnectionSuggestions()
	case CategoryIO:
		return g.generateIOSuggestions(affectedPath)
	case CategoryPattern:
		return g.generatePatternSuggestions()
	case CategoryUnknown:
		return g.generateUnknownSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) generateConnectionSuggestions() []string {
	return []string{
		"Check that the host is reachable and the SSH port is correct",
		"Verify your SSH agent is running or a key exists in ~/.ssh",
		"Confirm the host key is present in ~/.ssh/known_hosts",
		"Try 'ssh user@host' by hand to see the full error",
	}
}

func (g *suggestionGenerator) generateIOSuggestions(path string) []string {
	suggestions := []string{
		"Try the search again - this may be a transient I/O error",
		"Check system logs for hardware or network filesystem issues",
	}

	if path != "" {
		suggestions = append(suggestions, "Check whether "+path+" is on a removable or network mount")
	}

	return suggestions
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the path exists and is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions, "Check if the path exists: "+path)
		suggestions = append(suggestions, "The directory may have been moved or removed during the search")
	} else {
		suggestions = append(suggestions, "Ensure the search root is a directory")
	}

	return suggestions
}

func (g *suggestionGenerator) generatePatternSuggestions() []string {
	return []string{
		"Check the pattern for unbalanced brackets, braces or parentheses",
		"Use --kind glob for wildcards like '*.log' and --kind regex for regular expressions",
		"Quote the pattern so your shell does not expand it",
	}
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	suggestions := []string{
		"Ensure you have read and execute permission on the directories being searched",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -ld %s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'ls -ld' on the affected path")
	}

	suggestions = append(suggestions, "Re-run with --skip-errors to continue past unreadable directories")

	return suggestions
}

func (g *suggestionGenerator) generateUnknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Verify file and directory permissions",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}
