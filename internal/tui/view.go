package tui

import (
	"fmt"
	"strings"

	pkgerrors "github.com/joe/find-files/pkg/errors"
)

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle().Render("🔍 Searching " + m.finder.Root))
	b.WriteString("\n")

	switch m.state {
	case StateOpening:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(LabelStyle().Render("Opening search root..."))
	case StateSearching, StateStopping:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(LabelStyle().Render(fmt.Sprintf("Found %d", m.count)))
	case StateComplete:
		b.WriteString(SuccessStyle().Render(fmt.Sprintf("✓ Found %d", m.count)))
	case StateStopped:
		b.WriteString(WarningStyle().Render(fmt.Sprintf("Stopped after %d", m.count)))
	case StateError:
		b.WriteString(ErrorStyle().Render(fmt.Sprintf("✗ Search failed after %d", m.count)))
	}

	b.WriteString("\n\n")

	for _, entry := range m.recent {
		b.WriteString(RenderEntry(entry.Path, entry.IsDir))
		b.WriteString("\n")
	}

	if len(m.skipped) > 0 {
		last := m.skipped[len(m.skipped)-1]
		b.WriteString("\n")
		b.WriteString(WarningStyle().Render(fmt.Sprintf("⚠ Skipped %d unreadable directories", len(m.skipped))))
		b.WriteString("\n")
		b.WriteString(DimStyle().Render(fmt.Sprintf("  last: %s (%v)", last.Path, last.Err)))
		b.WriteString("\n")
	}

	if m.state == StateError && m.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle().Render(m.err.Error()))
		b.WriteString("\n")

		if suggestions := pkgerrors.FormatSuggestions(m.err); suggestions != "" {
			b.WriteString(suggestions)
			b.WriteString("\n")
		}
	}

	if m.summary != nil && m.state == StateComplete {
		b.WriteString("\n")
		b.WriteString(DimStyle().Render(fmt.Sprintf("Took %v", m.summary.Duration.Round(timeRounding))))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if m.state == StateSearching || m.state == StateOpening {
		b.WriteString(DimStyle().Render("q: stop search"))
	} else {
		b.WriteString(DimStyle().Render("q: quit"))
	}

	return BoxStyle().Render(b.String())
}
