// Package components holds the small lipgloss building blocks the CLI
// views are assembled from.
package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/learnquest/learnquest/internal/ui/theme"
)

// ContentWidth clamps a terminal width to the width cards are drawn at.
func ContentWidth(termWidth int) int {
	// Leave room for the card border (2) and padding (4).
	return min(max(termWidth-6, 30), 72)
}

// Card wraps lines under a title in a rounded border sized to its content.
func Card(title string, lines ...string) string {
	body := strings.Join(lines, "\n")
	if title != "" {
		body = theme.Title.Render(title) + "\n" + body
	}
	return theme.Card.Render(body)
}

// Row renders a label/value pair.
func Row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, theme.Label.Render(label), theme.Value.Render(value))
}
