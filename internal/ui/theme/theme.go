// Package theme holds the terminal palette and styles shared by every
// learnquest command.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/learnquest/learnquest/internal/progress"
	"github.com/learnquest/learnquest/internal/skilltree"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Gold      = lipgloss.Color("#FACC15")
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Domain colors, one per tree/building.
var domainColors = map[progress.Domain]color.Color{
	progress.DomainAnglais:      lipgloss.Color("#38BDF8"),
	progress.DomainWebDev:       lipgloss.Color("#A3E635"),
	progress.DomainAI:           lipgloss.Color("#C084FC"),
	progress.DomainConduite:     lipgloss.Color("#FB923C"),
	progress.DomainBibliotheque: lipgloss.Color("#FBBF24"),
	progress.DomainHorlogerie:   lipgloss.Color("#F472B6"),
}

// DomainColor returns the accent color of d, Primary for an unknown domain.
func DomainColor(d progress.Domain) color.Color {
	if c, ok := domainColors[d]; ok {
		return c
	}
	return Primary
}

// Domain renders a domain label in its color.
func Domain(d progress.Domain) string {
	return lipgloss.NewStyle().Foreground(DomainColor(d)).Bold(true).Render(string(d))
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(14)

	Value = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	Coins = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary).
		MarginTop(1)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Done = lipgloss.NewStyle().
		Foreground(TextDim).
		Strikethrough(true)
)

// Node status styles.
var (
	NodeUnlocked  = lipgloss.NewStyle().Foreground(Success).Bold(true)
	NodeAvailable = lipgloss.NewStyle().Foreground(Gold)
	NodeLocked    = lipgloss.NewStyle().Foreground(TextDim)
)

// NodeStatus returns the style of a skill-tree node status.
func NodeStatus(s skilltree.Status) lipgloss.Style {
	switch s {
	case skilltree.StatusUnlocked:
		return NodeUnlocked
	case skilltree.StatusAvailable:
		return NodeAvailable
	default:
		return NodeLocked
	}
}

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
