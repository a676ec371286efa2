package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/learnquest/learnquest/internal/ui/theme"
)

const minBar = 4

// ProgressBar is a label, a bar of Percent (0..1) and an optional
// percentage, laid out to exactly Width cells when the label leaves room
// for at least a minimal bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	frac := min(max(p.Percent, 0), 1)

	var head, tail string
	if p.Label != "" {
		head = theme.Body.Render(p.Label) + "  "
	}
	if p.ShowPercent {
		tail = theme.Subtitle.Render(fmt.Sprintf("  %3d%%", int(frac*100)))
	}

	cells := max(p.Width-lipgloss.Width(head)-lipgloss.Width(tail), minBar)
	full := int(float64(cells) * frac)

	var sb strings.Builder
	sb.WriteString(head)
	sb.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", full)))
	sb.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", cells-full)))
	sb.WriteString(tail)
	return sb.String()
}
