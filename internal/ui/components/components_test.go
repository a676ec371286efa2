package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestProgressBar_FitsWidth(t *testing.T) {
	for _, pct := range []float64{-0.5, 0, 0.42, 1, 3} {
		bar := NewProgressBar("XP", pct, true, 40).View()
		if w := lipgloss.Width(bar); w != 40 {
			t.Errorf("percent %v: width = %d, want 40", pct, w)
		}
	}
}

func TestProgressBar_ClampsPercentLabel(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0.42, "42%"},
		{1.7, "100%"},
		{-1, "0%"},
	}
	for _, tt := range tests {
		got := ansi.Strip(NewProgressBar("", tt.pct, true, 30).View())
		if !strings.HasSuffix(got, tt.want) {
			t.Errorf("percent %v: %q does not end in %q", tt.pct, got, tt.want)
		}
	}
}

func TestProgressBar_MinimumBar(t *testing.T) {
	bar := NewProgressBar("a very long label indeed", 0.5, false, 5).View()
	label := lipgloss.Width("a very long label indeed  ")
	if w := lipgloss.Width(bar); w != label+4 {
		t.Errorf("width = %d, want %d", w, label+4)
	}
}

func TestContentWidth(t *testing.T) {
	tests := []struct{ in, want int }{{10, 30}, {80, 72}, {60, 54}}
	for _, tt := range tests {
		if got := ContentWidth(tt.in); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCard_ContainsTitleAndLines(t *testing.T) {
	out := ansi.Strip(Card("Titre", "ligne un", Row("Niveau", "3")))
	for _, want := range []string{"Titre", "ligne un", "Niveau", "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
}
