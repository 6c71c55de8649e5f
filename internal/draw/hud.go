package draw

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the text styles for menus and the HUD.
type Theme struct {
	Title     lipgloss.Style
	Text      lipgloss.Style
	Dim       lipgloss.Style
	Key       lipgloss.Style
	Score     lipgloss.Style
	Health    lipgloss.Style
	HealthLow lipgloss.Style
	Notice    lipgloss.Style
	Alert     lipgloss.Style
}

// NewTheme builds styles rendered for the given output and color profile.
// Each SSH session gets its own renderer so profiles never leak between them.
func NewTheme(w io.Writer, profile termenv.Profile) *Theme {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return &Theme{
		Title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5fd7ff")),
		Text:      r.NewStyle().Foreground(lipgloss.Color("#e4e4e4")),
		Dim:       r.NewStyle().Foreground(lipgloss.Color("#808080")),
		Key:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffff5f")),
		Score:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaf00")),
		Health:    r.NewStyle().Foreground(lipgloss.Color("#5fff87")),
		HealthLow: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f5f")),
		Notice:    r.NewStyle().Italic(true).Foreground(lipgloss.Color("#87d7ff")),
		Alert: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff5f5f")).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2),
	}
}

// WriteBlock writes a possibly multi-line rendered block with its top-left
// corner at (col, row).
func (cw *ChunkWriter) WriteBlock(col, row int, block string) {
	for i, line := range strings.Split(block, "\n") {
		cw.WriteAt(col, row+i, line)
	}
}

// WriteCentered writes a block horizontally centered in an area of the given
// width, starting at row.
func (cw *ChunkWriter) WriteCentered(width, row int, block string) {
	col := max((width-lipgloss.Width(block))/2+1, 1)
	cw.WriteBlock(col, row, block)
}

// HealthBar renders health as a bar of the given width.
func (t *Theme) HealthBar(health, maxHealth, width int) string {
	filled := 0
	if maxHealth > 0 && health > 0 {
		filled = min(health*width/maxHealth, width)
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if health*4 <= maxHealth {
		return t.HealthLow.Render(bar)
	}
	return t.Health.Render(bar)
}
