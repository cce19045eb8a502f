package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles are the colours used by the terminal surface. They degrade to plain
// text when the output is not a colour terminal.
type Styles struct {
	Box     lipgloss.Style
	Title   lipgloss.Style
	Text    lipgloss.Style
	Heading lipgloss.Style
	Success lipgloss.Style
	Danger  lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Party   lipgloss.Style
}

// NewStyles builds the palette for renderer r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Box: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 2).
			Width(40).
			Align(lipgloss.Center),
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Text:    r.NewStyle().Foreground(lipgloss.Color("15")),
		Heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Danger:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Info:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:    r.NewStyle().Bold(true),
		Party:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
	}
}

// banner renders a boxed title with an optional body line under a divider.
func (s Styles) banner(title, body string) string {
	content := s.Title.Render(title)
	if body != "" {
		content = lipgloss.JoinVertical(lipgloss.Center, content, s.Muted.Render("────────────────────────────────"), s.Text.Render(body))
	}
	return s.Box.Render(content)
}
