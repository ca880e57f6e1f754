package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes the Lip Gloss styles shared across the terminal UI. A value
// is built once per renderer and never mutated afterwards.
type Styles struct {
	Title       lipgloss.Style
	Description lipgloss.Style
	Heading     lipgloss.Style
	Back        lipgloss.Style
	Directory   lipgloss.Style
	File        lipgloss.Style
	SourceFile  lipgloss.Style
	Callable    lipgloss.Style
	Prompt      lipgloss.Style
	Continue    lipgloss.Style
	Error       lipgloss.Style
	Running     lipgloss.Style
	Success     lipgloss.Style
}

// New builds the default style set for r. A nil renderer uses the Lip Gloss
// default renderer.
func New(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Title: r.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("5")).
			Padding(0, 2),
		Description: r.NewStyle().Foreground(lipgloss.Color("2")).Underline(true),
		Heading:     r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Back:        r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Directory:   r.NewStyle(),
		File:        r.NewStyle(),
		SourceFile:  r.NewStyle().Background(lipgloss.Color("6")).Foreground(lipgloss.Color("0")),
		Callable:    r.NewStyle(),
		Prompt:      r.NewStyle().Foreground(lipgloss.Color("4")),
		Continue:    r.NewStyle().Foreground(lipgloss.Color("13")),
		Error:       r.NewStyle().Bold(true),
		Running:     r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Success:     r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	}
}
