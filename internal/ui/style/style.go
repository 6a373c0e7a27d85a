// Package style holds the colors, icons and lipgloss styles shared by the
// console renderer, the logger and the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Cyan    = lipgloss.Color("#0EA5E9")
	Magenta = lipgloss.Color("#C026D3")
	Slate   = lipgloss.Color("#667085")
	Green   = lipgloss.Color("#22A06B")
	Red     = lipgloss.Color("#D93025")
	Yellow  = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Bullet  = "•"
)

// Styles bundles the lipgloss styles bound to one renderer, so that color
// detection follows the writer the styles end up in.
type Styles struct {
	Task     lipgloss.Style
	Kind     lipgloss.Style
	Muted    lipgloss.Style
	Duration lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style
}

// New builds the styles for r.
func New(r *lipgloss.Renderer) Styles {
	return Styles{
		Task:     r.NewStyle().Foreground(Cyan),
		Kind:     r.NewStyle().Foreground(Slate).Width(9),
		Muted:    r.NewStyle().Foreground(Slate),
		Duration: r.NewStyle().Foreground(Magenta),
		Success:  r.NewStyle().Foreground(Green),
		Failure:  r.NewStyle().Foreground(Red).Bold(true),
	}
}
