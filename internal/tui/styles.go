package tui

import (
	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/form"
	"taskpad/internal/task"
)

// Styles holds the lipgloss styles of the view.
type Styles struct {
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Completed lipgloss.Style
	Overdue   lipgloss.Style
	Muted     lipgloss.Style
	Label     lipgloss.Style
	Pane      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Prompt    lipgloss.Style
	Priority  map[task.Priority]lipgloss.Style
}

// NewStyles returns the default palette.
func NewStyles() *Styles {
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c0caf5")),
		Completed: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("#565f89")),
		Overdue:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")),
		Label:     lipgloss.NewStyle().Width(13).Foreground(lipgloss.Color("#a9b1d6")),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3b4261")).
			Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
		Prompt:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0af68")),
		Priority: map[task.Priority]lipgloss.Style{
			task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
			task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")),
			task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
		},
	}
}

// notice styles a notification by kind.
func (s *Styles) notice(kind form.Kind) lipgloss.Style {
	if kind == form.KindError {
		return s.Error
	}
	return s.Success
}

func (s *Styles) priority(p task.Priority) lipgloss.Style {
	if st, ok := s.Priority[p]; ok {
		return st
	}
	return s.Muted
}
