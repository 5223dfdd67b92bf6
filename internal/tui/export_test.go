package tui

import tea "github.com/charmbracelet/bubbletea"

// DismissMsg builds the tick message scheduled by Notify.
func DismissMsg(seq int) tea.Msg {
	return dismissMsg{seq: seq}
}
