// Package tui runs the game in a terminal with Bubble Tea, locally or over
// SSH. It turns key and mouse messages into input frames and draws the
// scene machine's screen buffer with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the scene machine by one frame.
type TickMsg time.Time

// tickCmd schedules the next frame at the target rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
