package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameInterval paces spring animation frames.
const frameInterval = time.Second / 60

// Delay returns a command that delivers msg after d. There is no way to cancel
// it: once scheduled the message always arrives.
func Delay(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func frameTick() tea.Cmd {
	return Delay(frameInterval, frameMsg{})
}
