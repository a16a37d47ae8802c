// Package tui provides the Bubble Tea front end for dots.
// Sessions run inside a match.Runner; the UI only forwards gestures and
// renders the snapshots the runner publishes.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dots/internal/match"
)

// UpdateMsg carries a runner update into the Bubble Tea loop.
type UpdateMsg match.Update

// runnerStoppedMsg is sent when the runner's subscriber closes.
type runnerStoppedMsg struct{}

// waitForUpdate returns a command that blocks until the next update.
func waitForUpdate(sub *match.Subscriber) tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-sub.Updates():
			return UpdateMsg(u)
		case <-sub.Done():
			return runnerStoppedMsg{}
		}
	}
}
