package ui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"

	"github.com/dc404/weathermap/internal/scheduler"
)

// Message types for async operations

// engineEventMsg wraps one event from the refresh engine.
type engineEventMsg struct {
	event scheduler.Event
}

// clipboardCopiedMsg is sent after the embed snippet was written to the
// system clipboard.
type clipboardCopiedMsg struct {
	err error
}

// browserOpenedMsg is sent after a URL was handed to the system browser.
type browserOpenedMsg struct {
	err error
}

// settingsSavedMsg is sent after a settings save attempt.
type settingsSavedMsg struct {
	path string
	err  error
}

// waitForEngineEvent blocks on the engine's event stream and re-delivers
// each event as a bubbletea message.
func waitForEngineEvent(events <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return engineEventMsg{event: ev}
	}
}

// copyToClipboard writes text to the system clipboard in the background.
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{err: clipboard.WriteAll(text)}
	}
}

// openInBrowser opens a URL with the system browser in the background.
func openInBrowser(url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg{err: browser.OpenURL(url)}
	}
}
