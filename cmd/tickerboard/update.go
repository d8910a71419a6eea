package main

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/joshuapare/listkit/cmd/tickerboard/logger"
)

// Update handles all messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.board.SetSize(msg.Width, max(msg.Height-headerHeight-statusHeight, 0))
		return m, nil

	case tickMsg:
		if !m.paused {
			m.feed.Tick()
			m.refresh()
		}
		// Keep the loop alive while paused so resume picks straight up.
		return m, m.tickCmd()

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.MouseMsg:
		return m, m.board.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If help is showing, any of its close keys dismisses it.
	if m.showHelp {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		logger.Info("quitting")
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleSort):
		m.order = m.order.Next()
		m.refresh()
		return m.flashStatus(fmt.Sprintf("Sorting by %s", m.order))

	case key.Matches(msg, m.keys.ReverseSort):
		m.desc = !m.desc
		m.refresh()
		return m.flashStatus("Sort direction reversed")

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if m.paused {
			return m.flashStatus("Feed paused")
		}
		return m.flashStatus("Feed resumed")

	case key.Matches(msg, m.keys.Yank):
		return m.yankVisible()
	}

	// Movement keys belong to the list.
	return m, m.board.Update(msg)
}

// yankVisible copies the rows on screen to the clipboard, styling stripped.
func (m Model) yankVisible() (tea.Model, tea.Cmd) {
	if err := clipboard.WriteAll(ansi.Strip(m.board.View())); err != nil {
		logger.Warn("clipboard write failed", "error", err)
		return m.flashStatus("Failed to copy rows")
	}
	return m.flashStatus("Visible rows copied to clipboard")
}

// flashStatus shows msg in the status bar for a couple of seconds.
func (m Model) flashStatus(msg string) (tea.Model, tea.Cmd) {
	m.statusMessage = msg
	return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
