package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TestHelper drives the model with synthetic messages so tests control the
// feed instead of the timer.
type TestHelper struct {
	model Model
}

// NewTestHelper builds a model over a small deterministic feed.
func NewTestHelper(rows int) *TestHelper {
	return &TestHelper{
		model: NewModel(Config{Rows: rows, FPS: 10, Seed: 1}),
	}
}

// SendKey simulates a special key press.
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	msg := tea.KeyMsg{Type: keyType}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendKeyRune simulates a character key press.
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendWindowSize simulates a window resize.
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	msg := tea.WindowSizeMsg{Width: width, Height: height}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendTick advances the feed one tick without waiting for the timer.
func (h *TestHelper) SendTick() *TestHelper {
	updated, _ := h.model.Update(tickMsg(time.Time{}))
	h.model = updated.(Model)
	return h
}

// GetModel returns the current model.
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view.
func (h *TestHelper) GetView() string {
	return h.model.View()
}
