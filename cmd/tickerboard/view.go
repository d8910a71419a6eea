package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/listkit/cmd/tickerboard/market"
)

// Column layout
const (
	symbolColWidth = 6
	priceColWidth  = 10
	changeColWidth = 8
	volumeColWidth = 12
	gutterWidth    = 2
)

func nameColWidth(width int) int {
	w := width - gutterWidth - symbolColWidth - priceColWidth - changeColWidth - volumeColWidth - 4
	if w < 1 {
		w = 1
	}
	return w
}

// renderQuote renders one board row. It always produces a single line, so
// cursor styling never changes the row's height.
func renderQuote(_ int, q market.Quote, cursor bool, width int) string {
	nameW := nameColWidth(width)
	sym := fmt.Sprintf("%-*s", symbolColWidth, truncate(q.Symbol, symbolColWidth))
	name := fmt.Sprintf("%-*s", nameW, truncate(q.Name, nameW))
	price := fmt.Sprintf("%*.2f", priceColWidth, q.Price)
	change := fmt.Sprintf("%+*.2f%%", changeColWidth-1, q.Change)
	volume := fmt.Sprintf("%*d", volumeColWidth, q.Volume)

	if cursor {
		return selectedRowStyle.Render(
			fmt.Sprintf("▸ %s %s %s %s %s", sym, name, price, change, volume))
	}

	changeCol := change
	switch {
	case q.Change > 0:
		changeCol = gainStyle.Render(change)
	case q.Change < 0:
		changeCol = lossStyle.Render(change)
	}
	return fmt.Sprintf("  %s %s %s %s %s",
		symbolStyle.Render(sym), name, price, changeCol, volume)
}

// View renders the entire UI.
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.width == 0 || m.height == 0 {
		return "Starting feed..."
	}

	main := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.board.View(),
		m.renderStatus(),
	)

	if m.showHelp {
		return overlay.New(
			staticView(m.renderHelp()),
			staticView(main),
			overlay.Center,
			overlay.Center,
			0,
			0,
		).View()
	}

	return main
}

// renderHeader renders the title line and the column headings.
func (m Model) renderHeader() string {
	arrow := "▲"
	if (m.order != market.BySymbol) != m.desc {
		arrow = "▼"
	}

	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render("Ticker Board"),
		"  ",
		sortLabelStyle.Render(fmt.Sprintf("sort: %s %s", m.order, arrow)),
	)
	if m.paused {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, "  ", pausedStyle.Render("PAUSED"))
	}

	headings := fmt.Sprintf("  %-*s %-*s %*s %*s %*s",
		symbolColWidth, "SYM",
		nameColWidth(m.board.ContentWidth()), "NAME",
		priceColWidth, "PRICE",
		changeColWidth, "CHANGE",
		volumeColWidth, "VOLUME")

	return lipgloss.JoinVertical(lipgloss.Left, line, columnHeaderStyle.Render(headings))
}

// renderStatus renders the status bar: key hints plus live engine numbers.
func (m Model) renderStatus() string {
	if m.statusMessage != "" {
		return statusStyle.Width(m.width).Render(statusFlashStyle.Render(m.statusMessage))
	}

	var help strings.Builder
	help.WriteString(helpTextStyle.Render("o: Sort"))
	help.WriteString(" │ ")
	help.WriteString(helpTextStyle.Render("r: Reverse"))
	help.WriteString(" │ ")
	help.WriteString(helpTextStyle.Render("space: Pause"))
	help.WriteString(" │ ")
	help.WriteString(helpTextStyle.Render("y: Yank"))
	help.WriteString(" │ ")
	help.WriteString(helpTextStyle.Render("?: Help"))
	help.WriteString(" │ ")
	help.WriteString(helpTextStyle.Render("q: Quit"))

	e := m.board.Engine()
	stats := m.board.LastStats()
	cache := m.board.CacheStats()
	anchor := e.Anchor()
	first, last := e.VisibleRange()

	var info strings.Builder
	info.WriteString(statusCountStyle.Render(fmt.Sprintf("%d", e.Len())))
	info.WriteString(" tickers │ anchor ")
	info.WriteString(statusCountStyle.Render(fmt.Sprintf("%d+%d", anchor.Position, anchor.Offset)))
	info.WriteString(" │ rows ")
	info.WriteString(statusCountStyle.Render(fmt.Sprintf("%d..%d", first, last)))
	info.WriteString(" │ pass ")
	info.WriteString(statusCountStyle.Render(fmt.Sprintf("+%d ~%d ↕%d -%d",
		stats.Mounted, stats.Updated, stats.Repositioned, stats.Unmounted)))
	info.WriteString(" │ cache ")
	info.WriteString(statusCountStyle.Render(fmt.Sprintf("%.0f%%", cache.HitRate())))

	// Engine numbers first: on a narrow terminal the key hints are what
	// get clipped, not the live stats.
	statusLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		info.String(),
		lipgloss.NewStyle().Width(4).Render(""), // Spacer
		help.String(),
	)
	// Clip rather than let a narrow terminal wrap the bar to two lines.
	statusLine = ansi.Truncate(statusLine, max(m.width-2, 0), "")

	return statusStyle.Width(m.width).Render(statusLine)
}

// renderHelp renders the help overlay box.
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, row := range [][2]string{
		{"↑/↓ or k/j", "Move cursor"},
		{"pgup/pgdn", "Page up/down (also b/f)"},
		{"g / G", "Jump to top / bottom"},
		{"wheel", "Scroll three rows"},
		{"o", "Cycle sort column"},
		{"r", "Reverse sort direction"},
		{"space", "Pause or resume the feed"},
		{"y", "Copy visible rows to clipboard"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	} {
		b.WriteString(helpKeyStyle.Render(row[0]))
		b.WriteString("  ")
		b.WriteString(helpDescStyle.Render(row[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpDescStyle.Render("The board re-sorts on every tick;"))
	b.WriteString("\n")
	b.WriteString(helpDescStyle.Render("scroll anywhere and watch it hold still."))

	return modalStyle.Width(46).Render(b.String())
}

// staticView adapts a rendered string to tea.Model so overlay can compose
// foreground and background.
type staticView string

func (s staticView) Init() tea.Cmd                       { return nil }
func (s staticView) Update(tea.Msg) (tea.Model, tea.Cmd) { return s, nil }
func (s staticView) View() string                        { return string(s) }
