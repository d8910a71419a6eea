package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/listkit/cmd/tickerboard/logger"
	"github.com/joshuapare/listkit/cmd/tickerboard/market"
	"github.com/joshuapare/listkit/list"
	"github.com/joshuapare/listkit/pkg/vlist"
)

// Layout constants
const (
	headerHeight = 2 // title line + column headings
	statusHeight = 1
)

// Config carries the flag values main hands to the model.
type Config struct {
	Rows   int
	FPS    int
	Margin int
	Seed   int64
}

// Model is the main application model.
type Model struct {
	board *vlist.Model[market.Quote]
	feed  *market.Feed
	keys  KeyMap

	order  market.Order
	desc   bool
	paused bool

	width  int
	height int

	interval time.Duration

	// Help overlay
	showHelp bool

	// Status message for temporary feedback
	statusMessage string

	err error
}

// Messages

type tickMsg time.Time

type clearStatusMsg struct{}

// NewModel builds the board over a deterministic simulated feed.
func NewModel(cfg Config) Model {
	rows := cfg.Rows
	if rows <= 0 {
		rows = 250
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = 4
	}
	if fps > 60 {
		fps = 60
	}

	board := vlist.New(renderQuote, vlist.Options[market.Quote]{
		PrefetchRows: cfg.Margin,
		// Quote rows are always one line, so skip render-based measuring.
		Measurer: list.Fixed[market.Quote](1),
	})

	m := Model{
		board:    board,
		feed:     market.NewFeed(rows, cfg.Seed),
		keys:     DefaultKeyMap(),
		order:    market.ByChange,
		interval: time.Second / time.Duration(fps),
	}
	m.refresh()

	logger.Info("board ready", "rows", rows, "fps", fps, "seed", cfg.Seed)
	return m
}

// Init starts the feed ticking.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh pulls the current tape, sorts it and hands it to the board. The
// board keeps its scroll position; only rows whose content moved repaint.
func (m *Model) refresh() {
	quotes := m.feed.Quotes()
	market.Sort(quotes, m.order, m.desc)
	if err := m.board.SetItems(quotes); err != nil {
		m.err = err
	}
}
