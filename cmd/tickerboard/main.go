package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joshuapare/listkit/cmd/tickerboard/logger"
)

var (
	flagRows    int
	flagFPS     int
	flagMargin  int
	flagSeed    int64
	flagDebug   bool
	flagLogDir  string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "tickerboard",
	Short: "A live re-sorting market board",
	Long: `tickerboard renders a simulated market feed that re-sorts on every
tick while the viewport and cursor hold their positions. It exists to show
position-stable virtualization under constant churn: scroll into the middle
of the board, change the sort column, pause the feed, and watch the status
bar report how little work each pass did.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().IntVar(&flagRows, "rows", 250, "Number of tickers in the simulated universe")
	rootCmd.Flags().IntVar(&flagFPS, "fps", 4, "Feed ticks per second (1-60)")
	rootCmd.Flags().IntVar(&flagMargin, "margin", 0, "Rows rendered beyond each viewport edge (0 = default)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 42, "Random walk seed; the same seed replays the same tape")
	rootCmd.Flags().BoolVarP(&flagDebug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&flagLogDir, "log-dir", "", "Directory for debug logs (default ~/.tickerboard/logs)")
	rootCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	execute()
}

func run() error {
	if err := logger.Init(logger.Options{
		Enabled: flagDebug,
		LogDir:  flagLogDir,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}
	defer logger.Close()

	if flagNoColor {
		// lipgloss consults NO_COLOR through termenv at first render.
		os.Setenv("NO_COLOR", "1")
	}

	logger.Info("starting tickerboard",
		"rows", flagRows, "fps", flagFPS, "seed", flagSeed, "debug", flagDebug)

	m := NewModel(Config{
		Rows:   flagRows,
		FPS:    flagFPS,
		Margin: flagMargin,
		Seed:   flagSeed,
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("running tickerboard: %w", err)
	}

	logger.Info("tickerboard exited normally")
	return nil
}
