// Command advocates-tui browses the advocates directory in a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dalemusser/advocates/internal/app/system/advocateapi"
	"github.com/dalemusser/advocates/internal/app/system/viewstate"
	"github.com/dalemusser/advocates/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	apiURL          string
	apiPath         string
	timeout         time.Duration
	query           string
	listSpecialties bool
	logFile         string
	verbose         bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "advocates-tui",
	Short: "Browse the Solace advocates directory",
	Long: `Loads the advocates listing once and lets you narrow it by typing.

Keys:
  esc      clear the search
  ctrl+r   reload after a failed load
  ctrl+c   quit`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The screen belongs to the UI; logs only go to a file.
		if logFile == "" {
			logger = zap.NewNop()
			return nil
		}
		config := zap.NewProductionConfig()
		config.OutputPaths = []string{logFile}
		config.ErrorOutputPaths = []string{logFile}
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runDirectory,
}

func init() {
	rootCmd.Flags().StringVar(&apiURL, "api-url", "http://localhost:3000", "Base URL of the advocates API")
	rootCmd.Flags().StringVar(&apiPath, "api-path", advocateapi.DefaultPath, "Path of the advocates listing")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "Request timeout (0 disables)")
	rootCmd.Flags().StringVarP(&query, "query", "q", "", "Initial search query")
	rootCmd.Flags().BoolVar(&listSpecialties, "specialties-list", false, "Show one specialty per line")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDirectory(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	client := advocateapi.New(apiURL, apiPath, timeout, logger)
	session := tui.NewSession(ctx, client, viewstate.Options{}, logger)
	defer session.Close()

	p := tea.NewProgram(
		tui.NewModel(session, query, listSpecialties),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	session.Bind(p.Send)

	logger.Info("directory started", zap.String("url", client.URL()))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
