package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/greenconnect/internal/advice"
	"github.com/sadopc/greenconnect/internal/community"
	"github.com/sadopc/greenconnect/internal/config"
	"github.com/sadopc/greenconnect/internal/export"
	"github.com/sadopc/greenconnect/internal/logging"
	"github.com/sadopc/greenconnect/internal/store"
	"github.com/sadopc/greenconnect/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

var (
	configFlag  string
	routeFlag   string
	noSeedFlag  bool
	verboseFlag bool

	formatFlag string
	outFlag    string
)

var rootCmd = &cobra.Command{
	Use:           "greenconnect",
	Short:         "greenconnect - track your eco-friendly habits",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var adviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Print a personalized eco tip for the current activity log",
	RunE:  runAdvice,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the activity log as CSV or JSON",
	RunE:  runExport,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "greenconnect %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: user config dir)")
	rootCmd.PersistentFlags().BoolVar(&noSeedFlag, "no-seed", false, "start with an empty activity log")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVar(&routeFlag, "route", "", `start route: "/", "/log" or "/community?topic=..."`)

	exportCmd.Flags().StringVarP(&formatFlag, "format", "f", "csv", "export format: csv or json")
	exportCmd.Flags().StringVarP(&outFlag, "out", "o", "", "output file (default: export dir)")

	rootCmd.AddCommand(adviceCmd, exportCmd, versionCmd)
}

// session holds everything a command needs for one run.
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *store.Store
	advisor *advice.Advisor
}

func (s *session) close() {
	_ = s.logger.Sync()
}

func newSession(ctx context.Context) (*session, error) {
	path := configFlag
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging, verboseFlag)
	if err != nil {
		return nil, err
	}

	s := store.New()
	if cfg.SeedMockData && !noSeedFlag {
		s.Seed(store.MockEntries())
	}

	var gen advice.Generator
	if cfg.AdviceEnabled() {
		g, err := advice.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			// Advice degrades to the fallback tip rather than blocking startup.
			logger.Warn("gemini client unavailable", zap.Error(err))
		} else {
			gen = g
		}
	}

	logger.Info("session started",
		zap.String("config", path),
		zap.Bool("advice", gen != nil),
		zap.Int("entries", s.Stats().TotalLogs))

	return &session{
		cfg:     cfg,
		logger:  logger,
		store:   s,
		advisor: advice.New(gen, logger, advice.WithTimeout(cfg.Gemini.Timeout)),
	}, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close()

	board, err := community.Open()
	if err != nil {
		return fmt.Errorf("open community board: %w", err)
	}
	defer board.Close()

	route := sess.cfg.StartRoute
	if routeFlag != "" {
		route = routeFlag
	}

	app := tui.NewApp(tui.Deps{
		Store:      sess.store,
		Advisor:    sess.advisor,
		Board:      board,
		Logger:     sess.logger,
		ExportDir:  sess.cfg.ExportDir,
		StartRoute: route,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	sess.logger.Info("session ended", zap.Int("entries", sess.store.Stats().TotalLogs))
	return nil
}

func runAdvice(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close()

	return printAdvice(cmd.Context(), cmd.OutOrStdout(), sess.advisor, sess.store)
}

func printAdvice(ctx context.Context, w io.Writer, a *advice.Advisor, s *store.Store) error {
	text := a.Advise(ctx, s.Recent(advice.MaxPromptEntries))
	_, err := fmt.Fprintln(w, text)
	return err
}

func runExport(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close()

	path, err := writeExport(sess.store, formatFlag, outFlag, sess.cfg.ExportDir, time.Now())
	if err != nil {
		return err
	}
	sess.logger.Info("exported session", zap.String("path", path), zap.String("format", formatFlag))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d activities to %s\n", sess.store.Stats().TotalLogs, path)
	return nil
}

// writeExport writes the store to out, or to a dated file in dir when out
// is empty, and returns the path written.
func writeExport(s *store.Store, format, out, dir string, day time.Time) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if out == "" {
		out = filepath.Join(dir, export.FileName(day, format))
	}
	switch format {
	case "csv":
		return out, export.ToCSV(s.Entries(), out)
	case "json":
		return out, export.ToJSON(s.Entries(), s.Stats(), out)
	}
	return "", fmt.Errorf("unknown export format %q (want csv or json)", format)
}
