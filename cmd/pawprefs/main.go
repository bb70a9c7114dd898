package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tinytelemetry/pawprefs/internal/cardstack"
	"github.com/tinytelemetry/pawprefs/internal/httpserver"
	"github.com/tinytelemetry/pawprefs/internal/loader"
	"github.com/tinytelemetry/pawprefs/internal/logging"
	"github.com/tinytelemetry/pawprefs/internal/render"
	"github.com/tinytelemetry/pawprefs/internal/resource"
	"github.com/tinytelemetry/pawprefs/internal/summary"
	"github.com/tinytelemetry/pawprefs/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var showVersion bool
	var printReport bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/pawprefs/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.BoolVar(&printReport, "report", false, "print a YAML summary of the last session on exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Paw and Preferences\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	_ = godotenv.Load()

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var report io.Writer
	if printReport {
		report = os.Stdout
	}

	if err := run(cfg, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the registry, loader, HTTP API and TUI together and blocks until
// the user quits. Every resource still live is released before returning.
func run(cfg cliConfig, report io.Writer) error {
	logger, err := logging.NewLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	registry := resource.NewRegistry()

	ld, err := loader.New(loader.Config{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.FetchTimeout,
		Logger:   logger.Named("loader"),
	}, registry)
	if err != nil {
		return err
	}

	board := httpserver.NewBoard()
	if cfg.APIEnabled {
		srv := httpserver.NewServer(cfg.APIAddr, registry, board, logger.Named("api"))
		if err := srv.Start(); err != nil {
			// The widget works without the API; keep going.
			logger.Warn("http api disabled", zap.String("addr", cfg.APIAddr), zap.Error(err))
		} else {
			defer func() {
				if err := srv.Stop(); err != nil {
					logger.Warn("http api shutdown", zap.Error(err))
				}
			}()
		}
	}

	deps := &tui.Deps{
		Session:     cardstack.NewSession(registry),
		Loader:      ld,
		Renderer:    render.NewRenderer(registry),
		Sink:        board,
		Logger:      logger.Named("tui"),
		ImageCount:  cfg.ImageCount,
		Keys:        tui.DefaultKeyMap(),
		ReverseDrag: cfg.ReverseDrag,
	}
	app := tui.NewWidget(deps)

	logger.Info("starting",
		zap.String("version", version),
		zap.Int("image_count", cfg.ImageCount),
		zap.String("endpoint", cfg.Endpoint),
	)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, runErr := p.Run()

	deps.Shutdown()
	released := registry.Close()
	logger.Info("teardown", zap.Int("released", released))

	if runErr != nil {
		if strings.Contains(runErr.Error(), "TTY") || strings.Contains(runErr.Error(), "/dev/tty") {
			return fmt.Errorf("the widget requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", runErr)
	}

	if report != nil {
		if s, ok := deps.LastSummary(); ok {
			return summary.WriteYAML(report, summary.NewReport(s, time.Now()))
		}
	}
	return nil
}
