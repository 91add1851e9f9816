// Command cinecluster is a terminal client for a movie clustering service.
//
// Usage:
//
//	cinecluster                         Run the interactive picker
//	cinecluster cluster -genre Drama    Print one clustering result
//	cinecluster events                  JSONL event log viewer
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/cinecluster/internal/api"
	"github.com/abelbrown/cinecluster/internal/config"
	"github.com/abelbrown/cinecluster/internal/logging"
	"github.com/abelbrown/cinecluster/internal/otel"
	"github.com/abelbrown/cinecluster/internal/ui"
)

const usage = `cinecluster - movie clustering client

Usage:
  cinecluster [command] [flags]

Commands:
  (none)      Interactive genre/rating picker
  cluster     Request one clustering and print it
  events      JSONL event log viewer

Environment:
  CINECLUSTER_CONFIG     YAML config file (default: ~/.cinecluster/config.yaml)
  CINECLUSTER_BASE_URL   Clustering service root (default: http://localhost:8000)
  CINECLUSTER_TRACE      Log every UI message when set to 1

Run 'cinecluster <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		runTUI()
		return
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "cluster":
		runCluster()
	case "events":
		runEvents()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "cinecluster: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func runTUI() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := loadConfig(ctx)

	logPath, err := cfg.ResolvedLogPath()
	if err != nil {
		logging.Fatal("Failed to resolve event log path", "err", err)
	}
	ensureDataDir()
	logger, logFile, err := otel.OpenFile(logPath)
	if err != nil {
		logging.Fatal("Failed to open event log", "err", err)
	}
	defer logFile.Close()
	defer logger.Close()

	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	logger.SetRingBuffer(ring)

	client, err := api.NewClient(cfg.BaseURL, cfg.Timeout, cfg.RequestsPerSecond)
	if err != nil {
		logging.Fatal("Failed to create API client", "err", err)
	}

	appCfg := ui.AppConfig{
		Timings: ui.Timings{
			Show:  cfg.ShowDelay,
			Clap:  cfg.ClapDelay,
			Reset: cfg.ResetDelay,
		},
		Rating: ui.RatingRange{
			Min:     cfg.RatingMin,
			Max:     cfg.RatingMax,
			Step:    cfg.RatingStep,
			Default: cfg.RatingDefault,
		},
		Events: logger,
		Ring:   ring,
	}
	appCfg.UseService(ctx, client)

	logger.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindStartup,
		Comp:  "main",
		Msg:   "base_url=" + client.BaseURL(),
	})

	p := tea.NewProgram(ui.NewAppWithConfig(appCfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error(otel.KindError, "main", err)
		cancel()
		logger.Close()
		logging.Fatal("Error running program", "err", err)
	}

	logger.Info(otel.KindShutdown, "main", "clean exit")
}

// loadConfig loads layered configuration or fatals.
func loadConfig(ctx context.Context) *config.Config {
	cfg, err := config.Load(ctx)
	if err != nil {
		logging.Fatal("Failed to load config", "err", err)
	}
	return cfg
}

// ensureDataDir creates ~/.cinecluster/ if needed.
func ensureDataDir() {
	dir, err := config.DataDir()
	if err != nil {
		logging.Fatal("Failed to get home directory", "err", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logging.Fatal("Failed to create data directory", "err", err)
	}
}
