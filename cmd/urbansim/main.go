// Package main provides the urbansim binary: a headless runner for the
// urban cell simulation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"urbansim/internal/config"
	"urbansim/internal/engine"
	"urbansim/internal/storage"
)

const (
	version = "0.1.0"
	appName = "urbansim"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Urban cell simulation",
		Long: `Urbansim models a city as a grid of spatial cells whose socioeconomic
state evolves over discrete timesteps under interacting rule modules:
population, housing, transport, safety, commerce, infrastructure,
policy, and spatial spillovers.`,
	}

	cmd.AddCommand(runCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, version)
		},
	})
	return cmd
}

func runCmd() *cobra.Command {
	var (
		configPath string
		steps      int
		gridLimit  int
		city       string
		seed       int64
		noShuffle  bool
		natsURL    string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.LoadFromFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("steps") {
				cfg.Steps = steps
			}
			if cmd.Flags().Changed("grid-limit") {
				cfg.GridLimit = gridLimit
			}
			if cmd.Flags().Changed("city") {
				cfg.City = city
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if noShuffle {
				cfg.Shuffle = false
			}
			if cmd.Flags().Changed("nats") {
				cfg.NATSURL = natsURL
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, logLevel)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Scenario config file (YAML)")
	cmd.Flags().IntVar(&steps, "steps", 50, "Number of timesteps to simulate")
	cmd.Flags().IntVar(&gridLimit, "grid-limit", 50, "Maximum number of grid cells to load")
	cmd.Flags().StringVar(&city, "city", "Leipzig", "City name recorded on the run")
	cmd.Flags().Int64Var(&seed, "seed", 1337, "Seed for cell ordering and demo data")
	cmd.Flags().BoolVar(&noShuffle, "no-shuffle", false, "Process cells in deterministic sorted order")
	cmd.Flags().StringVar(&natsURL, "nats", "", "NATS URL for run/snapshot publishing")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, logLevel string) error {
	logger := newLogger(logLevel)

	pipeline, err := cfg.Pipeline()
	if err != nil {
		return err
	}

	store := storage.NewMemory()
	store.SeedCells(storage.DemoCells(cfg.GridLimit, cfg.Seed))

	var runs storage.RunStore = store
	var sink storage.SnapshotSink = store
	if cfg.NATSURL != "" {
		nats, err := storage.DialNATS(cfg.NATSURL)
		if err != nil {
			return err
		}
		defer nats.Close()
		runs = nats
		sink = nats
	}

	eng := engine.New(cfg.EngineConfig(), store, runs, sink, pipeline, logger)
	runID, err := eng.Run(ctx, cfg.Steps)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Printf("Run ID: %s\nCity: %s\nTimesteps: %d\n", runID, cfg.City, cfg.Steps)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
