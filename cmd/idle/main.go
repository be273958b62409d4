package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/napolitain/prehistoric-idle/internal/loader"
	"github.com/napolitain/prehistoric-idle/internal/models"
)

var (
	dataDir    string
	configFile string
	preset     string
	quiet      bool
	verbose    bool
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		color.Yellow("Warning: could not read .env: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "idle",
		Short: "Prehistoric idle game",
		Long: `A tribe of hominids gathers food, thinks, and discovers new tasks.
Run a headless simulation or play it in the terminal.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	bindGameFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newSimulateCmd(), newPlayCmd(), newHistoryCmd())

	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// bindGameFlags registers the flags shared by every subcommand. Defaults may
// come from IDLE_DATA, IDLE_CONFIG and IDLE_PRESET, also read from .env.
func bindGameFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&dataDir, "data", "d", envOr("IDLE_DATA", "data"), "Path to data directory")
	fs.StringVarP(&configFile, "config", "c", os.Getenv("IDLE_CONFIG"), "Path to YAML balance file (overrides <data>/balance.yaml)")
	fs.StringVar(&preset, "preset", envOr("IDLE_PRESET", "default"), "Balance preset: default, casual, hard")
	fs.BoolVarP(&quiet, "quiet", "q", false, "Minimal output")
	fs.BoolVar(&verbose, "verbose", false, "Debug logging")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupLogging sends logs to stderr so tables on stdout stay clean
func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// loadGame reads the catalog and the balance selected by the flags
func loadGame() (*models.Catalog, models.Config, error) {
	catalog, cfg, err := loader.Load(dataDir, preset)
	if err != nil {
		return nil, models.Config{}, err
	}

	if configFile != "" {
		cfg, err = models.LoadConfigPreset(configFile, preset)
		if err != nil {
			return nil, models.Config{}, err
		}
		if err := models.ValidateConfig(cfg); err != nil {
			return nil, models.Config{}, fmt.Errorf("invalid config %s: %w", configFile, err)
		}
		slog.Info("loaded config", "path", configFile, "preset", cfg.Preset)
	}

	return catalog, cfg, nil
}

func printBanner(subtitle string) {
	if quiet {
		return
	}
	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Println("\n╭───────────────────────────╮")
	titleColor.Println("│  Prehistoric Idle         │")
	titleColor.Printf("│  %-25s│\n", subtitle)
	titleColor.Println("╰───────────────────────────╯")
	fmt.Println()
}
