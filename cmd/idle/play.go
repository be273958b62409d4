package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/napolitain/prehistoric-idle/internal/engine"
	"github.com/napolitain/prehistoric-idle/internal/history"
	"github.com/napolitain/prehistoric-idle/internal/models"
	"github.com/napolitain/prehistoric-idle/internal/session"
	"github.com/napolitain/prehistoric-idle/internal/tui"
)

var (
	playHistory string
	tickEvery   time.Duration
	logFile     string
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE:  runPlay,
	}

	cmd.Flags().StringVar(&playHistory, "history", "", "Record per-tick metrics into this SQLite file")
	cmd.Flags().DurationVar(&tickEvery, "tick", 0, "Tick interval (default from balance config)")
	cmd.Flags().StringVar(&logFile, "log", "idle.log", "Log file while the UI owns the terminal")

	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	catalog, cfg, err := loadGame()
	if err != nil {
		return err
	}
	if tickEvery > 0 {
		cfg.TickInterval = tickEvery
	}

	// the UI owns stdout; logs go to a file
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))

	opts := session.Options{
		TickInterval:    cfg.TickInterval,
		Engine:          engine.New(cfg.Rules),
		Logger:          logger,
		CheckInvariants: verbose,
	}

	if playHistory != "" {
		rec, err := history.Open(playHistory)
		if err != nil {
			return err
		}
		defer rec.Close()
		runID, err := rec.StartRun(cfg.Preset, time.Now())
		if err != nil {
			return err
		}
		opts.OnTick = func(s *models.GameState) {
			if err := rec.RecordTick(runID, s); err != nil {
				logger.Error("record tick", "error", err)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess := session.New(engine.NewGame(catalog, cfg), opts)
	errc := make(chan error, 1)
	go func() { errc <- sess.Run(ctx) }()

	err = tui.Run(ctx, sess)
	cancel()
	if runErr := <-errc; runErr != nil {
		return runErr
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
