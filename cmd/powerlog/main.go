package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/powerlog/internal/config"
	"codeberg.org/mutker/powerlog/internal/errors"
	"codeberg.org/mutker/powerlog/internal/journal"
	"codeberg.org/mutker/powerlog/internal/logger"
	"codeberg.org/mutker/powerlog/internal/monitor"
	"codeberg.org/mutker/powerlog/internal/pid"
	"codeberg.org/mutker/powerlog/internal/sensor"
	"codeberg.org/mutker/powerlog/internal/telemetry"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	// The battery path must resolve before any logging or rendering begins
	if err := cfg.Validate(); err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.FatalWithCode(appErr).Send()
		}
		logger.Fatal().Err(err).Send()
	}

	if err := pid.Write(); err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) && appErr.Code() == errors.ErrAlreadyRunning {
			logger.FatalWithCode(appErr).Send()
		}
		logger.Warn().Err(err).Msg("Failed to write PID file")
	}
	defer func() {
		if err := pid.Remove(); err != nil {
			logger.Warn().Err(err).Msg("Failed to remove PID file")
		}
	}()

	collector, err := telemetry.NewService(telemetry.Config{
		DBPath:  cfg.Database,
		Enabled: cfg.TelemetryEnabled(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		if err := collector.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close telemetry store")
		}
	}()

	reader := sensor.NewReader(cfg.Battery, sensor.DefaultTemperatureSource())

	var jnl *journal.Journal
	if cfg.LoggingEnabled() {
		jnl = journal.New(cfg.Output)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	mon := monitor.New(cfg, reader, jnl, collector, monitor.RealClock(), os.Stdout)
	if err := mon.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}
	logger.Info().Msg("Exiting...")
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
