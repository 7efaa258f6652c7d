package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"codeberg.org/mutker/powerlog/internal/config"
	"codeberg.org/mutker/powerlog/internal/display"
	"codeberg.org/mutker/powerlog/internal/errors"
	"codeberg.org/mutker/powerlog/internal/journal"
	"codeberg.org/mutker/powerlog/internal/logger"
	"codeberg.org/mutker/powerlog/internal/sensor"
	"codeberg.org/mutker/powerlog/internal/telemetry"
)

// Monitor drives the sampling loop. It owns all mutable session state; no
// other component mutates it.
type Monitor struct {
	cfg       *config.Config
	reader    *sensor.Reader
	journal   *journal.Journal // nil when logging is disabled
	collector telemetry.Collector
	clock     Clock
	out       io.Writer

	start time.Time
	last  sensor.Sample
	ticks int
}

func New(
	cfg *config.Config,
	reader *sensor.Reader,
	jnl *journal.Journal,
	collector telemetry.Collector,
	clock Clock,
	out io.Writer,
) *Monitor {
	return &Monitor{
		cfg:       cfg,
		reader:    reader,
		journal:   jnl,
		collector: collector,
		clock:     clock,
		out:       out,
	}
}

// Run executes the loop until the runtime limit is reached or the context is
// cancelled. Each tick strictly sequences read, journal, telemetry, render,
// wait. Per-tick I/O failures degrade to warnings and never stop the loop.
func (m *Monitor) Run(ctx context.Context) error {
	errFactory := errors.New()

	if m.cfg.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, m.cfg.Interval)
	}

	m.start = m.clock.Now()
	maxRuntime := m.cfg.MaxRuntime()

	if m.journal != nil {
		logger.Info().Str("path", m.journal.Path()).Msg("Logging battery samples")
	} else {
		logger.Info().Msg("No output path given, sample logging disabled for this session")
	}

	for {
		elapsed := m.clock.Now().Sub(m.start)
		if maxRuntime > 0 && elapsed >= maxRuntime {
			logger.Info().
				Int("ticks", m.ticks).
				Str("elapsed", elapsed.String()).
				Msg("Runtime limit reached, stopping")
			return nil
		}

		sample := m.reader.Read()
		m.last = sample
		m.ticks++

		if m.journal != nil {
			if err := m.journal.EnsureHeader(); err != nil {
				logger.Warn().Err(err).Msg("Failed to prepare journal")
			} else if err := m.journal.Append(sample); err != nil {
				logger.Warn().Err(err).Msg("Failed to append sample")
			}
		}

		if err := m.collector.Record(ctx, &sample); err != nil {
			logger.Warn().Err(err).Msg("Failed to record sample")
		}

		if !m.cfg.NoInterface {
			m.render(sample, elapsed, maxRuntime)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-m.clock.After(m.cfg.TickInterval()):
		}
	}
}

func (m *Monitor) render(sample sensor.Sample, elapsed, maxRuntime time.Duration) {
	frame := display.Frame{
		LogPath:     m.cfg.Output,
		Interval:    m.cfg.TickInterval(),
		BatteryPath: m.cfg.Battery,
		StartTime:   m.start,
		Sample:      sample,
		Elapsed:     elapsed,
		MaxRuntime:  maxRuntime,
	}
	if m.journal != nil {
		frame.LoggingEnabled = true
		frame.LogPath = m.journal.Path()
		frame.LogSize, frame.HasLogSize = m.journal.Size()
	}

	fmt.Fprint(m.out, display.ClearScreen+display.Render(frame))
}

// Ticks returns how many samples have been taken this session.
func (m *Monitor) Ticks() int {
	return m.ticks
}

// LastSample returns the most recent sample.
func (m *Monitor) LastSample() sensor.Sample {
	return m.last
}
