package telemetry

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/mutker/powerlog/internal/errors"
	"codeberg.org/mutker/powerlog/internal/logger"
	"codeberg.org/mutker/powerlog/internal/sensor"

	_ "github.com/mattn/go-sqlite3"
)

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Msgf("Initializing telemetry repository at: %s", cfg.DBPath)

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	return &sqliteRepository{
		db: db,
	}, nil
}

func (r *sqliteRepository) Store(ctx context.Context, sample *sensor.Sample) error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO samples (
            timestamp, current_ua, voltage_uv,
            capacity_pct, charge_uah, temperature_c,
            status, charging
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(timestamp) DO UPDATE SET
            current_ua = excluded.current_ua,
            voltage_uv = excluded.voltage_uv,
            capacity_pct = excluded.capacity_pct,
            charge_uah = excluded.charge_uah,
            temperature_c = excluded.temperature_c,
            status = excluded.status,
            charging = excluded.charging
    `,
		sample.Timestamp.Unix(),
		nullMetric(sample.Current),
		nullMetric(sample.Voltage),
		nullMetric(sample.Capacity),
		nullMetric(sample.Charge),
		nullTemperature(sample.Temperature),
		sample.Status,
		boolToInt(sample.Charging),
	)
	if err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) Close() error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}
	return nil
}

func nullMetric(m sensor.Metric) sql.NullInt64 {
	return sql.NullInt64{Int64: m.Value, Valid: m.Valid}
}

func nullTemperature(t sensor.Temperature) sql.NullFloat64 {
	return sql.NullFloat64{Float64: t.Celsius, Valid: t.Valid}
}
