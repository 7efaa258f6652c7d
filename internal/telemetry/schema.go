package telemetry

import (
	"database/sql"

	"codeberg.org/mutker/powerlog/internal/errors"
)

const createTablesSQL = `
    CREATE TABLE IF NOT EXISTS samples (
        timestamp      INTEGER PRIMARY KEY,
        current_ua     INTEGER,
        voltage_uv     INTEGER,
        capacity_pct   INTEGER,
        charge_uah     INTEGER,
        temperature_c  REAL,
        status         TEXT NOT NULL,
        charging       INTEGER NOT NULL CHECK (charging IN (0, 1))
    )`

// Nullable sample columns stay NULL when the sensor attribute was
// unavailable at sampling time.
func initSchema(db *sql.DB) error {
	errFactory := errors.New()

	if _, err := db.Exec(createTablesSQL); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	return nil
}
