package journal

import (
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/mutker/powerlog/internal/errors"
	"codeberg.org/mutker/powerlog/internal/sensor"
)

const (
	// Header is the fixed column schema. It is written exactly once, as
	// line 1 of a freshly created journal.
	Header = "Timestamp,Current (µA),Voltage (µV),Capacity (%),Charge (µAh),Temperature (°C),Charging"

	timeLayout = "2006-01-02 15:04:05"

	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644
)

// Journal appends battery samples to a CSV log file. Every append opens,
// writes and closes the file, so a completed record is never lost to an
// interrupt between ticks.
type Journal struct {
	path string
}

func New(path string) *Journal {
	return &Journal{path: path}
}

func (j *Journal) Path() string {
	return j.path
}

// EnsureHeader creates the journal file with its header line if it does not
// exist yet. Calling it again on an existing file is a no-op.
func (j *Journal) EnsureHeader() error {
	errFactory := errors.New()

	if _, err := os.Stat(j.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errFactory.Wrap(ErrJournalAccess, err)
	}

	if dir := filepath.Dir(j.path); dir != "." {
		if err := os.MkdirAll(dir, defaultDirPerm); err != nil {
			return errFactory.Wrap(ErrJournalCreate, err)
		}
	}

	if err := os.WriteFile(j.path, []byte(Header+"\n"), defaultFilePerm); err != nil {
		return errFactory.Wrap(ErrJournalCreate, err)
	}

	return nil
}

// Append serializes the sample into one record and appends it.
func (j *Journal) Append(s sensor.Sample) error {
	errFactory := errors.New()

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, defaultFilePerm)
	if err != nil {
		return errFactory.Wrap(ErrJournalAppend, err)
	}

	if _, err := f.WriteString(Record(s) + "\n"); err != nil {
		f.Close()
		return errFactory.Wrap(ErrJournalAppend, err)
	}

	if err := f.Close(); err != nil {
		return errFactory.Wrap(ErrJournalAppend, err)
	}

	return nil
}

// Size returns the journal's size on disk, or false when the file does not
// exist yet.
func (j *Journal) Size() (int64, bool) {
	info, err := os.Stat(j.path)
	if err != nil {
		return 0, false
	}

	return info.Size(), true
}

// Record renders a sample as one line of the fixed 7-column schema.
// Unavailable fields render as N/A, the charging flag as 1 or 0.
func Record(s sensor.Sample) string {
	fields := []string{
		s.Timestamp.Format(timeLayout),
		s.Current.String(),
		s.Voltage.String(),
		s.Capacity.String(),
		s.Charge.String(),
		s.Temperature.String(),
		chargingFlag(s.Charging),
	}

	return strings.Join(fields, ",")
}

func chargingFlag(charging bool) string {
	if charging {
		return "1"
	}

	return "0"
}
