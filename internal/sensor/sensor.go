package sensor

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	attrCurrent  = "current_now"
	attrVoltage  = "voltage_now"
	attrCapacity = "capacity"
	attrCharge   = "charge_now"
	attrStatus   = "status"

	// Unavailable is the token shown for a field that could not be read.
	Unavailable = "N/A"

	StatusUnknown  = "Unknown"
	StatusCharging = "Charging"
)

// Metric is an optional integer reading. Valid is false when the attribute
// could not be read this tick, which is distinct from a zero value.
type Metric struct {
	Value int64
	Valid bool
}

func (m Metric) String() string {
	if !m.Valid {
		return Unavailable
	}

	return strconv.FormatInt(m.Value, 10)
}

// Temperature is an optional reading in degrees Celsius.
type Temperature struct {
	Celsius float64
	Valid   bool
}

func (t Temperature) String() string {
	if !t.Valid {
		return Unavailable
	}

	return strconv.FormatFloat(t.Celsius, 'f', 1, 64)
}

// Sample is a point-in-time reading of the battery state. Fields degrade
// independently: a missing attribute leaves the rest of the sample intact.
type Sample struct {
	Timestamp   time.Time
	Current     Metric // µA
	Voltage     Metric // µV
	Capacity    Metric // percent
	Charge      Metric // µAh
	Temperature Temperature
	Status      string
	Charging    bool
}

// Reader reads battery attributes from a power-supply sysfs directory.
type Reader struct {
	batteryPath string
	temperature TemperatureSource
}

func NewReader(batteryPath string, temperature TemperatureSource) *Reader {
	return &Reader{
		batteryPath: batteryPath,
		temperature: temperature,
	}
}

// Read samples every attribute once. It never fails: unreadable attributes
// yield invalid metrics and the next tick re-attempts them naturally.
func (r *Reader) Read() Sample {
	s := Sample{
		Timestamp: time.Now(),
		Status:    StatusUnknown,
	}

	s.Current = r.readMetric(attrCurrent)
	s.Voltage = r.readMetric(attrVoltage)
	s.Capacity = r.readMetric(attrCapacity)
	s.Charge = r.readMetric(attrCharge)

	if status, ok := r.readAttr(attrStatus); ok && status != "" {
		s.Status = status
	}
	s.Charging = s.Status == StatusCharging

	if celsius, ok := r.temperature.Read(); ok {
		s.Temperature = Temperature{Celsius: celsius, Valid: true}
	}

	return s
}

func (r *Reader) readAttr(name string) (string, bool) {
	b, err := os.ReadFile(filepath.Join(r.batteryPath, name))
	if err != nil {
		return "", false
	}

	return strings.TrimSpace(string(b)), true
}

func (r *Reader) readMetric(name string) Metric {
	raw, ok := r.readAttr(name)
	if !ok {
		return Metric{}
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Metric{}
	}

	return Metric{Value: value, Valid: true}
}
