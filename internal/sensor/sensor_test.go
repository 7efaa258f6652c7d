package sensor_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/powerlog/internal/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAttr(t *testing.T, dir, name, value string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o644))
}

func noTemperature() sensor.TemperatureSource {
	return sensor.SourceFunc(func() (float64, bool) {
		return 0, false
	})
}

func fixedTemperature(celsius float64) sensor.TemperatureSource {
	return sensor.SourceFunc(func() (float64, bool) {
		return celsius, true
	})
}

func TestReadAllAttributes(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "current_now", "-812000\n")
	writeAttr(t, dir, "voltage_now", "11903000\n")
	writeAttr(t, dir, "capacity", "87\n")
	writeAttr(t, dir, "charge_now", "2143000\n")
	writeAttr(t, dir, "status", "Discharging\n")

	s := sensor.NewReader(dir, fixedTemperature(34.5)).Read()

	assert.Equal(t, sensor.Metric{Value: -812000, Valid: true}, s.Current)
	assert.Equal(t, sensor.Metric{Value: 11903000, Valid: true}, s.Voltage)
	assert.Equal(t, sensor.Metric{Value: 87, Valid: true}, s.Capacity)
	assert.Equal(t, sensor.Metric{Value: 2143000, Valid: true}, s.Charge)
	assert.Equal(t, sensor.Temperature{Celsius: 34.5, Valid: true}, s.Temperature)
	assert.Equal(t, "Discharging", s.Status)
	assert.False(t, s.Charging)
	assert.False(t, s.Timestamp.IsZero())
}

func TestReadMissingCapacity(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "current_now", "500000\n")
	writeAttr(t, dir, "voltage_now", "12000000\n")
	writeAttr(t, dir, "charge_now", "3000000\n")
	writeAttr(t, dir, "status", "Charging\n")

	s := sensor.NewReader(dir, noTemperature()).Read()

	assert.False(t, s.Capacity.Valid, "missing attribute must degrade to the unavailable sentinel")
	assert.True(t, s.Current.Valid, "other attributes must remain populated")
	assert.True(t, s.Voltage.Valid)
	assert.True(t, s.Charge.Valid)
	assert.Equal(t, "Charging", s.Status)
	assert.True(t, s.Charging)
}

func TestReadEmptyDirectory(t *testing.T) {
	s := sensor.NewReader(t.TempDir(), noTemperature()).Read()

	assert.False(t, s.Current.Valid)
	assert.False(t, s.Voltage.Valid)
	assert.False(t, s.Capacity.Valid)
	assert.False(t, s.Charge.Valid)
	assert.False(t, s.Temperature.Valid)
	assert.Equal(t, sensor.StatusUnknown, s.Status)
	assert.False(t, s.Charging)
}

func TestReadGarbageAttribute(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "current_now", "not-a-number\n")
	writeAttr(t, dir, "capacity", "42\n")

	s := sensor.NewReader(dir, noTemperature()).Read()

	assert.False(t, s.Current.Valid)
	assert.Equal(t, sensor.Metric{Value: 42, Valid: true}, s.Capacity)
}

func TestChargingDerivedFromStatus(t *testing.T) {
	tests := []struct {
		status   string
		charging bool
	}{
		{"Charging", true},
		{"Discharging", false},
		{"Full", false},
		{"Not charging", false},
		{"Unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			dir := t.TempDir()
			writeAttr(t, dir, "status", tt.status+"\n")

			s := sensor.NewReader(dir, noTemperature()).Read()
			assert.Equal(t, tt.status, s.Status)
			assert.Equal(t, tt.charging, s.Charging)
		})
	}
}

func TestMetricString(t *testing.T) {
	assert.Equal(t, "-812000", sensor.Metric{Value: -812000, Valid: true}.String())
	assert.Equal(t, "0", sensor.Metric{Value: 0, Valid: true}.String())
	assert.Equal(t, sensor.Unavailable, sensor.Metric{}.String())
}

func TestTemperatureString(t *testing.T) {
	assert.Equal(t, "34.5", sensor.Temperature{Celsius: 34.5, Valid: true}.String())
	assert.Equal(t, "34.0", sensor.Temperature{Celsius: 34, Valid: true}.String())
	assert.Equal(t, sensor.Unavailable, sensor.Temperature{}.String())
}
