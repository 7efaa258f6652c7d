package sensor_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/powerlog/internal/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThermalZoneSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temp")
	require.NoError(t, os.WriteFile(path, []byte("42500\n"), 0o644))

	celsius, ok := sensor.ThermalZoneSource{Path: path}.Read()
	require.True(t, ok)
	assert.InDelta(t, 42.5, celsius, 0.001)
}

func TestThermalZoneSourceMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temp")

	_, ok := sensor.ThermalZoneSource{Path: path}.Read()
	assert.False(t, ok)
}

func TestThermalZoneSourceGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temp")
	require.NoError(t, os.WriteFile(path, []byte("warm\n"), 0o644))

	_, ok := sensor.ThermalZoneSource{Path: path}.Read()
	assert.False(t, ok)
}

func TestFallbackUsesFirstAvailable(t *testing.T) {
	failing := sensor.SourceFunc(func() (float64, bool) { return 0, false })
	working := sensor.SourceFunc(func() (float64, bool) { return 31.0, true })

	celsius, ok := sensor.Fallback{failing, working}.Read()
	require.True(t, ok)
	assert.InDelta(t, 31.0, celsius, 0.001)
}

func TestFallbackAllFail(t *testing.T) {
	failing := sensor.SourceFunc(func() (float64, bool) { return 0, false })

	_, ok := sensor.Fallback{failing, failing}.Read()
	assert.False(t, ok)
}
