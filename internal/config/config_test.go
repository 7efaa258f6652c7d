package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/powerlog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"powerlog"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	// Ensure no config file is used
	t.Setenv("POWERLOG_CONFIG", "")
	setArgs(t)

	cfg, err := config.Load()
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, config.DefaultOutput, cfg.Output, "Expected default Output")
	assert.Equal(t, config.DefaultInterval, cfg.Interval, "Expected default Interval 60")
	assert.Equal(t, 0, cfg.Time, "Expected default Time 0")
	assert.False(t, cfg.NoInterface, "Expected default NoInterface false")
	assert.False(t, cfg.LoggingEnabled(), "Default output must leave logging disabled")
	assert.False(t, cfg.TelemetryEnabled())
}

func TestLoadFlags(t *testing.T) {
	t.Setenv("POWERLOG_CONFIG", "")
	setArgs(t, "-o", "/tmp/battery.csv", "-i", "5", "-t", "300", "-b", "/sys/class/power_supply/BAT1", "--no-interface")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/battery.csv", cfg.Output)
	assert.Equal(t, 5, cfg.Interval)
	assert.Equal(t, 300, cfg.Time)
	assert.Equal(t, "/sys/class/power_supply/BAT1", cfg.Battery)
	assert.True(t, cfg.NoInterface)
	assert.True(t, cfg.LoggingEnabled())
}

func TestLoadConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configContent := []byte(`
output = "/var/log/battery.csv"
interval = 30
time = 600
no-interface = true
database = "/var/lib/powerlog/samples.db"
`)
	configPath := filepath.Join(tempDir, "powerlog.toml")
	require.NoError(t, os.WriteFile(configPath, configContent, 0o600))

	t.Setenv("POWERLOG_CONFIG", configPath)
	setArgs(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/log/battery.csv", cfg.Output)
	assert.Equal(t, 30, cfg.Interval)
	assert.Equal(t, 600, cfg.Time)
	assert.True(t, cfg.NoInterface)
	assert.Equal(t, "/var/lib/powerlog/samples.db", cfg.Database)
	assert.True(t, cfg.TelemetryEnabled())
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configContent := []byte(`
interval = 30
`)
	configPath := filepath.Join(tempDir, "powerlog.toml")
	require.NoError(t, os.WriteFile(configPath, configContent, 0o600))

	t.Setenv("POWERLOG_CONFIG", configPath)
	setArgs(t, "-i", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Interval, "Command line flags win over config file values")
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	tempDir := t.TempDir()
	configContent := []byte(`
This is not a valid TOML file
`)
	configPath := filepath.Join(tempDir, "powerlog.toml")
	require.NoError(t, os.WriteFile(configPath, configContent, 0o600))

	t.Setenv("POWERLOG_CONFIG", configPath)
	setArgs(t)

	_, err := config.Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	battery := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"valid", config.Config{Interval: 60, Battery: battery}, false},
		{"zero interval", config.Config{Interval: 0, Battery: battery}, true},
		{"negative interval", config.Config{Interval: -5, Battery: battery}, true},
		{"negative runtime", config.Config{Interval: 60, Battery: battery, Time: -1}, true},
		{"empty battery", config.Config{Interval: 60}, true},
		{"missing battery dir", config.Config{Interval: 60, Battery: filepath.Join(battery, "nope")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBatteryMustBeDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	cfg := config.Config{Interval: 60, Battery: file}
	assert.Error(t, cfg.Validate())
}

func TestLoggingEnabledPolicy(t *testing.T) {
	assert.False(t, (&config.Config{Output: config.DefaultOutput}).LoggingEnabled(),
		"the built-in default path keeps logging off")
	assert.False(t, (&config.Config{Output: ""}).LoggingEnabled())
	assert.True(t, (&config.Config{Output: "/tmp/battery.csv"}).LoggingEnabled())
}

func TestDetectBattery(t *testing.T) {
	base := t.TempDir()

	ac := filepath.Join(base, "AC")
	require.NoError(t, os.MkdirAll(ac, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ac, "type"), []byte("Mains\n"), 0o644))

	bat := filepath.Join(base, "BAT0")
	require.NoError(t, os.MkdirAll(bat, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bat, "type"), []byte("Battery\n"), 0o644))

	found, ok := config.DetectBattery(base)
	require.True(t, ok)
	assert.Equal(t, bat, found)
}

func TestDetectBatteryByName(t *testing.T) {
	base := t.TempDir()
	bat := filepath.Join(base, "BAT1")
	require.NoError(t, os.MkdirAll(bat, 0o755))

	found, ok := config.DetectBattery(base)
	require.True(t, ok)
	assert.Equal(t, bat, found)
}

func TestDetectBatteryNone(t *testing.T) {
	_, ok := config.DetectBattery(t.TempDir())
	assert.False(t, ok)
}
