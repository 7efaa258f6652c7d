package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/mutker/powerlog/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultOutput is a deliberate sentinel: logging stays disabled for the
	// session unless the user names an output file explicitly, so a bare
	// invocation never writes to a generic filename.
	DefaultOutput = "battery_log.csv"

	// DefaultInterval is the tick period in seconds.
	DefaultInterval = 60

	// DefaultPowerSupplyPath is where the kernel exposes power-supply devices.
	DefaultPowerSupplyPath = "/sys/class/power_supply"
)

type Config struct {
	Output      string `mapstructure:"output"`
	Interval    int    `mapstructure:"interval"`
	Battery     string `mapstructure:"battery"`
	Time        int    `mapstructure:"time"`
	NoInterface bool   `mapstructure:"no-interface"`
	Database    string `mapstructure:"database"`
	Debug       bool   `mapstructure:"debug"`
	Verbose     bool   `mapstructure:"verbose"`
}

func Load() (*Config, error) {
	errFactory := errors.New()
	config := &Config{}

	// Define flags
	fs := pflag.NewFlagSet("powerlog", pflag.ExitOnError)
	fs.StringVarP(&config.Output, "output", "o", DefaultOutput, "log file path (logging stays off until set explicitly)")
	fs.IntVarP(&config.Interval, "interval", "i", DefaultInterval, "seconds between samples")
	fs.StringVarP(&config.Battery, "battery", "b", "", "battery sysfs directory (autodetected when empty)")
	fs.IntVarP(&config.Time, "time", "t", 0, "stop after this many seconds (0 runs indefinitely)")
	fs.BoolVar(&config.NoInterface, "no-interface", false, "disable the status display")
	fs.StringVar(&config.Database, "database", "", "mirror samples into a SQLite database at this path")
	fs.BoolVar(&config.Debug, "debug", false, "enable debugging mode")
	fs.BoolVar(&config.Verbose, "verbose", false, "enable verbose logging")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidArgument, err)
	}

	// Load configuration from file
	v := viper.New()
	v.SetConfigName("powerlog")
	v.SetConfigType("toml")
	v.AddConfigPath("/etc")
	if path := os.Getenv("POWERLOG_CONFIG"); path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Flags set on the command line win over config file values
	fs.Visit(func(f *pflag.Flag) {
		v.Set(f.Name, f.Value.String())
	})

	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, err)
	}

	if config.Battery == "" {
		if detected, ok := DetectBattery(DefaultPowerSupplyPath); ok {
			config.Battery = detected
		}
	}

	return config, nil
}

// Validate checks the startup preconditions. A failure here is fatal and
// must be reported before any logging or rendering begins.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}

	if c.Time < 0 {
		return errFactory.WithData(errors.ErrInvalidRuntime, c.Time)
	}

	if c.Battery == "" {
		return errFactory.New(errors.ErrBatteryNotFound)
	}

	info, err := os.Stat(c.Battery)
	if err != nil || !info.IsDir() {
		return errFactory.WithData(errors.ErrInvalidBatteryPath, c.Battery)
	}

	return nil
}

// LoggingEnabled reports whether samples get journaled this session. The
// built-in default path counts as "no output requested".
func (c *Config) LoggingEnabled() bool {
	return c.Output != "" && c.Output != DefaultOutput
}

// TelemetryEnabled reports whether samples get mirrored into SQLite.
func (c *Config) TelemetryEnabled() bool {
	return c.Database != ""
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

// MaxRuntime returns the bounded session length, zero meaning unbounded.
func (c *Config) MaxRuntime() time.Duration {
	return time.Duration(c.Time) * time.Second
}

// DetectBattery returns the first battery device under base. Devices that
// declare their type take precedence; a BAT-prefixed name is accepted when
// no type file is readable.
func DetectBattery(base string) (string, bool) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", false
	}

	for _, entry := range entries {
		path := filepath.Join(base, entry.Name())
		if t, err := os.ReadFile(filepath.Join(path, "type")); err == nil {
			if strings.TrimSpace(string(t)) == "Battery" {
				return path, true
			}
			continue
		}
		if strings.HasPrefix(entry.Name(), "BAT") {
			return path, true
		}
	}

	return "", false
}
