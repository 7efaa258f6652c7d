package sensor

import (
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// DefaultThermalZonePath is the usual location of the primary thermal zone.
const DefaultThermalZonePath = "/sys/class/thermal/thermal_zone0/temp"

// TemperatureSource provides an optional temperature reading in Celsius.
type TemperatureSource interface {
	Read() (float64, bool)
}

// SourceFunc adapts a function to the TemperatureSource interface.
type SourceFunc func() (float64, bool)

func (f SourceFunc) Read() (float64, bool) {
	return f()
}

// ThermalZoneSource reads a sysfs thermal zone, which reports millidegrees.
type ThermalZoneSource struct {
	Path string
}

func (s ThermalZoneSource) Read() (float64, bool) {
	path := s.Path
	if path == "" {
		path = DefaultThermalZonePath
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	raw, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return 0, false
	}

	return float64(raw) / 1000.0, true
}

// HostSensorSource queries the host's temperature sensors via gopsutil,
// preferring a battery sensor when one is reported.
type HostSensorSource struct{}

func (HostSensorSource) Read() (float64, bool) {
	// gopsutil reports partial failures as a non-nil error alongside
	// whatever sensors it could read, so only an empty result is fatal
	stats, _ := host.SensorsTemperatures()
	if len(stats) == 0 {
		return 0, false
	}

	for _, st := range stats {
		if strings.Contains(strings.ToLower(st.SensorKey), "bat") && st.Temperature > 0 {
			return st.Temperature, true
		}
	}

	for _, st := range stats {
		if st.Temperature > 0 {
			return st.Temperature, true
		}
	}

	return 0, false
}

// Fallback tries each source in order and returns the first reading.
type Fallback []TemperatureSource

func (f Fallback) Read() (float64, bool) {
	for _, s := range f {
		if celsius, ok := s.Read(); ok {
			return celsius, true
		}
	}

	return 0, false
}

// DefaultTemperatureSource reads the primary thermal zone and falls back to
// the host sensor list when the zone is absent.
func DefaultTemperatureSource() TemperatureSource {
	return Fallback{
		ThermalZoneSource{},
		HostSensorSource{},
	}
}
