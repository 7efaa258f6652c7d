// Package display renders the live status view. Render is a pure function
// from a Frame to a text block; the caller decides where it goes.
package display

import (
	"fmt"
	"strings"
	"time"

	"codeberg.org/mutker/powerlog/internal/sensor"
)

const (
	// ClearScreen resets the terminal so each frame replaces the previous
	// one instead of scrolling past it.
	ClearScreen = "\033[2J\033[H"

	// ProgressBarWidth is the fixed cell count of the runtime progress bar.
	ProgressBarWidth = 40

	timeLayout = "2006-01-02 15:04:05"
)

// Frame carries everything one render needs. It is assembled fresh each tick
// and never shared across ticks.
type Frame struct {
	LogPath        string
	LoggingEnabled bool
	LogSize        int64
	HasLogSize     bool
	Interval       time.Duration
	BatteryPath    string
	StartTime      time.Time
	Sample         sensor.Sample
	Elapsed        time.Duration
	MaxRuntime     time.Duration
}

// Render produces a full snapshot of the session state.
func Render(f Frame) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("powerlog · battery telemetry monitor"))
	b.WriteString("\n\n")

	logValue := f.LogPath
	if !f.LoggingEnabled {
		logValue = "disabled (pass -o to enable)"
	}
	writeRow(&b, "Log file", logValue)
	writeRow(&b, "Interval", fmt.Sprintf("%ds", int(f.Interval/time.Second)))
	writeRow(&b, "Battery", f.BatteryPath)
	writeRow(&b, "Started", f.StartTime.Format(timeLayout))
	if f.LoggingEnabled && f.HasLogSize {
		writeRow(&b, "Log size", fmt.Sprintf("%d bytes", f.LogSize))
	}
	b.WriteString("\n")

	s := f.Sample
	writeRow(&b, "Current", metricRow(s.Current, "µA"))
	writeRow(&b, "Voltage", metricRow(s.Voltage, "µV"))
	writeRow(&b, "Capacity", metricRow(s.Capacity, "%"))
	writeRow(&b, "Charge", metricRow(s.Charge, "µAh"))
	writeRow(&b, "Temperature", temperatureRow(s.Temperature))
	writeRow(&b, "Status", s.Status)
	writeRow(&b, "Charging", chargingRow(s.Charging))
	b.WriteString("\n")

	if f.MaxRuntime > 0 {
		b.WriteString(ProgressBar(f.Elapsed, f.MaxRuntime))
		b.WriteString("\n")
		writeRow(&b, "Remaining", FormatCountdown(f.MaxRuntime-f.Elapsed))
	} else {
		b.WriteString("running indefinitely, stop to cancel\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("press Ctrl+C to stop"))
	b.WriteString("\n")

	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-13s", label+":")))
	b.WriteString(" ")
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

func metricRow(m sensor.Metric, unit string) string {
	if !m.Valid {
		return sensor.Unavailable
	}

	return fmt.Sprintf("%d %s", m.Value, unit)
}

func temperatureRow(t sensor.Temperature) string {
	if !t.Valid {
		return sensor.Unavailable
	}

	return fmt.Sprintf("%.1f °C", t.Celsius)
}

func chargingRow(charging bool) string {
	if charging {
		return chargingStyle.Render("yes")
	}

	return "no"
}

// ProgressBar renders a fixed-width proportional bar. The filled cell count
// is floor(width * elapsed / max); the loop terminates before elapsed can
// exceed max, so the bar never overflows.
func ProgressBar(elapsed, maxRuntime time.Duration) string {
	filled := int(int64(ProgressBarWidth) * int64(elapsed) / int64(maxRuntime))
	if filled > ProgressBarWidth {
		filled = ProgressBarWidth
	}

	return "[" +
		barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", ProgressBarWidth-filled)) +
		"]"
}

// FormatCountdown renders a remaining duration as MM:SS.
func FormatCountdown(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining / time.Second)

	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
