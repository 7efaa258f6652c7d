package telemetry

import (
	"context"

	"codeberg.org/mutker/powerlog/internal/sensor"
)

// Collector mirrors battery samples into durable storage.
type Collector interface {
	Record(ctx context.Context, sample *sensor.Sample) error
	Close() error
}

// Repository defines the interface for sample storage.
type Repository interface {
	Store(ctx context.Context, sample *sensor.Sample) error
	Close() error
}
