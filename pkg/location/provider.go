package location

import (
	"context"
	"errors"
	"time"

	"github.com/benmeehan/locality-agent/pkg/geo"
)

// Failure classes reported by sensors and locators. Every one of them is
// recoverable: the detection workflow moves on to its next fallback.
var (
	ErrCapabilityUnavailable = errors.New("location capability unavailable")
	ErrDeniedOrTimedOut      = errors.New("location request denied or timed out")
	ErrNetwork               = errors.New("location network request failed")
	ErrMalformedResponse     = errors.New("malformed location response")
)

// Fix is a position reading together with its estimated accuracy.
type Fix struct {
	geo.Coordinate
	Accuracy  float64
	Timestamp time.Time
}

// SensorOptions bounds a single device position request.
type SensorOptions struct {
	Timeout    time.Duration // how long to wait for a fresh fix
	MaximumAge time.Duration // a cached fix younger than this is returned immediately
}

// Sensor is a device positioning capability, e.g. a GPS receiver.
type Sensor interface {
	Position(ctx context.Context, opts SensorOptions) (Fix, error)
}

// Locator infers a position from the network.
type Locator interface {
	Locate(ctx context.Context) (Fix, error)
}
