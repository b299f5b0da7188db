package detection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benmeehan/locality-agent/pkg/location"
	"github.com/benmeehan/locality-agent/pkg/places"
	"github.com/benmeehan/locality-agent/pkg/store"
	"github.com/rs/zerolog"
)

const (
	DefaultSensorTimeout    = 10 * time.Second
	DefaultSensorMaximumAge = 5 * time.Minute
	DefaultNetworkTimeout   = 5 * time.Second
)

var ErrUnknownLocation = errors.New("location is not in the registry")

// Stage names a step of the detection chain.
type Stage string

const (
	StageCache   Stage = "cache"
	StageDevice  Stage = "device"
	StageNetwork Stage = "network"
	StagePersist Stage = "persist"
)

// StageError records why a stage did not produce a result.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Options holds the explicit bounds of the suspending stages.
type Options struct {
	SensorTimeout    time.Duration
	SensorMaximumAge time.Duration
	NetworkTimeout   time.Duration
}

// DefaultOptions returns the documented bounds.
func DefaultOptions() Options {
	return Options{
		SensorTimeout:    DefaultSensorTimeout,
		SensorMaximumAge: DefaultSensorMaximumAge,
		NetworkTimeout:   DefaultNetworkTimeout,
	}
}

// Detector works out which registry place the user is at: stored result,
// then device sensor, then network lookup, then the registry default.
type Detector struct {
	registry *places.Registry
	store    store.Store
	sensor   location.Sensor  // nil when the device has no positioning capability
	locator  location.Locator // nil when network lookup is disabled
	opts     Options
	logger   zerolog.Logger
}

// NewDetector creates a Detector. sensor and locator may be nil.
func NewDetector(registry *places.Registry, st store.Store, sensor location.Sensor, locator location.Locator,
	opts Options, logger zerolog.Logger) *Detector {
	return &Detector{
		registry: registry,
		store:    st,
		sensor:   sensor,
		locator:  locator,
		opts:     opts,
		logger:   logger,
	}
}

// Detect runs the fallback chain and always returns a registry place.
// Stage failures are logged, never returned.
func (d *Detector) Detect(ctx context.Context) location.Result {
	if result, ok := d.fromStore(ctx); ok {
		d.logger.Debug().
			Str("location", result.Location).
			Str("source", string(result.Source)).
			Msg("Using stored location")
		return result
	}

	result, err := d.fromDevice(ctx)
	if err == nil {
		return result
	}
	d.logFallback(err)

	result, err = d.fromNetwork(ctx)
	if err == nil {
		return result
	}
	d.logFallback(err)

	result = location.Result{Location: d.registry.Default(), Source: location.SourceDefault}
	d.logger.Info().Str("location", result.Location).Msg("Falling back to default location")
	return result
}

// SelectManual stores a user-chosen place, replacing whatever was detected.
func (d *Detector) SelectManual(ctx context.Context, name string) (location.Result, error) {
	if !d.registry.Contains(name) {
		return location.Result{}, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}

	result := location.Result{Location: name, Source: location.SourceManual}
	if err := d.store.Save(ctx, result); err != nil {
		return location.Result{}, &StageError{Stage: StagePersist, Err: err}
	}

	d.logger.Info().Str("location", name).Msg("Manual location selected")
	return result, nil
}

// Reset forgets any stored result so the next Detect starts from scratch.
func (d *Detector) Reset(ctx context.Context) error {
	if err := d.store.Clear(ctx); err != nil {
		return &StageError{Stage: StagePersist, Err: err}
	}
	d.logger.Info().Msg("Stored location cleared")
	return nil
}

func (d *Detector) fromStore(ctx context.Context) (location.Result, bool) {
	result, ok, err := d.store.Load(ctx)
	if err != nil {
		d.logFallback(&StageError{Stage: StageCache, Err: err})
		return location.Result{}, false
	}
	if ok && !d.registry.Contains(result.Location) {
		// Written under a different registry or edited by hand
		d.logFallback(&StageError{Stage: StageCache, Err: fmt.Errorf("%w: stored %q", ErrUnknownLocation, result.Location)})
		return location.Result{}, false
	}
	return result, ok
}

func (d *Detector) fromDevice(ctx context.Context) (location.Result, error) {
	if d.sensor == nil {
		return location.Result{}, &StageError{Stage: StageDevice, Err: location.ErrCapabilityUnavailable}
	}

	fix, err := d.sensor.Position(ctx, location.SensorOptions{
		Timeout:    d.opts.SensorTimeout,
		MaximumAge: d.opts.SensorMaximumAge,
	})
	if err != nil {
		return location.Result{}, &StageError{Stage: StageDevice, Err: err}
	}

	return d.resolveAndPersist(ctx, fix, location.SourceDevice), nil
}

func (d *Detector) fromNetwork(ctx context.Context) (location.Result, error) {
	if d.locator == nil {
		return location.Result{}, &StageError{Stage: StageNetwork, Err: location.ErrCapabilityUnavailable}
	}

	if d.opts.NetworkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.NetworkTimeout)
		defer cancel()
	}

	fix, err := d.locator.Locate(ctx)
	if err != nil {
		return location.Result{}, &StageError{Stage: StageNetwork, Err: err}
	}

	return d.resolveAndPersist(ctx, fix, location.SourceNetwork), nil
}

// resolveAndPersist maps fix onto the registry and stores the outcome. A
// failed write is logged; the resolved result is still returned.
func (d *Detector) resolveAndPersist(ctx context.Context, fix location.Fix, source location.Source) location.Result {
	match := d.registry.Nearest(fix.Coordinate)
	result := location.Result{Location: match.Name, Source: source}

	if err := d.store.Save(ctx, result); err != nil {
		d.logFallback(&StageError{Stage: StagePersist, Err: err})
	}

	d.logger.Info().
		Str("location", result.Location).
		Str("source", string(source)).
		Float64("latitude", fix.Latitude).
		Float64("longitude", fix.Longitude).
		Float64("distance_km", match.DistanceKM).
		Msg("Location detected")
	return result
}

func (d *Detector) logFallback(err error) {
	event := d.logger.Warn()
	if errors.Is(err, location.ErrCapabilityUnavailable) {
		event = d.logger.Debug()
	}

	var stageErr *StageError
	if errors.As(err, &stageErr) {
		event = event.Str("stage", string(stageErr.Stage))
	}
	event.Err(err).Msg("Location detection stage failed")
}
