package service_registry

import (
	"fmt"

	"github.com/benmeehan/locality-agent/internal/detection"
	"github.com/benmeehan/locality-agent/internal/utils"
	"github.com/benmeehan/locality-agent/pkg/file"
	"github.com/benmeehan/locality-agent/pkg/location"
	"github.com/benmeehan/locality-agent/pkg/places"
	"github.com/benmeehan/locality-agent/pkg/store"
	"github.com/rs/zerolog"
)

// LoadRegistry returns the configured place registry, or the builtin one.
func LoadRegistry(config *utils.Config, fileClient file.FileOperations) (*places.Registry, error) {
	if config.PlacesFile == "" {
		return places.Builtin(), nil
	}
	return places.LoadRegistry(config.PlacesFile, fileClient)
}

// NewLocator builds the network locator named in the configuration. It
// returns nil when network lookup is disabled.
func NewLocator(config *utils.Config) (location.Locator, error) {
	switch config.Network.Provider {
	case utils.NetworkProviderIP:
		return location.NewIPLocator(config.Network.Endpoint, config.Detection.NetworkTimeout), nil
	case utils.NetworkProviderGoogle:
		opts := location.GoogleLocatorOptions{
			APIKey:   config.Network.MapsAPIKey,
			Timeout:  config.Detection.NetworkTimeout,
			ScanWiFi: config.Network.ScanWiFi,
		}
		if config.Network.ModemIndex != nil {
			opts.ScanCells = true
			opts.ModemIndex = *config.Network.ModemIndex
		}
		locator, err := location.NewGoogleLocator(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google geolocation locator: %w", err)
		}
		return locator, nil
	case utils.NetworkProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown network provider %q", config.Network.Provider)
	}
}

// NewDetector wires the detection workflow from configuration.
func NewDetector(config *utils.Config, registry *places.Registry, fileClient file.FileOperations,
	logger zerolog.Logger) (*detection.Detector, error) {
	locator, err := NewLocator(config)
	if err != nil {
		return nil, err
	}

	var sensor location.Sensor
	if config.Device.GPSDevicePort != "" {
		sensor = location.NewGPSSensor(config.Device.GPSDevicePort, config.Device.GPSDeviceBaudRate)
	}

	st := store.NewFileStore(config.StateFile, fileClient)

	return detection.NewDetector(registry, st, sensor, locator, config.DetectionOptions(),
		logger.With().Str("component", "detection").Logger()), nil
}
