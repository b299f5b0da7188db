package utils

import (
	"time"

	"github.com/benmeehan/locality-agent/internal/detection"
	"github.com/benmeehan/locality-agent/pkg/file"
	"github.com/benmeehan/locality-agent/pkg/location"
)

// Network provider names accepted in the configuration.
const (
	NetworkProviderIP     = "ip"
	NetworkProviderGoogle = "google"
	NetworkProviderNone   = "none"
)

// Config represents the structure of the configuration file.
type Config struct {
	MQTT struct {
		Broker        string `yaml:"broker"`         // MQTT broker address
		ClientID      string `yaml:"client_id"`      // MQTT client ID prefix
		CACertificate string `yaml:"ca_certificate"` // Path to the CA certificate
		Username      string `yaml:"username"`
		Password      string `yaml:"password"`
	} `yaml:"mqtt"`

	PlacesFile string `yaml:"places_file"` // Optional registry override, builtin when empty
	StateFile  string `yaml:"state_file"`  // Where the detected location is persisted

	Detection struct {
		SensorTimeout    time.Duration `yaml:"sensor_timeout"`     // Bound on a GPS read
		SensorMaximumAge time.Duration `yaml:"sensor_maximum_age"` // Reuse a GPS fix younger than this
		NetworkTimeout   time.Duration `yaml:"network_timeout"`    // Bound on the geolocation request
	} `yaml:"detection"`

	Device struct {
		GPSDevicePort     string `yaml:"gps_device_port"` // UNIX port where the GPS sensor is mounted
		GPSDeviceBaudRate int    `yaml:"gps_baud_rate"`   // The baud rate for GPS sensor
	} `yaml:"device"`

	Network struct {
		Provider   string `yaml:"provider"`     // ip, google or none
		Endpoint   string `yaml:"endpoint"`     // Address-geolocation endpoint for the ip provider
		MapsAPIKey string `yaml:"maps_api_key"` // Google maps API key
		ScanWiFi   bool   `yaml:"scan_wifi"`    // Send nearby access points to Google
		ModemIndex *int   `yaml:"modem_index"`  // mmcli modem for cell towers, unset to skip
	} `yaml:"network"`

	Services struct {
		Location struct {
			Enabled  bool          `yaml:"enabled"`  // Enable/disable location publishing
			Topic    string        `yaml:"topic"`    // MQTT topic for location events
			QOS      int           `yaml:"qos"`      // MQTT QoS level for location events
			Interval time.Duration `yaml:"interval"` // Interval between detections
		} `yaml:"location"`
	} `yaml:"services"`
}

// LoadConfig loads the YAML configuration from the specified file.
// It returns a pointer to the Config struct and an error if loading fails.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	err := fileClient.ReadYamlFile(filename, &config)
	if err != nil {
		return nil, err
	}

	config.ApplyDefaults()
	return &config, nil
}

// DefaultConfig returns a configuration usable without a file.
func DefaultConfig() *Config {
	var config Config
	config.ApplyDefaults()
	return &config
}

// ApplyDefaults fills every unset field with its documented default.
func (c *Config) ApplyDefaults() {
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "locality-agent"
	}
	if c.StateFile == "" {
		c.StateFile = "data/location.json"
	}

	defaults := detection.DefaultOptions()
	if c.Detection.SensorTimeout <= 0 {
		c.Detection.SensorTimeout = defaults.SensorTimeout
	}
	if c.Detection.SensorMaximumAge <= 0 {
		c.Detection.SensorMaximumAge = defaults.SensorMaximumAge
	}
	if c.Detection.NetworkTimeout <= 0 {
		c.Detection.NetworkTimeout = defaults.NetworkTimeout
	}

	if c.Device.GPSDeviceBaudRate == 0 {
		c.Device.GPSDeviceBaudRate = 9600
	}

	if c.Network.Provider == "" {
		c.Network.Provider = NetworkProviderIP
	}
	if c.Network.Endpoint == "" {
		c.Network.Endpoint = location.DefaultIPEndpoint
	}

	if c.Services.Location.Topic == "" {
		c.Services.Location.Topic = "locality/location"
	}
	if c.Services.Location.Interval <= 0 {
		c.Services.Location.Interval = 15 * time.Minute
	}
}

// DetectionOptions converts the detection section into workflow options.
func (c *Config) DetectionOptions() detection.Options {
	return detection.Options{
		SensorTimeout:    c.Detection.SensorTimeout,
		SensorMaximumAge: c.Detection.SensorMaximumAge,
		NetworkTimeout:   c.Detection.NetworkTimeout,
	}
}
