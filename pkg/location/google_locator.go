package location

import (
	"context"
	"fmt"
	"time"

	"github.com/benmeehan/locality-agent/pkg/geo"
	"googlemaps.github.io/maps"
)

// GoogleLocatorOptions configures a GoogleLocator.
type GoogleLocatorOptions struct {
	APIKey       string
	BaseURL      string        // override for the Maps API host, empty for the default
	Timeout      time.Duration // bound on the Geolocate request
	RadioTimeout time.Duration // bound on the nmcli/mmcli scans, separate from Timeout
	ScanWiFi     bool          // include nearby access points from nmcli
	ScanCells    bool          // include the serving cell from mmcli
	ModemIndex   int           // mmcli modem index, used only with ScanCells
}

const DefaultRadioTimeout = 2 * time.Second

// GoogleLocator uses the Google Maps Geolocation API to infer a position
// from the public address and, when available, nearby radios.
type GoogleLocator struct {
	client *maps.Client
	opts   GoogleLocatorOptions

	scanWiFi  func(ctx context.Context) ([]maps.WiFiAccessPoint, error)
	scanCells func(ctx context.Context, modemIndex int) ([]maps.CellTower, error)
}

// NewGoogleLocator creates a new GoogleLocator instance.
func NewGoogleLocator(opts GoogleLocatorOptions) (*GoogleLocator, error) {
	clientOpts := []maps.ClientOption{maps.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(opts.BaseURL))
	}

	c, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, err
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultIPTimeout
	}
	if opts.RadioTimeout <= 0 {
		opts.RadioTimeout = DefaultRadioTimeout
	}

	return &GoogleLocator{
		client:    c,
		opts:      opts,
		scanWiFi:  getWiFiAccessPoints,
		scanCells: getCellTowers,
	}, nil
}

// Locate retrieves the position using the Geolocation API.
func (g *GoogleLocator) Locate(ctx context.Context) (Fix, error) {
	req := &maps.GeolocationRequest{ConsiderIP: true}
	g.addRadios(ctx, req)

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	resp, err := g.client.Geolocate(ctx, req)
	if err != nil {
		return Fix{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	c := geo.Coordinate{Latitude: resp.Location.Lat, Longitude: resp.Location.Lng}
	if !c.Valid() {
		return Fix{}, fmt.Errorf("%w: coordinates out of range (%f, %f)", ErrMalformedResponse, c.Latitude, c.Longitude)
	}

	return Fix{
		Coordinate: c,
		Accuracy:   resp.Accuracy,
		Timestamp:  time.Now(),
	}, nil
}

// addRadios enriches req with whatever radio data can be scanned in time.
// Radio data only sharpens the estimate; the address alone is enough.
func (g *GoogleLocator) addRadios(ctx context.Context, req *maps.GeolocationRequest) {
	if !g.opts.ScanWiFi && !g.opts.ScanCells {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, g.opts.RadioTimeout)
	defer cancel()

	if g.opts.ScanWiFi {
		if aps, err := g.scanWiFi(ctx); err == nil {
			req.WiFiAccessPoints = aps
		}
	}
	if g.opts.ScanCells {
		if towers, err := g.scanCells(ctx, g.opts.ModemIndex); err == nil {
			req.CellTowers = towers
		}
	}
}
