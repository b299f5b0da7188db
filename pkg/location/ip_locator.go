package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/benmeehan/locality-agent/pkg/geo"
)

const (
	DefaultIPEndpoint = "https://ipapi.co/json/"
	DefaultIPTimeout  = 5 * time.Second

	maxResponseBytes = 64 << 10
)

// ipResponse is the subset of an address-geolocation reply we rely on.
// Pointers distinguish a missing field from a zero coordinate.
type ipResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	City      string   `json:"city"`
	Error     bool     `json:"error"`
	Reason    string   `json:"reason"`
}

// IPLocator infers a position from the caller's public address.
type IPLocator struct {
	endpoint string
	client   *http.Client
}

// NewIPLocator creates a locator for endpoint with a bounded request timeout.
func NewIPLocator(endpoint string, timeout time.Duration) *IPLocator {
	if endpoint == "" {
		endpoint = DefaultIPEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultIPTimeout
	}
	return &IPLocator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Locate issues a GET to the endpoint and returns the coordinates it reports.
func (l *IPLocator) Locate(ctx context.Context) (Fix, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return Fix{}, fmt.Errorf("%w: building request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return Fix{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Fix{}, fmt.Errorf("%w: received status code %d", ErrNetwork, resp.StatusCode)
	}

	var body ipResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return Fix{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if body.Error {
		return Fix{}, fmt.Errorf("%w: service reported %q", ErrMalformedResponse, body.Reason)
	}
	if body.Latitude == nil || body.Longitude == nil {
		return Fix{}, fmt.Errorf("%w: missing latitude or longitude", ErrMalformedResponse)
	}

	c := geo.Coordinate{Latitude: *body.Latitude, Longitude: *body.Longitude}
	if !c.Valid() {
		return Fix{}, fmt.Errorf("%w: coordinates out of range (%f, %f)", ErrMalformedResponse, c.Latitude, c.Longitude)
	}

	return Fix{Coordinate: c, Timestamp: time.Now()}, nil
}
