package models

import (
	"time"

	"github.com/benmeehan/locality-agent/pkg/location"
)

// LocationEvent is published every time the agent settles on a location.
type LocationEvent struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"client_id"`
	Timestamp time.Time       `json:"timestamp"`
	Location  string          `json:"location"`
	Source    location.Source `json:"source"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
}
