package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benmeehan/locality-agent/internal/models"
	"github.com/benmeehan/locality-agent/pkg/location"
	"github.com/benmeehan/locality-agent/pkg/mqtt"
	"github.com/benmeehan/locality-agent/pkg/places"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const publishTimeout = 5 * time.Second

// Detector is the part of the detection workflow the service needs.
type Detector interface {
	Detect(ctx context.Context) location.Result
}

// LocationService periodically detects the current place and publishes it to an MQTT topic.
type LocationService struct {
	// Configuration fields
	topic    string
	interval time.Duration
	qos      int
	clientID string

	// Dependencies
	detector   Detector
	registry   *places.Registry
	mqttClient mqtt.MQTTClient
	logger     zerolog.Logger

	// Internal state management
	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLocationService creates a new LocationService instance with the provided configuration.
func NewLocationService(topic string, interval time.Duration, qos int, clientID string, detector Detector,
	registry *places.Registry, mqttClient mqtt.MQTTClient, logger zerolog.Logger) *LocationService {
	return &LocationService{
		topic:      topic,
		interval:   interval,
		qos:        qos,
		clientID:   clientID,
		detector:   detector,
		registry:   registry,
		mqttClient: mqttClient,
		logger:     logger,
	}
}

// Start publishes the current location immediately and then on every interval.
func (l *LocationService) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.logger.Warn().Msg("LocationService is already running")
		return errors.New("location service is already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.run(ctx)
	}()

	l.logger.Info().
		Str("topic", l.topic).
		Dur("interval", l.interval).
		Int("qos", l.qos).
		Msg("LocationService started")
	return nil
}

// Stop gracefully stops the LocationService, ensuring all goroutines are terminated.
func (l *LocationService) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel == nil {
		l.logger.Warn().Msg("LocationService is not running")
		return errors.New("location service is not running")
	}

	l.cancel()
	l.wg.Wait()
	l.cancel = nil

	l.logger.Info().Msg("LocationService stopped")
	return nil
}

func (l *LocationService) run(ctx context.Context) {
	l.publishOnce(ctx)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.publishOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (l *LocationService) publishOnce(ctx context.Context) {
	if err := l.PublishCurrentLocation(ctx); err != nil {
		l.logger.Error().Err(err).Msg("Failed to publish current location")
	}
}

// PublishCurrentLocation runs detection and publishes the outcome.
func (l *LocationService) PublishCurrentLocation(ctx context.Context) error {
	result := l.detector.Detect(ctx)

	event := models.LocationEvent{
		ID:        uuid.NewString(),
		ClientID:  l.clientID,
		Timestamp: time.Now().UTC(),
		Location:  result.Location,
		Source:    result.Source,
	}
	if place, ok := l.registry.Lookup(result.Location); ok {
		event.Latitude = place.Latitude
		event.Longitude = place.Longitude
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize location event: %w", err)
	}

	token := l.mqttClient.Publish(l.topic, byte(l.qos), true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timed out publishing to %s", l.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", l.topic, err)
	}

	l.logger.Info().
		Str("location", event.Location).
		Str("source", string(event.Source)).
		Str("topic", l.topic).
		Msg("Location published successfully")
	return nil
}
