package service_registry

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/benmeehan/locality-agent/internal/mocks"
	"github.com/benmeehan/locality-agent/internal/utils"
	"github.com/benmeehan/locality-agent/pkg/file"
	"github.com/benmeehan/locality-agent/pkg/location"
	"github.com/benmeehan/locality-agent/pkg/places"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	name     string
	startErr error
	log      *[]string
}

func (r *recordingService) Start() error {
	if r.startErr != nil {
		return r.startErr
	}
	*r.log = append(*r.log, "start "+r.name)
	return nil
}

func (r *recordingService) Stop() error {
	*r.log = append(*r.log, "stop "+r.name)
	return nil
}

func TestServiceRegistry_StartStopOrder(t *testing.T) {
	var log []string
	sr := NewServiceRegistry(nil, zerolog.Nop())
	sr.RegisterService("a", &recordingService{name: "a", log: &log})
	sr.RegisterService("b", &recordingService{name: "b", log: &log})
	sr.RegisterService("a", &recordingService{name: "dup", log: &log})

	require.NoError(t, sr.StartServices())
	require.NoError(t, sr.StopServices())

	assert.Equal(t, []string{"a", "b"}, sr.Names())
	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}

func TestServiceRegistry_StartFailureRollsBack(t *testing.T) {
	var log []string
	sr := NewServiceRegistry(nil, zerolog.Nop())
	sr.RegisterService("a", &recordingService{name: "a", log: &log})
	sr.RegisterService("b", &recordingService{name: "b", log: &log, startErr: errors.New("boom")})

	assert.EqualError(t, sr.StartServices(), "boom")
	assert.Equal(t, []string{"start a", "stop a"}, log)
}

func TestRegisterServices(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.Services.Location.Enabled = true

	sr := NewServiceRegistry(new(mocks.MockMQTTClient), zerolog.Nop())
	require.NoError(t, sr.RegisterServices(cfg, nil, places.Builtin()))
	assert.Equal(t, []string{"location"}, sr.Names())

	withoutBroker := NewServiceRegistry(nil, zerolog.Nop())
	assert.Error(t, withoutBroker.RegisterServices(cfg, nil, places.Builtin()))

	cfg.Services.Location.Enabled = false
	disabled := NewServiceRegistry(nil, zerolog.Nop())
	require.NoError(t, disabled.RegisterServices(cfg, nil, places.Builtin()))
	assert.Empty(t, disabled.Names())
}

func TestNewLocator(t *testing.T) {
	cfg := utils.DefaultConfig()

	locator, err := NewLocator(cfg)
	require.NoError(t, err)
	assert.IsType(t, &location.IPLocator{}, locator)

	cfg.Network.Provider = utils.NetworkProviderGoogle
	cfg.Network.MapsAPIKey = "AIza-example"
	locator, err = NewLocator(cfg)
	require.NoError(t, err)
	assert.IsType(t, &location.GoogleLocator{}, locator)

	cfg.Network.MapsAPIKey = ""
	_, err = NewLocator(cfg)
	assert.Error(t, err)

	cfg.Network.Provider = utils.NetworkProviderNone
	locator, err = NewLocator(cfg)
	require.NoError(t, err)
	assert.Nil(t, locator)

	cfg.Network.Provider = "carrier-pigeon"
	_, err = NewLocator(cfg)
	assert.Error(t, err)
}

func TestNewDetector_OfflineFallsBackToDefault(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.Network.Provider = utils.NetworkProviderNone
	cfg.StateFile = filepath.Join(t.TempDir(), "location.json")

	fileClient := file.NewFileService()
	registry, err := LoadRegistry(cfg, fileClient)
	require.NoError(t, err)

	detector, err := NewDetector(cfg, registry, fileClient, zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, location.Result{Location: places.DefaultPlace, Source: location.SourceDefault}, detector.Detect(ctx))

	_, err = detector.SelectManual(ctx, "Schenectady, NY")
	require.NoError(t, err)
	assert.Equal(t, location.SourceManual, detector.Detect(ctx).Source)

	exists, err := fileClient.IsFileExists(cfg.StateFile)
	require.NoError(t, err)
	assert.True(t, exists)
}
