package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/benmeehan/locality-agent/internal/detection"
	"github.com/benmeehan/locality-agent/internal/service_registry"
	"github.com/benmeehan/locality-agent/internal/utils"
	"github.com/benmeehan/locality-agent/pkg/file"
	"github.com/benmeehan/locality-agent/pkg/geo"
	"github.com/benmeehan/locality-agent/pkg/mqtt"
	"github.com/benmeehan/locality-agent/pkg/places"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// resolveCmd maps coordinates to the nearest registry place
var resolveCmd = &cobra.Command{
	Use:   "resolve -- LATITUDE LONGITUDE",
	Short: "Print the registry place nearest to a coordinate",
	Long: `Print the registry place nearest to a coordinate and its distance.

Negative values look like flags, so separate the coordinates with "--":
  locality resolve -- 6.80 -58.16`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: %w", args[0], err)
		}
		lon, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: %w", args[1], err)
		}

		registry, err := loadRegistry()
		if err != nil {
			return err
		}

		match := registry.Nearest(geo.Coordinate{Latitude: lat, Longitude: lon})
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f km\n", match.Name, match.DistanceKM)
		return nil
	},
}

// placesCmd lists the registry
var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "List the places in the registry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry()
		if err != nil {
			return err
		}
		for _, p := range registry.Places() {
			marker := " "
			if p.Name == registry.Default() {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-40s %9.4f %9.4f\n", marker, p.Name, p.Latitude, p.Longitude)
		}
		return nil
	},
}

// detectCmd runs the detection workflow once
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the current place",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		detector, err := buildDetector()
		if err != nil {
			return err
		}
		result := detector.Detect(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", result.Location, result.Source)
		return nil
	},
}

// selectCmd stores a manual selection
var selectCmd = &cobra.Command{
	Use:   "select PLACE",
	Short: "Remember a place chosen by the user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detector, err := buildDetector()
		if err != nil {
			return err
		}
		result, err := detector.SelectManual(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", result.Location, result.Source)
		return nil
	},
}

// resetCmd forgets the stored place
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored place so the next detection starts over",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		detector, err := buildDetector()
		if err != nil {
			return err
		}
		return detector.Reset(cmd.Context())
	},
}

// serveCmd runs the publishing services until interrupted
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Detect periodically and publish the place over MQTT",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func loadConfig() (*utils.Config, file.FileOperations, error) {
	fileClient := file.NewFileService()

	exists, err := fileClient.IsFileExists(configPath)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		logger.Debug().Str("path", configPath).Msg("Configuration file not found, using defaults")
		return utils.DefaultConfig(), fileClient, nil
	}

	config, err := utils.LoadConfig(configPath, fileClient)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return config, fileClient, nil
}

// loadSetup reads the configuration and the registry it points at
func loadSetup() (*utils.Config, file.FileOperations, *places.Registry, error) {
	config, fileClient, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	registry, err := service_registry.LoadRegistry(config, fileClient)
	if err != nil {
		return nil, nil, nil, err
	}
	return config, fileClient, registry, nil
}

func loadRegistry() (*places.Registry, error) {
	_, _, registry, err := loadSetup()
	return registry, err
}

func buildDetector() (*detection.Detector, error) {
	config, fileClient, registry, err := loadSetup()
	if err != nil {
		return nil, err
	}
	return service_registry.NewDetector(config, registry, fileClient, logger)
}

func runServe(cmd *cobra.Command, args []string) error {
	config, fileClient, registry, err := loadSetup()
	if err != nil {
		return err
	}

	detector, err := service_registry.NewDetector(config, registry, fileClient, logger)
	if err != nil {
		return err
	}

	// Generate a unique MQTT Client ID by appending a UUID
	config.MQTT.ClientID = config.MQTT.ClientID + "-" + uuid.New().String()
	logger.Info().Str("client_id", config.MQTT.ClientID).Msg("Using MQTT Client ID")

	mqttClient := mqtt.NewMqttService(fileClient)
	err = mqttClient.Initialize(mqtt.Options{
		Broker:        config.MQTT.Broker,
		ClientID:      config.MQTT.ClientID,
		CACertificate: config.MQTT.CACertificate,
		Username:      config.MQTT.Username,
		Password:      config.MQTT.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize MQTT connection: %w", err)
	}
	defer mqttClient.Disconnect(250)

	serviceRegistry := service_registry.NewServiceRegistry(mqttClient, logger)
	if err := serviceRegistry.RegisterServices(config, detector, registry); err != nil {
		return err
	}
	if err := serviceRegistry.StartServices(); err != nil {
		return err
	}
	logger.Info().Msg("All services started successfully")

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info().Msg("Shutting down gracefully...")
	return serviceRegistry.StopServices()
}
