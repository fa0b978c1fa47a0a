// Tonraum Core - Voice Assistant Music Control
//
// This is the main entry point for the Tonraum Core application.
// Tonraum bridges a hermes-speaking voice front end with Logitech
// Media Server players and per-site satellite agents over MQTT:
//   - Intent handling for music, podcast and radio playback
//   - Device bring-up orchestration (bluetooth, squeezelite services)
//   - Multi-room sync and transfer between sites
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tonraum/tonraum-core/internal/actions"
	"github.com/tonraum/tonraum-core/internal/api"
	"github.com/tonraum/tonraum-core/internal/assistant"
	"github.com/tonraum/tonraum-core/internal/hermes"
	"github.com/tonraum/tonraum-core/internal/infrastructure/config"
	"github.com/tonraum/tonraum-core/internal/infrastructure/database"
	"github.com/tonraum/tonraum-core/internal/infrastructure/influxdb"
	"github.com/tonraum/tonraum-core/internal/infrastructure/logging"
	"github.com/tonraum/tonraum-core/internal/infrastructure/mqtt"
	"github.com/tonraum/tonraum-core/internal/lms"
	"github.com/tonraum/tonraum-core/internal/readiness"
	"github.com/tonraum/tonraum-core/internal/site"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Tonraum Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open the snapshot database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	repo, err := site.NewSQLiteRepository(db.DB)
	if err != nil {
		return fmt.Errorf("initialising snapshot repository: %w", err)
	}

	// Media server client. Connectivity is probed lazily per request, so
	// construction never fails; an unreachable server surfaces as spoken
	// errors until it comes back.
	lmsServer := lms.NewServer(lms.Config{
		Host:     cfg.LMS.Host,
		Port:     cfg.LMS.Port,
		Username: cfg.LMS.Username,
		Password: cfg.LMS.Password,
	})
	log.Info("media server client initialised", "host", cfg.LMS.Host, "port", cfg.LMS.Port)

	// Site registry; players are lazily bound to the media server.
	registry := site.NewRegistry(func(mac, name string) site.Player {
		return lmsServer.Player(mac, name)
	})
	registry.SetLogger(log)

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	mqttClient.SetLogger(log)
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	var events assistant.EventRecorder
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		events = influxdb.NewRecorder(influxClient)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Assemble the voice pipeline. The orchestrator and the action
	// handlers reference each other, so the dispatcher is wired after
	// both exist.
	qos := byte(cfg.MQTT.QoS)
	dialogue := hermes.NewDialogue(mqttClient, qos)

	orch := readiness.NewOrchestrator(registry, lmsServer, mqttClient, dialogue, qos)
	orch.SetLogger(log)

	handlers := actions.NewHandlers(registry, lmsServer, orch)
	handlers.SetLogger(log)
	orch.SetDispatcher(handlers)

	asst := assistant.New(assistant.Config{
		Username: cfg.Assistant.Username,
		QoS:      qos,
	}, mqttClient, registry, orch, handlers, dialogue, repo, events)
	asst.SetLogger(log)

	if err := asst.Start(ctx); err != nil {
		return fmt.Errorf("starting assistant: %w", err)
	}
	log.Info("assistant started", "username", cfg.Assistant.Username)

	// Start REST API (if enabled)
	if cfg.API.Enabled {
		apiServer, apiErr := api.New(api.Deps{
			Config:   cfg.API,
			Logger:   log,
			Registry: registry,
			MQTT:     mqttClient,
			Version:  version,
		})
		if apiErr != nil {
			return fmt.Errorf("creating API server: %w", apiErr)
		}
		if startErr := apiServer.Start(ctx); startErr != nil {
			return fmt.Errorf("starting API server: %w", startErr)
		}
		defer func() {
			log.Info("stopping API server")
			if closeErr := apiServer.Close(); closeErr != nil {
				log.Error("error closing API server", "error", closeErr)
			}
		}()
		log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)
	} else {
		log.Info("API server disabled")
	}

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server (if enabled)
	// 2. InfluxDB (if enabled)
	// 3. MQTT
	// 4. Database

	log.Info("Tonraum Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses TONRAUM_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("TONRAUM_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
// influxClient may be nil when history recording is disabled.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	// The media server is probed lazily; an unreachable LMS is reported
	// through spoken errors rather than failing startup.

	return nil
}
