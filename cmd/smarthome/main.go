// Smart home core service.
//
// The service keeps the house model (rooms, devices, sensors, actuators)
// in SQLite, serves it over a REST and WebSocket API, and optionally
// ingests readings from MQTT and exports them to InfluxDB.
//
// Usage:
//
//	smarthome                        run the service
//	smarthome hash-password <secret> print an argon2id hash for security.admin.password_hash
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nerrad567/smarthome-core/migrations"

	"github.com/nerrad567/smarthome-core/internal/actuator"
	"github.com/nerrad567/smarthome-core/internal/api"
	"github.com/nerrad567/smarthome-core/internal/audit"
	"github.com/nerrad567/smarthome-core/internal/auth"
	"github.com/nerrad567/smarthome-core/internal/device"
	"github.com/nerrad567/smarthome-core/internal/functionality"
	"github.com/nerrad567/smarthome-core/internal/house"
	"github.com/nerrad567/smarthome-core/internal/infrastructure/config"
	"github.com/nerrad567/smarthome-core/internal/infrastructure/database"
	"github.com/nerrad567/smarthome-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/smarthome-core/internal/infrastructure/logging"
	"github.com/nerrad567/smarthome-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/smarthome-core/internal/room"
	"github.com/nerrad567/smarthome-core/internal/sensor"
	"github.com/nerrad567/smarthome-core/internal/service"
	"github.com/nerrad567/smarthome-core/internal/telemetry"
	"github.com/nerrad567/smarthome-core/internal/telemetry/metrics"
	"github.com/nerrad567/smarthome-core/internal/value"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
	"github.com/nerrad567/smarthome-core/internal/zipcode"
)

// Version information, set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

var errUsage = errors.New("usage: smarthome hash-password <password>")

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := hashPassword(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// hashPassword writes the argon2id hash of args[0] to w.
func hashPassword(args []string, w io.Writer) error {
	if len(args) != 1 || args[0] == "" {
		return errUsage
	}
	hash, err := auth.HashPassword(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, hash)
	return err
}

// run wires every component and blocks until ctx is cancelled. Deferred
// closers run in reverse order of start-up.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting smart home core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded", "path", configPath, "level", cfg.Logging.Level)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database ready", "path", cfg.Database.Path)

	metrics.Init()

	svc, err := buildServices(ctx, cfg, db, log)
	if err != nil {
		return err
	}

	checks := map[string]api.HealthChecker{"database": db}

	if cfg.MQTT.Enabled {
		client, mqttErr := startMQTT(cfg, svc, log)
		if mqttErr != nil {
			return mqttErr
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := client.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		checks["mqtt"] = client
	} else {
		log.Info("MQTT disabled")
	}

	if cfg.InfluxDB.Enabled {
		client, influxErr := startInflux(ctx, cfg, svc, log)
		if influxErr != nil {
			return influxErr
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := client.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		checks["influxdb"] = client
	} else {
		log.Info("InfluxDB disabled")
	}

	server, err := api.New(api.Deps{
		Config:          cfg.API,
		WS:              cfg.WebSocket,
		Logger:          log.Component("api"),
		Auth:            auth.NewAuthenticator(cfg.Security.Admin.Username, cfg.Security.Admin.PasswordHash, cfg.Security.JWT.Secret, cfg.AccessTokenTTL()),
		Houses:          svc.houses,
		Rooms:           svc.rooms,
		Devices:         svc.devices,
		Functionalities: svc.functionalities,
		Sensors:         svc.sensors,
		Actuators:       svc.actuators,
		Blinds:          svc.blinds,
		Values:          svc.values,
		Audit:           svc.audit,
		Checks:          checks,
		Version:         version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	svc.actuators.AddPublisher(server.Hub())
	svc.actuators.AddPublisher(audit.NewTrail(svc.audit))
	svc.values.AddSink(server.Hub())

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error stopping API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()
	log.Info("shutdown signal received, cleaning up")
	return nil
}

type services struct {
	houses          *service.HouseService
	rooms           *service.RoomService
	devices         *service.DeviceService
	functionalities *service.FunctionalityService
	sensors         *service.SensorService
	actuators       *service.ActuatorService
	blinds          *service.BlindRollerService
	values          *service.ValueService
	audit           *audit.SQLiteRepository
}

// buildServices creates the repositories and services, loads the device
// cache and makes sure the configured house exists.
func buildServices(ctx context.Context, cfg *config.Config, db *database.DB, log *logging.Logger) (*services, error) {
	houseID, err := vo.NewHouseID(cfg.House.ID)
	if err != nil {
		return nil, fmt.Errorf("house.id: %w", err)
	}
	zips, err := zipcode.Default().Select(cfg.ZipCode.Countries)
	if err != nil {
		return nil, fmt.Errorf("zipcode.countries: %w", err)
	}
	energy := service.EnergySettings{Cadence: cfg.GridMeterCadence()}
	if cfg.Energy.GridMeterDeviceID != "" {
		if energy.GridMeter, err = vo.NewDeviceID(cfg.Energy.GridMeterDeviceID); err != nil {
			return nil, fmt.Errorf("energy.grid_meter_device_id: %w", err)
		}
	}

	roomRepo := room.NewSQLiteRepository(db.DB)
	sensorRepo := sensor.NewSQLiteRepository(db.DB)
	actuatorRepo := actuator.NewSQLiteRepository(db.DB)
	catalogue := functionality.NewSQLiteRepository(db.DB)

	registry := device.NewRegistry(device.NewSQLiteRepository(db.DB))
	registry.SetLogger(log.Component("device"))
	if err := registry.RefreshCache(ctx); err != nil {
		return nil, fmt.Errorf("loading device registry: %w", err)
	}
	metrics.SetDevicesActive(registry.GetStats().ByStatus[vo.StatusActive])
	log.Info("device registry initialised", "devices", registry.GetDeviceCount())

	svc := &services{
		houses:          service.NewHouseService(house.NewSQLiteRepository(db.DB, zips), zips, houseID),
		rooms:           service.NewRoomService(roomRepo, houseID),
		devices:         service.NewDeviceService(registry, roomRepo, sensorRepo, actuatorRepo),
		functionalities: service.NewFunctionalityService(catalogue),
		sensors:         service.NewSensorService(sensorRepo, registry, catalogue),
		actuators:       service.NewActuatorService(actuatorRepo, registry, catalogue),
		values:          service.NewValueService(value.NewSQLiteRepository(db.DB), sensorRepo, registry, catalogue, energy),
	}
	svc.audit = audit.NewSQLiteRepository(db.DB)
	svc.blinds = service.NewBlindRollerService(svc.actuators, actuatorRepo, registry)

	svc.houses.SetLogger(log.Component("house"))
	svc.rooms.SetLogger(log.Component("room"))
	svc.devices.SetLogger(log.Component("device"))
	svc.sensors.SetLogger(log.Component("sensor"))
	svc.actuators.SetLogger(log.Component("actuator"))
	svc.values.SetLogger(log.Component("value"))

	h, err := svc.houses.EnsureHouse(ctx)
	if err != nil {
		return nil, fmt.Errorf("ensuring house: %w", err)
	}
	log.Info("house ready", "id", h.ID().String(), "name", cfg.House.Name)
	return svc, nil
}

// startMQTT connects to the broker and starts the reading bridge.
// Accepted actuator targets are published back as retained messages.
func startMQTT(cfg *config.Config, svc *services, log *logging.Logger) (*mqtt.Client, error) {
	client, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return nil, fmt.Errorf("connecting to MQTT: %w", err)
	}
	client.SetLogger(log.Component("mqtt"))
	client.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	client.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	bridge := telemetry.NewBridge(client, client.Topics(), svc.values, byte(cfg.MQTT.QoS))
	bridge.SetLogger(log.Component("telemetry"))
	if err := bridge.Start(); err != nil {
		client.Close() //nolint:errcheck // best effort on error path
		return nil, fmt.Errorf("starting MQTT bridge: %w", err)
	}
	svc.actuators.AddPublisher(bridge)
	return client, nil
}

// startInflux connects to InfluxDB and exports readings and targets.
func startInflux(ctx context.Context, cfg *config.Config, svc *services, log *logging.Logger) (*influxdb.Client, error) {
	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
	if err != nil {
		return nil, fmt.Errorf("connecting to InfluxDB: %w", err)
	}
	client.SetOnError(func(err error) {
		log.Error("InfluxDB write error", "error", err)
	})
	log.Info("InfluxDB connected",
		"url", cfg.InfluxDB.URL,
		"org", cfg.InfluxDB.Org,
		"bucket", cfg.InfluxDB.Bucket,
	)

	sink := telemetry.NewInfluxSink(client)
	svc.values.AddSink(sink)
	svc.actuators.AddPublisher(sink)
	return client, nil
}

// getConfigPath returns SMARTHOME_CONFIG, or the default path.
func getConfigPath() string {
	if path := os.Getenv("SMARTHOME_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
