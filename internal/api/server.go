package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/smarthome-core/internal/audit"
	"github.com/nerrad567/smarthome-core/internal/auth"
	"github.com/nerrad567/smarthome-core/internal/infrastructure/config"
	"github.com/nerrad567/smarthome-core/internal/infrastructure/logging"
	"github.com/nerrad567/smarthome-core/internal/service"
)

// gracefulShutdownTimeout bounds how long Close waits for in-flight requests.
const gracefulShutdownTimeout = 10 * time.Second

// HealthChecker is a dependency whose health is reported by /health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config          config.APIConfig
	WS              config.WebSocketConfig
	Logger          *logging.Logger
	Auth            *auth.Authenticator
	Houses          *service.HouseService
	Rooms           *service.RoomService
	Devices         *service.DeviceService
	Functionalities *service.FunctionalityService
	Sensors         *service.SensorService
	Actuators       *service.ActuatorService
	Blinds          *service.BlindRollerService
	Values          *service.ValueService
	Audit           audit.Repository         // optional; enables the audit trail
	Hub             *Hub                     // optional; created when nil
	Checks          map[string]HealthChecker // optional named dependency checks
	Version         string
}

// Server is the HTTP API server.
type Server struct {
	cfg             config.APIConfig
	wsCfg           config.WebSocketConfig
	logger          *logging.Logger
	auth            *auth.Authenticator
	houses          *service.HouseService
	rooms           *service.RoomService
	devices         *service.DeviceService
	functionalities *service.FunctionalityService
	sensors         *service.SensorService
	actuators       *service.ActuatorService
	blinds          *service.BlindRollerService
	values          *service.ValueService
	audit           audit.Repository
	checks          map[string]HealthChecker
	version         string
	hub             *Hub
	server          *http.Server
	cancel          context.CancelFunc
}

// New creates an API server. It is not listening until Start is called.
func New(deps Deps) (*Server, error) {
	switch {
	case deps.Logger == nil:
		return nil, fmt.Errorf("logger is required")
	case deps.Auth == nil:
		return nil, fmt.Errorf("authenticator is required")
	case deps.Houses == nil || deps.Rooms == nil || deps.Devices == nil || deps.Functionalities == nil:
		return nil, fmt.Errorf("house, room, device and functionality services are required")
	case deps.Sensors == nil || deps.Actuators == nil || deps.Blinds == nil || deps.Values == nil:
		return nil, fmt.Errorf("sensor, actuator, blind and value services are required")
	}

	s := &Server{
		cfg:             deps.Config,
		wsCfg:           deps.WS,
		logger:          deps.Logger,
		auth:            deps.Auth,
		houses:          deps.Houses,
		rooms:           deps.Rooms,
		devices:         deps.Devices,
		functionalities: deps.Functionalities,
		sensors:         deps.Sensors,
		actuators:       deps.Actuators,
		blinds:          deps.Blinds,
		values:          deps.Values,
		audit:           deps.Audit,
		checks:          deps.Checks,
		version:         deps.Version,
		hub:             deps.Hub,
	}
	if s.hub == nil {
		s.hub = NewHub(deps.WS, deps.Logger)
	}
	return s, nil
}

// Hub returns the WebSocket hub, so it can be registered as a publisher
// and value sink before the server starts.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP handler with every route and middleware.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start runs the WebSocket hub and begins listening in the background.
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)
	go s.hub.Run(srvCtx)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS", "address", s.server.Addr, "cert", s.cfg.TLS.CertFile)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close stops the hub and shuts the listener down, waiting up to 10
// seconds for in-flight requests.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck reports whether the server has been started.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}
	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}
