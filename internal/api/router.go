package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware())
	r.Use(middleware.RequestSize(maxRequestBodySize))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/house", s.handleGetHouse)
			r.Put("/house/location", s.handleConfigureLocation)

			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", s.handleListRooms)
				r.Post("/", s.handleCreateRoom)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetRoom)
					r.Patch("/", s.handleEditRoom)
					r.Get("/devices", s.handleListRoomDevices)
				})
			})

			r.Route("/devices", func(r chi.Router) {
				r.Get("/", s.handleListDevices)
				r.Post("/", s.handleCreateDevice)
				r.Get("/by-functionality", s.handleDevicesByFunctionality)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetDevice)
					r.Post("/deactivate", s.handleDeactivateDevice)
					r.Get("/sensors", s.handleListDeviceSensors)
					r.Post("/sensors", s.handleCreateSensor)
					r.Get("/actuators", s.handleListDeviceActuators)
					r.Post("/actuators", s.handleCreateActuator)
					r.Get("/measurements", s.handleDeviceMeasurements)
					r.Get("/measurements/last", s.handleLastMeasurement)
					r.Put("/blind", s.handleSetBlind)
				})
			})

			r.Get("/blinds", s.handleListBlinds)

			r.Route("/functionalities", func(r chi.Router) {
				r.Get("/sensors", s.handleListSensorFunctionalities)
				r.Get("/actuators", s.handleListActuatorFunctionalities)
			})

			r.Route("/actuators/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetActuator)
				r.Put("/target", s.handleSetTarget)
			})

			r.Route("/sensors/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSensor)
				r.Get("/values", s.handleListValues)
				r.Post("/values", s.handleRecordValue)
			})

			r.Get("/energy/peak-power", s.handlePeakPower)
			r.Get("/audit", s.handleListAudit)
		})

		// Browsers cannot set headers on an upgrade, so the handler also
		// accepts the token as a query parameter.
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}
