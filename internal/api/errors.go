package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nerrad567/smarthome-core/internal/actuator"
	"github.com/nerrad567/smarthome-core/internal/auth"
	"github.com/nerrad567/smarthome-core/internal/device"
	"github.com/nerrad567/smarthome-core/internal/functionality"
	"github.com/nerrad567/smarthome-core/internal/house"
	"github.com/nerrad567/smarthome-core/internal/room"
	"github.com/nerrad567/smarthome-core/internal/sensor"
	"github.com/nerrad567/smarthome-core/internal/service"
	"github.com/nerrad567/smarthome-core/internal/value"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
	"github.com/nerrad567/smarthome-core/internal/zipcode"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeUnauthorized   = "unauthorised"
	ErrCodeConflict       = "conflict"
	ErrCodeInternal       = "internal_error"
	ErrCodeValidation     = "validation_error"
	ErrCodeDeviceInactive = "device_inactive"
	ErrCodeUnprocessable  = "unprocessable"
	ErrCodeNotConfigured  = "not_configured"
)

// errorMapping pairs sentinel errors with the response they produce.
type errorMapping struct {
	targets []error
	status  int
	code    string
}

var errorMappings = []errorMapping{
	{
		targets: []error{
			house.ErrHouseNotFound, room.ErrRoomNotFound, room.ErrHouseNotFound,
			device.ErrDeviceNotFound, device.ErrRoomNotFound,
			sensor.ErrSensorNotFound, sensor.ErrDeviceNotFound,
			actuator.ErrActuatorNotFound, actuator.ErrDeviceNotFound,
			value.ErrValueNotFound, value.ErrSensorNotFound,
			functionality.ErrFunctionalityNotFound,
		},
		status: http.StatusNotFound,
		code:   ErrCodeNotFound,
	},
	{
		targets: []error{service.ErrDeviceInactive},
		status:  http.StatusConflict,
		code:    ErrCodeDeviceInactive,
	},
	{
		targets: []error{
			house.ErrHouseExists, room.ErrRoomExists, device.ErrDeviceExists,
			sensor.ErrSensorExists, actuator.ErrActuatorExists, value.ErrValueExists,
			functionality.ErrFunctionalityExists,
		},
		status: http.StatusConflict,
		code:   ErrCodeConflict,
	},
	{
		targets: []error{
			service.ErrInvalidInput, zipcode.ErrUnsupportedCountry,
			house.ErrInvalidHouse, room.ErrInvalidRoom, device.ErrInvalidDevice,
			sensor.ErrInvalidSensor, actuator.ErrInvalidActuator, actuator.ErrUnknownKind,
			value.ErrInvalidValue, value.ErrInvalidPeriod, functionality.ErrInvalidFunctionality,
			vo.ErrInvalidID, vo.ErrInvalidDimensions, vo.ErrInvalidModel, vo.ErrInvalidStatus,
			vo.ErrInvalidGPS, vo.ErrInvalidAddress, vo.ErrInvalidLocation, vo.ErrInvalidReading,
			vo.ErrInvalidRange, vo.ErrInvalidProperties,
		},
		status: http.StatusBadRequest,
		code:   ErrCodeValidation,
	},
	{
		targets: []error{service.ErrInvalidMeasurement},
		status:  http.StatusUnprocessableEntity,
		code:    ErrCodeUnprocessable,
	},
	{
		targets: []error{service.ErrNotConfigured},
		status:  http.StatusServiceUnavailable,
		code:    ErrCodeNotConfigured,
	},
	{
		targets: []error{auth.ErrInvalidCredentials, auth.ErrTokenInvalid, auth.ErrTokenExpired},
		status:  http.StatusUnauthorized,
		code:    ErrCodeUnauthorized,
	},
}

// classify returns the status and code for err, or false for errors that
// should be reported as internal.
func classify(err error) (int, string, bool) {
	for _, m := range errorMappings {
		for _, target := range m.targets {
			if errors.Is(err, target) {
				return m.status, m.code, true
			}
		}
	}
	return 0, "", false
}

// writeServiceError maps a service error to a response. Unmapped errors
// are logged and reported as internal with the message what.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, what string) {
	if status, code, ok := classify(err); ok {
		writeError(w, status, code, err.Error())
		return
	}
	s.logger.Error(what,
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", r.Context().Value(ctxKeyRequestID),
	)
	writeInternalError(w, what)
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // best-effort write; the connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{Status: status, Code: code, Message: message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}
