package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/smarthome-core/internal/audit"
	"github.com/nerrad567/smarthome-core/internal/sensor"
	"github.com/nerrad567/smarthome-core/internal/service"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

type createDeviceRequest struct {
	RoomID string `json:"room_id"`
	Model  string `json:"model"`
}

// handleListDevices returns every device of the house, or the devices of
// one room when room_id is given.
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("room_id"); raw != "" {
		roomID, ok := parseID(w, raw, vo.NewRoomID)
		if !ok {
			return
		}
		devices, err := s.devices.ListByRoom(r.Context(), roomID)
		if err != nil {
			s.writeServiceError(w, r, err, "failed to list devices")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"devices": newDeviceViews(devices), "count": len(devices)})
		return
	}

	devices, err := s.devices.ListInHouse(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "failed to list devices")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"devices": newDeviceViews(devices), "count": len(devices)})
}

func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var req createDeviceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	roomID, ok := parseID(w, req.RoomID, vo.NewRoomID)
	if !ok {
		return
	}
	d, err := s.devices.Add(r.Context(), roomID, req.Model)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to create device")
		return
	}
	writeJSON(w, http.StatusCreated, newDeviceView(d))
}

func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewDeviceID)
	if !ok {
		return
	}
	d, err := s.devices.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to get device")
		return
	}
	writeJSON(w, http.StatusOK, newDeviceView(d))
}

// handleDeactivateDevice deactivates a device. changed is false when it
// was already deactivated.
func (s *Server) handleDeactivateDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewDeviceID)
	if !ok {
		return
	}
	changed, err := s.devices.Deactivate(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to deactivate device")
		return
	}
	d, err := s.devices.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to get device")
		return
	}
	if changed {
		s.recordAudit(r.Context(), audit.Entry{
			Action:     audit.ActionDeactivate,
			EntityType: audit.EntityDevice,
			EntityID:   id.String(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"changed": changed, "device": newDeviceView(d)})
}

// handleDevicesByFunctionality maps functionality ids to rooms to device ids.
func (s *Server) handleDevicesByFunctionality(w http.ResponseWriter, r *http.Request) {
	grouped, err := s.devices.GroupedByFunctionality(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "failed to group devices")
		return
	}

	out := make(map[string]map[string][]string, len(grouped))
	for fn, rooms := range grouped {
		byRoom := make(map[string][]string, len(rooms))
		for roomID, ids := range rooms {
			names := make([]string, 0, len(ids))
			for _, id := range ids {
				names = append(names, id.String())
			}
			byRoom[roomID.String()] = names
		}
		out[fn] = byRoom
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListDeviceSensors(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewDeviceID)
	if !ok {
		return
	}
	var (
		sensors []*sensor.Sensor
		err     error
	)
	if raw := r.URL.Query().Get("functionality"); raw != "" {
		fid, ok := parseID(w, raw, vo.NewSensorFunctionalityID)
		if !ok {
			return
		}
		sensors, err = s.sensors.ListByDeviceAndFunctionality(r.Context(), id, fid)
	} else {
		sensors, err = s.sensors.ListByDevice(r.Context(), id)
	}
	if err != nil {
		s.writeServiceError(w, r, err, "failed to list sensors")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sensors": newSensorViews(sensors), "count": len(sensors)})
}

type createSensorRequest struct {
	FunctionalityID string `json:"functionality_id"`
}

func (s *Server) handleCreateSensor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewDeviceID)
	if !ok {
		return
	}
	var req createSensorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	fid, ok := parseID(w, req.FunctionalityID, vo.NewSensorFunctionalityID)
	if !ok {
		return
	}
	sn, err := s.sensors.Add(r.Context(), id, fid)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to create sensor")
		return
	}
	writeJSON(w, http.StatusCreated, newSensorView(sn))
}

func (s *Server) handleListDeviceActuators(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewDeviceID)
	if !ok {
		return
	}
	actuators, err := s.actuators.ListByDevice(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to list actuators")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"actuators": newActuatorViews(actuators), "count": len(actuators)})
}

type createActuatorRequest struct {
	FunctionalityID string            `json:"functionality_id"`
	IntRange        *intRangeView     `json:"int_range"`
	DecimalRange    *decimalRangeView `json:"decimal_range"`
}

// properties builds the actuator properties; nil when no range is given.
func (req createActuatorRequest) properties() (*vo.ActuatorProperties, error) {
	if req.IntRange == nil && req.DecimalRange == nil {
		return nil, nil
	}
	var (
		intRange *vo.RangeInt
		decRange *vo.RangeDecimal
		err      error
	)
	if req.IntRange != nil {
		if intRange, err = vo.NewRangeInt(req.IntRange.Lower, req.IntRange.Upper); err != nil {
			return nil, err
		}
	}
	if req.DecimalRange != nil {
		if decRange, err = vo.NewRangeDecimal(req.DecimalRange.Lower, req.DecimalRange.Upper, req.DecimalRange.Precision); err != nil {
			return nil, err
		}
	}
	return vo.NewActuatorProperties(intRange, decRange)
}

func (s *Server) handleCreateActuator(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewDeviceID)
	if !ok {
		return
	}
	var req createActuatorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	fid, ok := parseID(w, req.FunctionalityID, vo.NewActuatorFunctionalityID)
	if !ok {
		return
	}
	props, err := req.properties()
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}
	a, err := s.actuators.Add(r.Context(), id, fid, props)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to create actuator")
		return
	}
	writeJSON(w, http.StatusCreated, newActuatorView(a))
}

type blindRequest struct {
	FunctionalityID string `json:"functionality_id"`
	Percentage      *int   `json:"percentage"`
}

// handleSetBlind moves a device's blind roller. accepted is false when the
// device is deactivated, has no blind of that functionality, or the
// percentage is out of range.
func (s *Server) handleSetBlind(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewDeviceID)
	if !ok {
		return
	}
	var req blindRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Percentage == nil {
		writeBadRequest(w, "percentage is required")
		return
	}
	if req.FunctionalityID == "" {
		req.FunctionalityID = service.BlindSetterFunctionality
	}
	fid, ok := parseID(w, req.FunctionalityID, vo.NewActuatorFunctionalityID)
	if !ok {
		return
	}

	accepted, err := s.blinds.SetBlindRoller(r.Context(), id, fid, *req.Percentage)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to set blind")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accepted": accepted})
}

// handleListBlinds maps devices with an active blind actuator to their
// rooms. The functionality query parameter defaults to BlindSetter.
func (s *Server) handleListBlinds(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("functionality")
	if raw == "" {
		raw = service.BlindSetterFunctionality
	}
	fid, ok := parseID(w, raw, vo.NewActuatorFunctionalityID)
	if !ok {
		return
	}
	devices, err := s.blinds.DevicesWithFunctionality(r.Context(), fid)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to list blinds")
		return
	}
	out := make(map[string]string, len(devices))
	for deviceID, roomID := range devices {
		out[deviceID.String()] = roomID.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{"devices": out, "count": len(out)})
}

func (s *Server) handleGetActuator(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewActuatorID)
	if !ok {
		return
	}
	a, err := s.actuators.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to get actuator")
		return
	}
	writeJSON(w, http.StatusOK, newActuatorView(a))
}

type targetRequest struct {
	Value *float64 `json:"value"`
}

// handleSetTarget commands an actuator. A rejected command answers 200
// with accepted false and the unchanged actuator.
func (s *Server) handleSetTarget(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewActuatorID)
	if !ok {
		return
	}
	var req targetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Value == nil {
		writeBadRequest(w, "value is required")
		return
	}

	accepted, err := s.actuators.SetTarget(r.Context(), id, *req.Value)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to set target")
		return
	}
	a, err := s.actuators.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to get actuator")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accepted": accepted, "actuator": newActuatorView(a)})
}

func (s *Server) handleListSensorFunctionalities(w http.ResponseWriter, r *http.Request) {
	fs, err := s.functionalities.ListSensor(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "failed to list functionalities")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"functionalities": newSensorFunctionalityViews(fs), "count": len(fs)})
}

func (s *Server) handleListActuatorFunctionalities(w http.ResponseWriter, r *http.Request) {
	fs, err := s.functionalities.ListActuator(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "failed to list functionalities")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"functionalities": newActuatorFunctionalityViews(fs), "count": len(fs)})
}
