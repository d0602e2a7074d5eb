package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/smarthome-core/internal/service"
	"github.com/nerrad567/smarthome-core/internal/telemetry/metrics"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

func (s *Server) handleGetSensor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewSensorID)
	if !ok {
		return
	}
	sn, err := s.sensors.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to get sensor")
		return
	}
	writeJSON(w, http.StatusOK, newSensorView(sn))
}

// handleListValues returns the values of a sensor, optionally limited to
// those observed inside [from, to].
func (s *Server) handleListValues(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewSensorID)
	if !ok {
		return
	}
	from, to, err := parseInterval(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	values, err := s.values.ListBySensor(r.Context(), id, from, to)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to list values")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"values": newValueViews(values), "count": len(values)})
}

type recordValueRequest struct {
	Measurement string     `json:"measurement"`
	Unit        string     `json:"unit"`
	Timestamp   *time.Time `json:"timestamp"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
}

func (req recordValueRequest) input() service.ReadingInput {
	in := service.ReadingInput{
		Measurement: req.Measurement,
		Unit:        req.Unit,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Source:      metrics.SourceAPI,
	}
	if req.Timestamp != nil {
		in.At = req.Timestamp.UTC()
	}
	if req.Start != nil {
		in.Start = req.Start.UTC()
	}
	if req.End != nil {
		in.End = req.End.UTC()
	}
	return in
}

// handleRecordValue records a reading for a sensor. The value shape
// follows the sensor's functionality.
func (s *Server) handleRecordValue(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewSensorID)
	if !ok {
		return
	}
	var req recordValueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := s.values.Record(r.Context(), id, req.input())
	if err != nil {
		s.writeServiceError(w, r, err, "failed to record value")
		return
	}
	writeJSON(w, http.StatusCreated, newValueView(v))
}

// handleDeviceMeasurements groups the readings of a device's sensors by
// functionality. Both from and to are required.
func (s *Server) handleDeviceMeasurements(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewDeviceID)
	if !ok {
		return
	}
	from, to, err := parseInterval(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if from.IsZero() || to.IsZero() {
		writeBadRequest(w, "from and to are required")
		return
	}

	grouped, err := s.values.MeasurementsForDevice(r.Context(), id, from, to)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to list measurements")
		return
	}
	out := make(map[string][]readingView, len(grouped))
	for fid, readings := range grouped {
		views := make([]readingView, 0, len(readings))
		for _, reading := range readings {
			views = append(views, newReadingView(reading))
		}
		out[fid.String()] = views
	}
	writeJSON(w, http.StatusOK, out)
}

// handleLastMeasurement returns the latest value of the device's sensor
// named by the functionality query parameter.
func (s *Server) handleLastMeasurement(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewDeviceID)
	if !ok {
		return
	}
	fid, ok := parseID(w, r.URL.Query().Get("functionality"), vo.NewSensorFunctionalityID)
	if !ok {
		return
	}
	v, err := s.values.LastMeasurement(r.Context(), id, fid)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to get last measurement")
		return
	}
	writeJSON(w, http.StatusOK, newValueView(v))
}

// handlePeakPower returns the house peak power consumption in watts
// within [from, to].
func (s *Server) handlePeakPower(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseInterval(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if from.IsZero() || to.IsZero() {
		writeBadRequest(w, "from and to are required")
		return
	}
	if to.Before(from) {
		writeBadRequest(w, "to must not be before from")
		return
	}

	peak, err := s.values.PeakPowerConsumption(r.Context(), from, to)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to compute peak power")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"from":       from.UTC(),
		"to":         to.UTC(),
		"peak_watts": peak,
	})
}
