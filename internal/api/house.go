package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/smarthome-core/internal/room"
	"github.com/nerrad567/smarthome-core/internal/service"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

func (s *Server) handleGetHouse(w http.ResponseWriter, r *http.Request) {
	h, err := s.houses.Get(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "failed to get house")
		return
	}
	writeJSON(w, http.StatusOK, newHouseView(h))
}

// handleConfigureLocation replaces the house address and GPS position.
func (s *Server) handleConfigureLocation(w http.ResponseWriter, r *http.Request) {
	var req locationView
	if !decodeJSON(w, r, &req) {
		return
	}

	loc, err := s.houses.ConfigureLocation(r.Context(), service.LocationInput{
		Street:     req.Street,
		DoorNumber: req.DoorNumber,
		ZipCode:    req.ZipCode,
		City:       req.City,
		Country:    req.Country,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "failed to configure location")
		return
	}
	writeJSON(w, http.StatusOK, newLocationView(loc))
}

type roomRequest struct {
	Floor  int     `json:"floor"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (req roomRequest) input() service.RoomInput {
	return service.RoomInput{Floor: req.Floor, Length: req.Length, Width: req.Width, Height: req.Height}
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	var (
		rooms []*room.Room
		err   error
	)
	if raw := r.URL.Query().Get("inside"); raw != "" {
		inside, perr := strconv.ParseBool(raw)
		if perr != nil {
			writeBadRequest(w, "inside must be true or false")
			return
		}
		rooms, err = s.rooms.ListByPlacement(r.Context(), inside)
	} else {
		rooms, err = s.rooms.List(r.Context())
	}
	if err != nil {
		s.writeServiceError(w, r, err, "failed to list rooms")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": newRoomViews(rooms), "count": len(rooms)})
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rm, err := s.rooms.Add(r.Context(), req.input())
	if err != nil {
		s.writeServiceError(w, r, err, "failed to create room")
		return
	}
	writeJSON(w, http.StatusCreated, newRoomView(rm))
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewRoomID)
	if !ok {
		return
	}
	rm, err := s.rooms.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to get room")
		return
	}
	writeJSON(w, http.StatusOK, newRoomView(rm))
}

// handleEditRoom replaces the floor and dimensions of a room.
func (s *Server) handleEditRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewRoomID)
	if !ok {
		return
	}
	var req roomRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rm, err := s.rooms.Edit(r.Context(), id, req.input())
	if err != nil {
		s.writeServiceError(w, r, err, "failed to edit room")
		return
	}
	writeJSON(w, http.StatusOK, newRoomView(rm))
}

func (s *Server) handleListRoomDevices(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"), vo.NewRoomID)
	if !ok {
		return
	}
	devices, err := s.devices.ListByRoom(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to list devices")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"devices": newDeviceViews(devices), "count": len(devices)})
}
