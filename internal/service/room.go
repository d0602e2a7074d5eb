package service

import (
	"context"
	"fmt"

	"github.com/nerrad567/smarthome-core/internal/room"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// RoomInput is a raw room layout.
type RoomInput struct {
	Floor  int
	Length float64
	Width  float64
	Height float64
}

func (in RoomInput) valueObjects() (*vo.RoomFloor, *vo.RoomDimensions, error) {
	dims, err := vo.NewRoomDimensions(in.Length, in.Width, in.Height)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return vo.NewRoomFloor(in.Floor), dims, nil
}

// RoomService manages the rooms of the house.
type RoomService struct {
	repo    room.Repository
	houseID vo.HouseID
	logger  Logger
}

// NewRoomService creates a service adding rooms to houseID.
func NewRoomService(repo room.Repository, houseID vo.HouseID) *RoomService {
	return &RoomService{repo: repo, houseID: houseID, logger: noopLogger{}}
}

// SetLogger sets the logger for the service.
func (s *RoomService) SetLogger(logger Logger) {
	s.logger = logger
}

// Add creates a room in the house.
func (s *RoomService) Add(ctx context.Context, in RoomInput) (*room.Room, error) {
	floor, dims, err := in.valueObjects()
	if err != nil {
		return nil, err
	}
	r, err := room.New(vo.GenerateRoomID(), floor, dims, s.houseID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("room added", "id", r.ID().String(), "floor", in.Floor)
	return r, nil
}

// Edit replaces floor and dimensions of a room together.
func (s *RoomService) Edit(ctx context.Context, id vo.RoomID, in RoomInput) (*room.Room, error) {
	floor, dims, err := in.valueObjects()
	if err != nil {
		return nil, err
	}
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.EditRoom(floor, dims) == nil {
		return nil, fmt.Errorf("%w: floor and dimensions are required", ErrInvalidInput)
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Get returns one room.
func (s *RoomService) Get(ctx context.Context, id vo.RoomID) (*room.Room, error) {
	return s.repo.Get(ctx, id)
}

// List returns the rooms of the house ordered by floor.
func (s *RoomService) List(ctx context.Context) ([]*room.Room, error) {
	return s.repo.ListByHouse(ctx, s.houseID)
}

// ListByPlacement returns the rooms inside the house when inside is true,
// and the outdoor ones otherwise.
func (s *RoomService) ListByPlacement(ctx context.Context, inside bool) ([]*room.Room, error) {
	rooms, err := s.repo.ListByHouse(ctx, s.houseID)
	if err != nil {
		return nil, err
	}
	out := make([]*room.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.IsInside() == inside {
			out = append(out, r)
		}
	}
	return out, nil
}
