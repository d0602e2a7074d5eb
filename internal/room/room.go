package room

import (
	"fmt"

	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Room is a space inside a house.
type Room struct {
	id         vo.RoomID
	floor      *vo.RoomFloor
	dimensions *vo.RoomDimensions
	houseID    vo.HouseID
}

// New builds a room. Every argument is required.
func New(id vo.RoomID, floor *vo.RoomFloor, dimensions *vo.RoomDimensions, houseID vo.HouseID) (*Room, error) {
	switch {
	case id.IsZero():
		return nil, fmt.Errorf("%w: id is required", ErrInvalidRoom)
	case floor == nil:
		return nil, fmt.Errorf("%w: floor is required", ErrInvalidRoom)
	case dimensions == nil:
		return nil, fmt.Errorf("%w: dimensions are required", ErrInvalidRoom)
	case houseID.IsZero():
		return nil, fmt.Errorf("%w: house id is required", ErrInvalidRoom)
	}
	return &Room{id: id, floor: floor, dimensions: dimensions, houseID: houseID}, nil
}

// ID returns the room identifier.
func (r *Room) ID() vo.RoomID { return r.id }

// Floor returns the floor the room is on.
func (r *Room) Floor() *vo.RoomFloor { return r.floor }

// Dimensions returns the room size.
func (r *Room) Dimensions() *vo.RoomDimensions { return r.dimensions }

// HouseID returns the owning house.
func (r *Room) HouseID() vo.HouseID { return r.houseID }

// IsInside reports whether the room is part of the house. Outdoor areas
// such as gardens are stored with zero height.
func (r *Room) IsInside() bool { return r.dimensions.Height() > 0 }

// EditRoom replaces floor and dimensions together. It returns nil and
// leaves the room untouched if either is missing.
func (r *Room) EditRoom(floor *vo.RoomFloor, dimensions *vo.RoomDimensions) *Room {
	if floor == nil || dimensions == nil {
		return nil
	}
	r.floor = floor
	r.dimensions = dimensions
	return r
}

// IsSameAs reports whether other is a room with the same id, floor,
// dimensions and house.
func (r *Room) IsSameAs(other any) bool {
	o, ok := other.(*Room)
	if !ok || o == nil || r == nil {
		return false
	}
	return r.id == o.id &&
		r.houseID == o.houseID &&
		r.floor.Equal(o.floor) &&
		r.dimensions.Equal(o.dimensions)
}
