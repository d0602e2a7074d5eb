package room

import vo "github.com/nerrad567/smarthome-core/internal/valueobject"

// Create returns a new room with a generated id, or nil when any part is missing.
func Create(floor *vo.RoomFloor, dimensions *vo.RoomDimensions, houseID vo.HouseID) *Room {
	return CreateWithID(vo.GenerateRoomID(), floor, dimensions, houseID)
}

// CreateWithID rebuilds a stored room, or returns nil when any part is missing.
func CreateWithID(id vo.RoomID, floor *vo.RoomFloor, dimensions *vo.RoomDimensions, houseID vo.HouseID) *Room {
	r, err := New(id, floor, dimensions, houseID)
	if err != nil {
		return nil
	}
	return r
}
