package device

import vo "github.com/nerrad567/smarthome-core/internal/valueobject"

// Create returns a new active device with a generated id, or nil when the
// model or room is missing.
func Create(model vo.DeviceModel, roomID vo.RoomID) *Device {
	return CreateWithID(vo.GenerateDeviceID(), model, roomID, vo.StatusActive)
}

// CreateWithID rebuilds a stored device, or returns nil on invalid input.
func CreateWithID(id vo.DeviceID, model vo.DeviceModel, roomID vo.RoomID, status vo.DeviceStatus) *Device {
	d, err := New(id, model, roomID, status)
	if err != nil {
		return nil
	}
	return d
}
