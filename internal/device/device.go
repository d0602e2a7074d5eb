package device

import (
	"fmt"

	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Device is a physical appliance installed in a room.
type Device struct {
	id     vo.DeviceID
	model  vo.DeviceModel
	roomID vo.RoomID
	status vo.DeviceStatus
}

// New builds a device. An empty status defaults to active.
func New(id vo.DeviceID, model vo.DeviceModel, roomID vo.RoomID, status vo.DeviceStatus) (*Device, error) {
	if status == "" {
		status = vo.StatusActive
	}
	switch {
	case id.IsZero():
		return nil, fmt.Errorf("%w: id is required", ErrInvalidDevice)
	case model.IsZero():
		return nil, fmt.Errorf("%w: model is required", ErrInvalidDevice)
	case roomID.IsZero():
		return nil, fmt.Errorf("%w: room id is required", ErrInvalidDevice)
	case !status.Valid():
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidDevice, status)
	}
	return &Device{id: id, model: model, roomID: roomID, status: status}, nil
}

// ID returns the device identifier.
func (d *Device) ID() vo.DeviceID { return d.id }

// Name returns the display name, which is the id.
func (d *Device) Name() string { return d.id.String() }

// Model returns the device model.
func (d *Device) Model() vo.DeviceModel { return d.model }

// RoomID returns the room the device is installed in.
func (d *Device) RoomID() vo.RoomID { return d.roomID }

// Status returns the lifecycle status.
func (d *Device) Status() vo.DeviceStatus { return d.status }

// IsActive reports whether the device still accepts commands.
func (d *Device) IsActive() bool { return d.status == vo.StatusActive }

// Deactivate moves the device to DEACTIVATED. It reports false when the
// device was already deactivated.
func (d *Device) Deactivate() bool {
	if d.status == vo.StatusDeactivated {
		return false
	}
	d.status = vo.StatusDeactivated
	return true
}

// IsSameAs reports whether other is a device with the same id, model,
// room and status.
func (d *Device) IsSameAs(other any) bool {
	o, ok := other.(*Device)
	if !ok || o == nil || d == nil {
		return false
	}
	return *d == *o
}

func (d *Device) clone() *Device {
	c := *d
	return &c
}
