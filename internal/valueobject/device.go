package valueobject

import (
	"fmt"
	"strings"
)

// DeviceModel is the manufacturer model string of a device.
type DeviceModel struct {
	model string
}

// NewDeviceModel rejects blank models.
func NewDeviceModel(model string) (DeviceModel, error) {
	if strings.TrimSpace(model) == "" {
		return DeviceModel{}, fmt.Errorf("%w: model must not be blank", ErrInvalidModel)
	}
	return DeviceModel{model: model}, nil
}

// String returns the model.
func (m DeviceModel) String() string { return m.model }

// IsZero reports whether the model is absent.
func (m DeviceModel) IsZero() bool { return m.model == "" }

// DeviceStatus is the lifecycle state of a device.
type DeviceStatus string

// Device statuses. Transitions only go from active to deactivated.
const (
	StatusActive      DeviceStatus = "ACTIVE"
	StatusDeactivated DeviceStatus = "DEACTIVATED"
)

// ParseDeviceStatus converts a stored status string.
func ParseDeviceStatus(s string) (DeviceStatus, error) {
	switch st := DeviceStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusActive, StatusDeactivated:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Valid reports whether s is a known status.
func (s DeviceStatus) Valid() bool {
	return s == StatusActive || s == StatusDeactivated
}
