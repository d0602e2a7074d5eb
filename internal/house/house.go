package house

import (
	"fmt"

	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// House is the aggregate root of a smart home. Its location is optional
// until configured.
type House struct {
	id       vo.HouseID
	location *vo.Location
}

// New builds a house with id and an optional location.
func New(id vo.HouseID, location *vo.Location) (*House, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidHouse)
	}
	return &House{id: id, location: location}, nil
}

// NewWithLocation builds a house with a generated id. The location is required.
func NewWithLocation(location *vo.Location) (*House, error) {
	if location == nil {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidHouse)
	}
	return New(vo.GenerateHouseID(), location)
}

// ID returns the house identifier.
func (h *House) ID() vo.HouseID { return h.id }

// Location returns the configured location, or nil.
func (h *House) Location() *vo.Location { return h.location }

// EditLocation replaces the location with one built from address and gps.
// It returns nil and leaves the house untouched if either part is missing.
func (h *House) EditLocation(address *vo.Address, gps *vo.GPSCode) *vo.Location {
	loc, err := vo.NewLocation(address, gps)
	if err != nil {
		return nil
	}
	h.location = loc
	return loc
}

// IsSameAs reports whether other is a house with the same id.
func (h *House) IsSameAs(other any) bool {
	o, ok := other.(*House)
	if !ok || o == nil || h == nil {
		return false
	}
	return h.id == o.id
}
