package house

import vo "github.com/nerrad567/smarthome-core/internal/valueobject"

// Create returns a new house with a generated id and no location.
func Create() *House {
	h, _ := New(vo.GenerateHouseID(), nil) //nolint:errcheck // a generated id is never zero
	return h
}

// CreateWithLocation returns a new house at location, or nil if location is nil.
func CreateWithLocation(location *vo.Location) *House {
	h, err := NewWithLocation(location)
	if err != nil {
		return nil
	}
	return h
}

// CreateWithID rebuilds a house from its id and optional location, or
// returns nil when id is zero.
func CreateWithID(id vo.HouseID, location *vo.Location) *House {
	h, err := New(id, location)
	if err != nil {
		return nil
	}
	return h
}
