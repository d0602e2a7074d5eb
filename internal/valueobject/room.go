package valueobject

import (
	"fmt"
	"math"
)

// RoomFloor is the floor number a room sits on. Any integer is valid,
// including negatives for basements.
type RoomFloor struct {
	floor int
}

// NewRoomFloor wraps floor.
func NewRoomFloor(floor int) *RoomFloor {
	return &RoomFloor{floor: floor}
}

// Floor returns the floor number.
func (f *RoomFloor) Floor() int {
	return f.floor
}

// Equal reports whether both floors are present and equal.
func (f *RoomFloor) Equal(other *RoomFloor) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.floor == other.floor
}

// RoomDimensions holds the size of a room in metres.
type RoomDimensions struct {
	length float64
	width  float64
	height float64
}

// NewRoomDimensions requires length and width > 0 and height >= 0.
func NewRoomDimensions(length, width, height float64) (*RoomDimensions, error) {
	if math.IsNaN(length) || math.IsNaN(width) || math.IsNaN(height) {
		return nil, fmt.Errorf("%w: NaN dimension", ErrInvalidDimensions)
	}
	if length <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: length and width must be positive", ErrInvalidDimensions)
	}
	if height < 0 {
		return nil, fmt.Errorf("%w: height must not be negative", ErrInvalidDimensions)
	}
	return &RoomDimensions{length: length, width: width, height: height}, nil
}

// Length returns the room length.
func (d *RoomDimensions) Length() float64 { return d.length }

// Width returns the room width.
func (d *RoomDimensions) Width() float64 { return d.width }

// Height returns the room height.
func (d *RoomDimensions) Height() float64 { return d.height }

// Area returns the floor area.
func (d *RoomDimensions) Area() float64 { return d.length * d.width }

// Equal compares every dimension.
func (d *RoomDimensions) Equal(other *RoomDimensions) bool {
	if d == nil || other == nil {
		return d == other
	}
	return *d == *other
}
