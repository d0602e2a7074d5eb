// Package valueobject holds the immutable building blocks shared by every
// smart home aggregate.
//
// # Identifiers
//
// HouseID, RoomID, DeviceID, SensorID, ActuatorID, ValueID and the two
// functionality IDs are comparable structs wrapping a non-blank string.
// The zero value means "absent" and is what aggregate constructors check
// for. IDs can be used directly as map keys.
//
// # Descriptive values
//
// Multi-field values (RoomDimensions, GPSCode, Address, Location, Reading,
// RangeInt, RangeDecimal, ActuatorProperties) and RoomFloor are handed
// around as pointers, with nil meaning "absent". Their constructors return
// an error wrapping one of the sentinels in errors.go and never yield a
// partially valid value.
//
// Cross-aggregate references are always by ID. No value here points at an
// aggregate.
package valueobject
