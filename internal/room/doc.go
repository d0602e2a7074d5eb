// Package room holds the Room aggregate. A room knows its floor, its
// dimensions and the HouseID it belongs to; floor and dimensions are only
// ever replaced together through EditRoom.
package room
