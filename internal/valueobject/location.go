package valueobject

import (
	"fmt"
	"math"
	"strings"

	"github.com/nerrad567/smarthome-core/internal/zipcode"
)

// GPSCode is a latitude/longitude pair in decimal degrees.
type GPSCode struct {
	latitude  float64
	longitude float64
}

// NewGPSCode requires latitude in [-90, 90] and longitude in [-180, 180].
func NewGPSCode(latitude, longitude float64) (*GPSCode, error) {
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("%w: latitude %v", ErrInvalidGPS, latitude)
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("%w: longitude %v", ErrInvalidGPS, longitude)
	}
	return &GPSCode{latitude: latitude, longitude: longitude}, nil
}

// Latitude returns the latitude.
func (g *GPSCode) Latitude() float64 { return g.latitude }

// Longitude returns the longitude.
func (g *GPSCode) Longitude() float64 { return g.longitude }

// Equal compares both coordinates.
func (g *GPSCode) Equal(other *GPSCode) bool {
	if g == nil || other == nil {
		return g == other
	}
	return *g == *other
}

// Address is a postal address whose zip code has been checked against the
// format of its country.
type Address struct {
	street     string
	doorNumber string
	zipCode    string
	city       string
	country    string
}

// NewAddress validates every field and checks zipCode with the validator
// that zips resolves for country. A country without a validator is rejected.
func NewAddress(street, doorNumber, zipCode, city, country string, zips zipcode.Resolver) (*Address, error) {
	fields := []struct{ name, v string }{
		{"street", street},
		{"door number", doorNumber},
		{"zip code", zipCode},
		{"city", city},
		{"country", country},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.v) == "" {
			return nil, fmt.Errorf("%w: %s must not be blank", ErrInvalidAddress, f.name)
		}
	}
	if zips == nil {
		return nil, fmt.Errorf("%w: no zip code validators configured", ErrInvalidAddress)
	}
	v, ok := zips.ValidatorFor(country)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidAddress, zipcode.ErrUnsupportedCountry, country)
	}
	if !v.ValidateZipCode(zipCode) {
		return nil, fmt.Errorf("%w: %w: %q for %s", ErrInvalidAddress, zipcode.ErrInvalidZipCode, zipCode, country)
	}
	return &Address{
		street:     street,
		doorNumber: doorNumber,
		zipCode:    zipCode,
		city:       city,
		country:    country,
	}, nil
}

// Street returns the street name.
func (a *Address) Street() string { return a.street }

// DoorNumber returns the door number.
func (a *Address) DoorNumber() string { return a.doorNumber }

// ZipCode returns the postal code.
func (a *Address) ZipCode() string { return a.zipCode }

// City returns the city.
func (a *Address) City() string { return a.city }

// Country returns the country name as supplied.
func (a *Address) Country() string { return a.country }

// String renders the address on one line.
func (a *Address) String() string {
	return strings.Join([]string{a.street, a.doorNumber, a.zipCode, a.city, a.country}, ", ")
}

// Equal compares every field.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return *a == *other
}

// Location pairs an Address with its GPSCode.
type Location struct {
	address *Address
	gps     *GPSCode
}

// NewLocation requires both parts.
func NewLocation(address *Address, gps *GPSCode) (*Location, error) {
	if address == nil {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidLocation)
	}
	if gps == nil {
		return nil, fmt.Errorf("%w: gps code is required", ErrInvalidLocation)
	}
	return &Location{address: address, gps: gps}, nil
}

// Address returns the postal address.
func (l *Location) Address() *Address { return l.address }

// GPSCode returns the coordinates.
func (l *Location) GPSCode() *GPSCode { return l.gps }

// Equal compares address and coordinates.
func (l *Location) Equal(other *Location) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.address.Equal(other.address) && l.gps.Equal(other.gps)
}
