package house

import (
	"errors"
	"testing"

	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
	"github.com/nerrad567/smarthome-core/internal/zipcode"
)

func testAddress(t *testing.T) *vo.Address {
	t.Helper()
	a, err := vo.NewAddress("Rua do Ouro", "123", "4000-000", "Porto", "Portugal", zipcode.Default())
	if err != nil {
		t.Fatalf("NewAddress() error = %v", err)
	}
	return a
}

func testGPS(t *testing.T) *vo.GPSCode {
	t.Helper()
	g, err := vo.NewGPSCode(41.1579, -8.6291)
	if err != nil {
		t.Fatalf("NewGPSCode() error = %v", err)
	}
	return g
}

func testLocation(t *testing.T) *vo.Location {
	t.Helper()
	l, err := vo.NewLocation(testAddress(t), testGPS(t))
	if err != nil {
		t.Fatalf("NewLocation() error = %v", err)
	}
	return l
}

func TestNew(t *testing.T) {
	id, _ := vo.NewHouseID("house-1")

	h, err := New(id, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if h.ID() != id || h.Location() != nil {
		t.Errorf("house = %v / %v", h.ID(), h.Location())
	}

	if _, err := New(vo.HouseID{}, nil); !errors.Is(err, ErrInvalidHouse) {
		t.Errorf("New(zero id) error = %v, want ErrInvalidHouse", err)
	}
	if _, err := NewWithLocation(nil); !errors.Is(err, ErrInvalidHouse) {
		t.Errorf("NewWithLocation(nil) error = %v, want ErrInvalidHouse", err)
	}
}

func TestEditLocation(t *testing.T) {
	h := Create()
	addr, gps := testAddress(t), testGPS(t)

	if got := h.EditLocation(nil, gps); got != nil {
		t.Errorf("EditLocation(nil, gps) = %v, want nil", got)
	}
	if got := h.EditLocation(addr, nil); got != nil {
		t.Errorf("EditLocation(addr, nil) = %v, want nil", got)
	}
	if h.Location() != nil {
		t.Fatal("rejected edits must not change the location")
	}

	loc := h.EditLocation(addr, gps)
	if loc == nil {
		t.Fatal("EditLocation() = nil, want location")
	}
	if h.Location() != loc {
		t.Error("house location should be the returned location")
	}

	// A rejected edit keeps the previous location.
	h.EditLocation(nil, nil)
	if h.Location() != loc {
		t.Error("rejected edit replaced the location")
	}
}

func TestIsSameAs(t *testing.T) {
	id, _ := vo.NewHouseID("house-1")
	h1 := CreateWithID(id, nil)
	h2 := CreateWithID(id, testLocation(t))
	h3 := Create()

	tests := []struct {
		name  string
		other any
		want  bool
	}{
		{"itself", h1, true},
		{"same id different location", h2, true},
		{"different id", h3, false},
		{"nil", nil, false},
		{"typed nil", (*House)(nil), false},
		{"other type", "house-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h1.IsSameAs(tt.other); got != tt.want {
				t.Errorf("IsSameAs(%v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestFactories(t *testing.T) {
	if h := Create(); h == nil || h.ID().IsZero() {
		t.Error("Create() should return a house with a generated id")
	}
	if h := CreateWithLocation(nil); h != nil {
		t.Error("CreateWithLocation(nil) should return nil")
	}
	loc := testLocation(t)
	if h := CreateWithLocation(loc); h == nil || h.Location() != loc {
		t.Error("CreateWithLocation(loc) should keep the location")
	}
	if h := CreateWithID(vo.HouseID{}, loc); h != nil {
		t.Error("CreateWithID(zero) should return nil")
	}
}
