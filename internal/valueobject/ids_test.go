package valueobject

import (
	"errors"
	"testing"
)

func TestNewIDs(t *testing.T) {
	constructors := map[string]func(string) (string, error){
		"house": func(s string) (string, error) { id, err := NewHouseID(s); return id.String(), err },
		"room":  func(s string) (string, error) { id, err := NewRoomID(s); return id.String(), err },
		"device": func(s string) (string, error) {
			id, err := NewDeviceID(s)
			return id.String(), err
		},
		"sensor": func(s string) (string, error) {
			id, err := NewSensorID(s)
			return id.String(), err
		},
		"actuator": func(s string) (string, error) {
			id, err := NewActuatorID(s)
			return id.String(), err
		},
		"sensor functionality": func(s string) (string, error) {
			id, err := NewSensorFunctionalityID(s)
			return id.String(), err
		},
		"actuator functionality": func(s string) (string, error) {
			id, err := NewActuatorFunctionalityID(s)
			return id.String(), err
		},
	}

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "abc-123", nil},
		{"empty", "", ErrInvalidID},
		{"blank", "   ", ErrInvalidID},
		{"tab", "\t", ErrInvalidID},
	}

	for kind, newID := range constructors {
		for _, tt := range tests {
			t.Run(kind+"/"+tt.name, func(t *testing.T) {
				got, err := newID(tt.input)
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("new %s id(%q) error = %v, want %v", kind, tt.input, err, tt.wantErr)
				}
				if err == nil && got != tt.input {
					t.Errorf("String() = %q, want %q", got, tt.input)
				}
			})
		}
	}
}

func TestIDEquality(t *testing.T) {
	a, _ := NewDeviceID("dev-1")
	b, _ := NewDeviceID("dev-1")
	c, _ := NewDeviceID("dev-2")

	if a != b {
		t.Error("ids with the same value should be equal")
	}
	if a == c {
		t.Error("ids with different values should differ")
	}

	var zero DeviceID
	if !zero.IsZero() {
		t.Error("zero DeviceID should report IsZero")
	}
	if a.IsZero() {
		t.Error("constructed DeviceID should not be zero")
	}
}

func TestValueIDTrims(t *testing.T) {
	id, err := NewValueID("  v-1 ")
	if err != nil {
		t.Fatalf("NewValueID() error = %v", err)
	}
	if id.String() != "v-1" {
		t.Errorf("String() = %q, want %q", id.String(), "v-1")
	}
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	seen := make(map[HouseID]bool)
	for range 100 {
		id := GenerateHouseID()
		if id.IsZero() {
			t.Fatal("generated id is zero")
		}
		if seen[id] {
			t.Fatalf("duplicate generated id %s", id)
		}
		seen[id] = true
	}
}
