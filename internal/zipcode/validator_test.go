package zipcode

import (
	"errors"
	"testing"
)

func TestCountryValidators(t *testing.T) {
	tests := []struct {
		name  string
		v     Validator
		code  string
		valid bool
	}{
		{"portugal valid", Portugal, "4000-000", true},
		{"portugal valid 2", Portugal, "1234-567", true},
		{"portugal five digits", Portugal, "12345", false},
		{"portugal missing hyphen", Portugal, "1234567", false},
		{"spain valid", Spain, "28013", true},
		{"spain too long", Spain, "280130", false},
		{"france valid", France, "75001", true},
		{"france too long", France, "750001", false},
		{"uk valid", UK, "SW1A 2AA", true},
		{"uk valid short", UK, "NW1 6XE", true},
		{"uk no space", UK, "NW16XE", false},
		{"uk lowercase", UK, "nw1 6xe", false},
		{"usa five", USA, "12345", true},
		{"usa plus four", USA, "12345-6789", true},
		{"usa four", USA, "1234", false},
		{"usa six", USA, "123456", false},
		{"usa trailing text", USA, "12345 ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.ValidateZipCode(tt.code); got != tt.valid {
				t.Errorf("ValidateZipCode(%q) = %v, want %v", tt.code, got, tt.valid)
			}
		})
	}
}

func TestRegistryValidate(t *testing.T) {
	reg := Default()

	tests := []struct {
		name    string
		country string
		code    string
		wantErr error
	}{
		{"portugal", "Portugal", "4000-000", nil},
		{"case insensitive", "portugal", "4000-000", nil},
		{"alias", "United Kingdom", "SW1A 2AA", nil},
		{"bad code", "USA", "123456", ErrInvalidZipCode},
		{"bad portuguese code", "Portugal", "12345", ErrInvalidZipCode},
		{"italy unsupported", "Italy", "00100", ErrUnsupportedCountry},
		{"canada unsupported", "Canada", "12345", ErrUnsupportedCountry},
		{"germany unsupported", "Germany", "10115", ErrUnsupportedCountry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Validate(tt.country, tt.code)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate(%q, %q) error = %v, want %v", tt.country, tt.code, err, tt.wantErr)
			}
		})
	}
}

func TestRegistrySelect(t *testing.T) {
	reg, err := Default().Select([]string{"Portugal", "UK"})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	if _, ok := reg.ValidatorFor("Portugal"); !ok {
		t.Error("Portugal should be selected")
	}
	if _, ok := reg.ValidatorFor("united kingdom"); !ok {
		t.Error("UK alias should follow its country")
	}
	if _, ok := reg.ValidatorFor("USA"); ok {
		t.Error("USA should not be selected")
	}

	if _, err := Default().Select([]string{"Atlantis"}); !errors.Is(err, ErrUnsupportedCountry) {
		t.Errorf("Select(Atlantis) error = %v, want ErrUnsupportedCountry", err)
	}

	all, err := Default().Select(nil)
	if err != nil {
		t.Fatalf("Select(nil) error = %v", err)
	}
	if len(all.Countries()) != len(Default().Countries()) {
		t.Errorf("Select(nil) countries = %v", all.Countries())
	}
}

func TestNewPatternValidatorBadExpression(t *testing.T) {
	if _, err := NewPatternValidator("Nowhere", "("); err == nil {
		t.Error("expected compile error")
	}
}
