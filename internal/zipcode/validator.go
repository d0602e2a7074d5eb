package zipcode

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Validator checks whether a postal code is well formed for one country.
type Validator interface {
	ValidateZipCode(code string) bool
}

// Resolver selects the Validator for a country name.
type Resolver interface {
	ValidatorFor(country string) (Validator, bool)
}

// PatternValidator validates codes against an anchored regular expression.
type PatternValidator struct {
	country string
	pattern *regexp.Regexp
}

// NewPatternValidator compiles expr for country. The expression is anchored
// automatically so partial matches never pass.
func NewPatternValidator(country, expr string) (*PatternValidator, error) {
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("compiling zip pattern for %s: %w", country, err)
	}
	return &PatternValidator{country: country, pattern: re}, nil
}

// Country returns the country this validator belongs to.
func (v *PatternValidator) Country() string {
	return v.country
}

// ValidateZipCode reports whether code matches the country format.
func (v *PatternValidator) ValidateZipCode(code string) bool {
	return v.pattern.MatchString(code)
}

// Built-in country formats.
var (
	// Portugal uses NNNN-NNN.
	Portugal = mustPattern("Portugal", `\d{4}-\d{3}`)

	// Spain uses five digits.
	Spain = mustPattern("Spain", `\d{5}`)

	// France uses five digits.
	France = mustPattern("France", `\d{5}`)

	// UK postcodes: outward code (A9, A99, A9A, AA9, AA99, AA9A), a single
	// space, then the inward code (9AA).
	UK = mustPattern("UK", `[A-Z]{1,2}\d[A-Z\d]? \d[A-Z]{2}`)

	// USA uses ZIP (5 digits) or ZIP+4.
	USA = mustPattern("USA", `\d{5}(?:-\d{4})?`)
)

func mustPattern(country, expr string) *PatternValidator {
	v, err := NewPatternValidator(country, expr)
	if err != nil {
		panic(err)
	}
	return v
}

// Registry maps normalised country names to validators.
type Registry struct {
	validators map[string]Validator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// Default returns a registry with every built-in country and the common
// long-form aliases.
func Default() *Registry {
	r := NewRegistry()
	r.Register("Portugal", Portugal)
	r.Register("Spain", Spain)
	r.Register("France", France)
	r.Register("UK", UK)
	r.Register("United Kingdom", UK)
	r.Register("USA", USA)
	r.Register("United States", USA)
	return r
}

// Select returns a registry restricted to the named countries. Unknown
// names are reported with ErrUnsupportedCountry. An empty list selects
// everything in the receiver.
func (r *Registry) Select(countries []string) (*Registry, error) {
	if len(countries) == 0 {
		return r, nil
	}
	out := NewRegistry()
	for _, c := range countries {
		v, ok := r.ValidatorFor(c)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedCountry, c)
		}
		out.Register(c, v)
		for alias, av := range r.validators {
			if av == v {
				out.validators[alias] = av
			}
		}
	}
	return out, nil
}

// Register adds or replaces the validator for country.
func (r *Registry) Register(country string, v Validator) {
	r.validators[normalise(country)] = v
}

// ValidatorFor implements Resolver.
func (r *Registry) ValidatorFor(country string) (Validator, bool) {
	v, ok := r.validators[normalise(country)]
	return v, ok
}

// Validate checks code against the country validator.
func (r *Registry) Validate(country, code string) error {
	v, ok := r.ValidatorFor(country)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedCountry, country)
	}
	if !v.ValidateZipCode(code) {
		return fmt.Errorf("%w: %q for %s", ErrInvalidZipCode, code, country)
	}
	return nil
}

// Countries returns the registered country keys in sorted order.
func (r *Registry) Countries() []string {
	out := make([]string, 0, len(r.validators))
	for k := range r.validators {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalise(country string) string {
	return strings.ToLower(strings.TrimSpace(country))
}
