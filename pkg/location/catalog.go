package location

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrCountryNotFound is returned by lookups that require a known country.
var ErrCountryNotFound = errors.New("location: country not found")

var dialingCodePattern = regexp.MustCompile(`^\+\d{1,3}$`)

// Country describes one catalog entry.
type Country struct {
	Name        string  `json:"name"`
	DialingCode string  `json:"dialingCode"`
	States      []State `json:"states"`
}

// State lists the cities of a state in display order.
type State struct {
	Name   string   `json:"name"`
	Cities []string `json:"cities"`
}

// Catalog is the immutable country → state → city mapping backing the
// cascading selects and the phone prefix check. Lookups never mutate the
// catalog and always return copies.
type Catalog struct {
	countries []Country
	index     map[string]int
}

// New builds a catalog from the supplied countries, preserving their order and
// enforcing the catalog invariants.
func New(countries ...Country) (*Catalog, error) {
	c := &Catalog{
		countries: make([]Country, 0, len(countries)),
		index:     make(map[string]int, len(countries)),
	}
	for _, country := range countries {
		c.countries = append(c.countries, cloneCountry(country))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	for i, country := range c.countries {
		c.index[country.Name] = i
	}
	return c, nil
}

// MustNew panics when the countries violate the catalog invariants.
func MustNew(countries ...Country) *Catalog {
	c, err := New(countries...)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate reports the first invariant violation: empty or duplicate names,
// malformed dialing codes, countries without states, states without cities.
func (c *Catalog) Validate() error {
	if c == nil || len(c.countries) == 0 {
		return errors.New("location: catalog defines no countries")
	}

	seenCountries := make(map[string]struct{}, len(c.countries))
	for _, country := range c.countries {
		name := strings.TrimSpace(country.Name)
		if name == "" {
			return errors.New("location: country name is required")
		}
		if _, dup := seenCountries[name]; dup {
			return fmt.Errorf("location: duplicate country %q", name)
		}
		seenCountries[name] = struct{}{}

		if !dialingCodePattern.MatchString(country.DialingCode) {
			return fmt.Errorf("location: country %q has invalid dialing code %q", name, country.DialingCode)
		}
		if len(country.States) == 0 {
			return fmt.Errorf("location: country %q defines no states", name)
		}

		seenStates := make(map[string]struct{}, len(country.States))
		for _, state := range country.States {
			stateName := strings.TrimSpace(state.Name)
			if stateName == "" {
				return fmt.Errorf("location: country %q has a state without a name", name)
			}
			if _, dup := seenStates[stateName]; dup {
				return fmt.Errorf("location: country %q defines duplicate state %q", name, stateName)
			}
			seenStates[stateName] = struct{}{}

			if len(state.Cities) == 0 {
				return fmt.Errorf("location: state %q of %q defines no cities", stateName, name)
			}
			seenCities := make(map[string]struct{}, len(state.Cities))
			for idx, city := range state.Cities {
				cityName := strings.TrimSpace(city)
				if cityName == "" {
					return fmt.Errorf("location: state %q of %q has an empty city at index %d", stateName, name, idx)
				}
				if _, dup := seenCities[cityName]; dup {
					return fmt.Errorf("location: state %q of %q defines duplicate city %q", stateName, name, cityName)
				}
				seenCities[cityName] = struct{}{}
			}
		}
	}
	return nil
}

// Countries returns the country names in catalog order.
func (c *Catalog) Countries() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.countries))
	for _, country := range c.countries {
		out = append(out, country.Name)
	}
	return out
}

// HasCountry reports whether the country is part of the catalog.
func (c *Catalog) HasCountry(country string) bool {
	_, ok := c.lookup(country)
	return ok
}

// DialingCode returns the international prefix for the country.
func (c *Catalog) DialingCode(country string) (string, error) {
	entry, ok := c.lookup(country)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrCountryNotFound, country)
	}
	return entry.DialingCode, nil
}

// StatesOf lists the states of a country, or nothing for unknown countries.
func (c *Catalog) StatesOf(country string) []string {
	entry, ok := c.lookup(country)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(entry.States))
	for _, state := range entry.States {
		out = append(out, state.Name)
	}
	return out
}

// CitiesOf lists the cities of a state. Unknown or mismatched keys yield an
// empty list.
func (c *Catalog) CitiesOf(country, state string) []string {
	entry, ok := c.lookup(country)
	if !ok {
		return []string{}
	}
	for _, candidate := range entry.States {
		if candidate.Name == state {
			return append([]string{}, candidate.Cities...)
		}
	}
	return []string{}
}

// HasState reports whether state belongs to country.
func (c *Catalog) HasState(country, state string) bool {
	for _, candidate := range c.StatesOf(country) {
		if candidate == state {
			return true
		}
	}
	return false
}

// HasCity reports whether city belongs to the given country/state pair.
func (c *Catalog) HasCity(country, state, city string) bool {
	for _, candidate := range c.CitiesOf(country, state) {
		if candidate == city {
			return true
		}
	}
	return false
}

// Entries returns a deep copy of the catalog contents.
func (c *Catalog) Entries() []Country {
	if c == nil {
		return nil
	}
	out := make([]Country, 0, len(c.countries))
	for _, country := range c.countries {
		out = append(out, cloneCountry(country))
	}
	return out
}

func (c *Catalog) lookup(country string) (Country, bool) {
	if c == nil || country == "" {
		return Country{}, false
	}
	idx, ok := c.index[country]
	if !ok {
		return Country{}, false
	}
	return c.countries[idx], true
}

func cloneCountry(in Country) Country {
	out := Country{
		Name:        strings.TrimSpace(in.Name),
		DialingCode: strings.TrimSpace(in.DialingCode),
		States:      make([]State, 0, len(in.States)),
	}
	for _, state := range in.States {
		cities := make([]string, 0, len(state.Cities))
		for _, city := range state.Cities {
			cities = append(cities, strings.TrimSpace(city))
		}
		out.States = append(out.States, State{
			Name:   strings.TrimSpace(state.Name),
			Cities: cities,
		})
	}
	return out
}
