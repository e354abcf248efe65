// Package cascade keeps the country → state → city selects consistent with a
// location catalog. Changing a parent clears and disables its dependents until
// a new parent value is chosen.
package cascade

// Catalog is the lookup surface the controller needs. *location.Catalog
// satisfies it.
type Catalog interface {
	Countries() []string
	StatesOf(country string) []string
	CitiesOf(country, state string) []string
}

// Selection is the observable state of the three selects. Empty strings mean
// "nothing selected".
type Selection struct {
	Country        string   `json:"country"`
	State          string   `json:"state"`
	City           string   `json:"city"`
	CountryOptions []string `json:"countryOptions"`
	StateOptions   []string `json:"stateOptions"`
	CityOptions    []string `json:"cityOptions"`
	StateEnabled   bool     `json:"stateEnabled"`
	CityEnabled    bool     `json:"cityEnabled"`
}

// Controller owns a Selection. It is not safe for concurrent use.
type Controller struct {
	catalog Catalog
	sel     Selection
}

// New returns a controller in its unset state.
func New(catalog Catalog) *Controller {
	c := &Controller{catalog: catalog}
	c.Reset()
	return c
}

// Reset clears all three selections and disables state and city.
func (c *Controller) Reset() {
	c.sel = Selection{
		CountryOptions: c.countries(),
		StateOptions:   []string{},
		CityOptions:    []string{},
	}
}

// SelectCountry rebuilds the state options for country. An empty or unknown
// country leaves the state select disabled. State and city are always cleared
// and the city select stays disabled until a state is chosen.
func (c *Controller) SelectCountry(country string) {
	c.sel.State = ""
	c.sel.City = ""
	c.sel.CityOptions = []string{}
	c.sel.CityEnabled = false

	if !contains(c.sel.CountryOptions, country) {
		c.sel.Country = ""
		c.sel.StateOptions = []string{}
		c.sel.StateEnabled = false
		return
	}

	c.sel.Country = country
	c.sel.StateOptions = c.statesOf(country)
	c.sel.StateEnabled = true
}

// SelectState rebuilds the city options for state. It is ignored while the
// state select is disabled; an empty or unknown state disables the city
// select. The city is always cleared.
func (c *Controller) SelectState(state string) {
	if !c.sel.StateEnabled {
		return
	}
	c.sel.City = ""
	c.sel.CityOptions = []string{}
	c.sel.CityEnabled = false

	if c.sel.Country == "" || !contains(c.sel.StateOptions, state) {
		c.sel.State = ""
		return
	}

	c.sel.State = state
	c.sel.CityOptions = c.citiesOf(c.sel.Country, state)
	c.sel.CityEnabled = true
}

// SelectCity records city when it is one of the current options. Anything
// else clears the city. Ignored while the city select is disabled.
func (c *Controller) SelectCity(city string) {
	if !c.sel.CityEnabled {
		return
	}
	if !contains(c.sel.CityOptions, city) {
		c.sel.City = ""
		return
	}
	c.sel.City = city
}

// Selection returns a copy of the current state.
func (c *Controller) Selection() Selection {
	out := c.sel
	out.CountryOptions = append([]string{}, c.sel.CountryOptions...)
	out.StateOptions = append([]string{}, c.sel.StateOptions...)
	out.CityOptions = append([]string{}, c.sel.CityOptions...)
	return out
}

// Country returns the selected country, or "".
func (c *Controller) Country() string {
	return c.sel.Country
}

func (c *Controller) countries() []string {
	if c.catalog == nil {
		return []string{}
	}
	return append([]string{}, c.catalog.Countries()...)
}

func (c *Controller) statesOf(country string) []string {
	if c.catalog == nil {
		return []string{}
	}
	return append([]string{}, c.catalog.StatesOf(country)...)
}

func (c *Controller) citiesOf(country, state string) []string {
	if c.catalog == nil {
		return []string{}
	}
	return append([]string{}, c.catalog.CitiesOf(country, state)...)
}

func contains(values []string, target string) bool {
	if target == "" {
		return false
	}
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
