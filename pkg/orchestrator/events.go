package orchestrator

import "github.com/goliatone/go-regform/pkg/validation"

// EventKind names an event type on the wire and in logs.
type EventKind string

const (
	KindFieldChanged    EventKind = "field_changed"
	KindGenderToggled   EventKind = "gender_toggled"
	KindCountrySelected EventKind = "country_selected"
	KindStateSelected   EventKind = "state_selected"
	KindCitySelected    EventKind = "city_selected"
	KindTermsToggled    EventKind = "terms_toggled"
	KindSubmitted       EventKind = "submitted"
	KindResetRequested  EventKind = "reset_requested"
	KindModalDismissed  EventKind = "modal_dismissed"
)

// Event is a single user action.
type Event interface {
	Kind() EventKind
}

// FieldChanged carries the new raw value of a text field.
type FieldChanged struct {
	Field validation.Field
	Value string
}

// GenderToggled checks or unchecks one option of the gender group.
type GenderToggled struct {
	Option  string
	Checked bool
}

// CountrySelected changes the country select; "" unsets it.
type CountrySelected struct {
	Country string
}

// StateSelected changes the state select; "" unsets it.
type StateSelected struct {
	State string
}

// CitySelected changes the city select; "" unsets it.
type CitySelected struct {
	City string
}

// TermsToggled checks or unchecks the terms checkbox.
type TermsToggled struct {
	Checked bool
}

// Submitted is the submit button.
type Submitted struct{}

// ResetRequested is the reset button.
type ResetRequested struct{}

// ModalDismissed closes the success modal.
type ModalDismissed struct{}

func (FieldChanged) Kind() EventKind    { return KindFieldChanged }
func (GenderToggled) Kind() EventKind   { return KindGenderToggled }
func (CountrySelected) Kind() EventKind { return KindCountrySelected }
func (StateSelected) Kind() EventKind   { return KindStateSelected }
func (CitySelected) Kind() EventKind    { return KindCitySelected }
func (TermsToggled) Kind() EventKind    { return KindTermsToggled }
func (Submitted) Kind() EventKind       { return KindSubmitted }
func (ResetRequested) Kind() EventKind  { return KindResetRequested }
func (ModalDismissed) Kind() EventKind  { return KindModalDismissed }
