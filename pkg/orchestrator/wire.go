package orchestrator

import (
	"fmt"

	"github.com/goliatone/go-regform/pkg/validation"
)

// Envelope is the flat wire form of an Event, used by the HTTP API and the
// browser runtime. Only the members relevant to Kind are read.
type Envelope struct {
	Kind    EventKind `json:"kind"`
	Field   string    `json:"field,omitempty"`
	Value   string    `json:"value,omitempty"`
	Option  string    `json:"option,omitempty"`
	Checked bool      `json:"checked,omitempty"`
	Country string    `json:"country,omitempty"`
	State   string    `json:"state,omitempty"`
	City    string    `json:"city,omitempty"`
}

// Event decodes the envelope into its typed event.
func (e Envelope) Event() (Event, error) {
	switch e.Kind {
	case KindFieldChanged:
		field, ok := validation.ParseField(e.Field)
		if !ok || !field.IsText() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, e.Field)
		}
		return FieldChanged{Field: field, Value: e.Value}, nil
	case KindGenderToggled:
		return GenderToggled{Option: e.Option, Checked: e.Checked}, nil
	case KindCountrySelected:
		return CountrySelected{Country: e.Country}, nil
	case KindStateSelected:
		return StateSelected{State: e.State}, nil
	case KindCitySelected:
		return CitySelected{City: e.City}, nil
	case KindTermsToggled:
		return TermsToggled{Checked: e.Checked}, nil
	case KindSubmitted:
		return Submitted{}, nil
	case KindResetRequested:
		return ResetRequested{}, nil
	case KindModalDismissed:
		return ModalDismissed{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEvent, e.Kind)
	}
}

// EnvelopeOf encodes an event for the wire.
func EnvelopeOf(event Event) Envelope {
	switch ev := event.(type) {
	case FieldChanged:
		return Envelope{Kind: ev.Kind(), Field: string(ev.Field), Value: ev.Value}
	case GenderToggled:
		return Envelope{Kind: ev.Kind(), Option: ev.Option, Checked: ev.Checked}
	case CountrySelected:
		return Envelope{Kind: ev.Kind(), Country: ev.Country}
	case StateSelected:
		return Envelope{Kind: ev.Kind(), State: ev.State}
	case CitySelected:
		return Envelope{Kind: ev.Kind(), City: ev.City}
	case TermsToggled:
		return Envelope{Kind: ev.Kind(), Checked: ev.Checked}
	case nil:
		return Envelope{}
	default:
		return Envelope{Kind: ev.Kind()}
	}
}
