package orchestrator

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/goliatone/go-regform/pkg/cascade"
	"github.com/goliatone/go-regform/pkg/strength"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Phase is the position of the form in its submit lifecycle.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmittedInvalid
	PhaseSubmittedSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmittedInvalid:
		return "submitted_invalid"
	case PhaseSubmittedSuccess:
		return "submitted_success"
	default:
		return "editing"
	}
}

// MarshalJSON encodes the phase by name.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes the names produced by MarshalJSON.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "editing":
		*p = PhaseEditing
	case "submitted_invalid":
		*p = PhaseSubmittedInvalid
	case "submitted_success":
		*p = PhaseSubmittedSuccess
	default:
		return fmt.Errorf("orchestrator: unknown phase %q", raw)
	}
	return nil
}

// AlertKind selects the banner style.
type AlertKind string

const (
	AlertNone    AlertKind = ""
	AlertError   AlertKind = "error"
	AlertSuccess AlertKind = "success"
)

// Alert is the single banner above the form.
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Message string    `json:"message"`
}

// Visible reports whether the banner is shown.
func (a Alert) Visible() bool {
	return a.Kind != AlertNone
}

// Banner texts.
const (
	MsgSubmitInvalid = "Please correct the highlighted errors."
	MsgSubmitSuccess = "Registration Successful! Your profile has been submitted successfully."
)

// FieldState is the value of one field plus its derived error. Invalid is
// true exactly when Error is non-empty.
type FieldState struct {
	Value   string `json:"value"`
	Error   string `json:"error"`
	Invalid bool   `json:"invalid"`
}

// Snapshot is an immutable copy of the form state handed to renderers.
type Snapshot struct {
	Phase         Phase                           `json:"phase"`
	Fields        map[validation.Field]FieldState `json:"fields"`
	Gender        []string                        `json:"gender"`
	GenderOptions []string                        `json:"genderOptions"`
	Terms         bool                            `json:"terms"`
	Selection     cascade.Selection               `json:"selection"`
	Strength      strength.Level                  `json:"strength"`
	StrengthLabel string                          `json:"strengthLabel"`
	SubmitEnabled bool                            `json:"submitEnabled"`
	Alert         Alert                           `json:"alert"`
	ModalOpen     bool                            `json:"modalOpen"`
}

// Field returns the state of f; unknown fields yield the zero value.
func (s Snapshot) Field(f validation.Field) FieldState {
	return s.Fields[f]
}

// Errors lists the outstanding field errors in validation order.
func (s Snapshot) Errors() []validation.ValidationError {
	var out []validation.ValidationError
	for _, field := range validation.ValidatedFields {
		if state := s.Fields[field]; state.Error != "" {
			out = append(out, validation.ValidationError{Field: field, Message: state.Error})
		}
	}
	return out
}

// GenderChecked reports whether option is checked.
func (s Snapshot) GenderChecked(option string) bool {
	for _, checked := range s.Gender {
		if checked == option {
			return true
		}
	}
	return false
}

// Registration is the record captured by a successful submit, before the
// form resets. Passwords are never part of it.
type Registration struct {
	FirstName        string         `json:"firstName"`
	LastName         string         `json:"lastName"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	Gender           []string       `json:"gender"`
	Address          string         `json:"address,omitempty"`
	Country          string         `json:"country,omitempty"`
	State            string         `json:"state,omitempty"`
	City             string         `json:"city,omitempty"`
	PasswordStrength strength.Level `json:"passwordStrength"`
	SubmittedAt      time.Time      `json:"submittedAt"`
}

// Outcome summarises what a Dispatch call did to the submit lifecycle.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeInvalid Outcome = "invalid"
	OutcomeSuccess Outcome = "success"
)

// Result reports the effect of one event.
type Result struct {
	Phase   Phase
	Outcome Outcome
	// Validated lists the fields whose validators ran for this event.
	Validated []validation.Field
	// Err is set when a submit was rejected.
	Err *validation.AggregateSubmissionError
	// Registration is set when a submit succeeded.
	Registration *Registration
	// FocusTop asks the host to bring the aggregate error banner into view.
	FocusTop bool
}
