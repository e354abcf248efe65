package orchestrator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-regform/pkg/cascade"
	"github.com/goliatone/go-regform/pkg/location"
	"github.com/goliatone/go-regform/pkg/strength"
	"github.com/goliatone/go-regform/pkg/validation"
)

var (
	// ErrUnknownField is returned for events naming a field the form does not
	// edit as text.
	ErrUnknownField = errors.New("orchestrator: unknown field")
	// ErrUnknownOption is returned for gender options outside the group.
	ErrUnknownOption = errors.New("orchestrator: unknown gender option")
	// ErrModalOpen is returned for any event other than ModalDismissed while
	// the success modal covers the form.
	ErrModalOpen = errors.New("orchestrator: success modal is open")
	// ErrUnsupportedEvent is returned for event types Dispatch does not know.
	ErrUnsupportedEvent = errors.New("orchestrator: unsupported event")
)

// DefaultGenderOptions are the checkboxes of the gender group.
var DefaultGenderOptions = []string{"Male", "Female", "Other"}

// Option customises a Form.
type Option func(*Form)

// WithCatalog replaces the bundled location catalog.
func WithCatalog(catalog *location.Catalog) Option {
	return func(f *Form) {
		if catalog != nil {
			f.catalog = catalog
		}
	}
}

// WithDenylist replaces the disposable email domain denylist.
func WithDenylist(denylist validation.Denylist) Option {
	return func(f *Form) {
		f.denylist = denylist
		f.denylistSet = true
	}
}

// WithGenderOptions replaces the gender checkboxes.
func WithGenderOptions(options ...string) Option {
	return func(f *Form) {
		var clean []string
		for _, option := range options {
			if trimmed := strings.TrimSpace(option); trimmed != "" {
				clean = append(clean, trimmed)
			}
		}
		if len(clean) > 0 {
			f.genderOptions = clean
		}
	}
}

// WithClock overrides the time source stamped on registrations.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// WithLastNameGated makes an empty last name disable the submit button too.
// By default last name only blocks the submit itself, through the full
// re-validation.
func WithLastNameGated(gated bool) Option {
	return func(f *Form) {
		f.lastNameGated = gated
	}
}

// Form is the registration form model.
type Form struct {
	catalog       *location.Catalog
	denylist      validation.Denylist
	denylistSet   bool
	rules         validation.Rules
	genderOptions []string
	lastNameGated bool
	now           func() time.Time

	cascade  *cascade.Controller
	values   map[validation.Field]string
	errors   map[validation.Field]string
	gender   []string
	terms    bool
	strength strength.Level

	phase         Phase
	alert         Alert
	modalOpen     bool
	submitEnabled bool
}

// New constructs a Form in its initial Editing state. Missing collaborators
// default to the bundled catalog and denylist.
func New(options ...Option) *Form {
	f := &Form{
		genderOptions: append([]string{}, DefaultGenderOptions...),
		now:           time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.catalog == nil {
		f.catalog = location.Default()
	}
	if !f.denylistSet {
		f.denylist = validation.DefaultDenylist()
	}
	f.rules = validation.Rules{Codes: f.catalog, Denylist: f.denylist}
	f.cascade = cascade.New(f.catalog)
	f.clear()
	return f
}

// Catalog exposes the location catalog backing the selects.
func (f *Form) Catalog() *location.Catalog {
	return f.catalog
}

// Phase returns the current lifecycle phase.
func (f *Form) Phase() Phase {
	return f.phase
}

// SubmitEnabled reports the submit gate.
func (f *Form) SubmitEnabled() bool {
	return f.submitEnabled
}

// Dispatch applies one event. Validation failures are never returned as
// errors; they land in the field state, and a rejected submit is reported
// through Result.Err. The error return is reserved for malformed events.
func (f *Form) Dispatch(event Event) (Result, error) {
	if event == nil {
		return Result{Phase: f.phase}, fmt.Errorf("%w: nil event", ErrUnsupportedEvent)
	}
	if f.modalOpen {
		if _, ok := event.(ModalDismissed); !ok {
			return Result{Phase: f.phase}, ErrModalOpen
		}
	}

	var (
		res Result
		err error
	)
	switch ev := event.(type) {
	case FieldChanged:
		res, err = f.changeField(ev)
	case GenderToggled:
		res, err = f.toggleGender(ev)
	case CountrySelected:
		res = f.selectCountry(ev)
	case StateSelected:
		f.cascade.SelectState(ev.State)
		res = f.edited()
	case CitySelected:
		f.cascade.SelectCity(ev.City)
		res = f.edited()
	case TermsToggled:
		f.terms = ev.Checked
		res = f.edited(f.validate(validation.FieldTerms)...)
	case Submitted:
		res = f.submit()
	case ResetRequested:
		res = f.reset()
	case ModalDismissed:
		res = f.dismissModal()
	default:
		return Result{Phase: f.phase}, fmt.Errorf("%w: %T", ErrUnsupportedEvent, event)
	}
	if err != nil {
		return Result{Phase: f.phase}, err
	}

	f.updateSubmitGate()
	res.Phase = f.phase
	return res, nil
}

func (f *Form) changeField(ev FieldChanged) (Result, error) {
	if !ev.Field.IsText() {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownField, ev.Field)
	}
	f.values[ev.Field] = ev.Value

	switch ev.Field {
	case validation.FieldPassword:
		f.strength = strength.Classify(ev.Value)
		return f.edited(f.validate(validation.FieldPassword, validation.FieldConfirmPassword)...), nil
	case validation.FieldAddress:
		return f.edited(), nil
	default:
		return f.edited(f.validate(ev.Field)...), nil
	}
}

func (f *Form) toggleGender(ev GenderToggled) (Result, error) {
	if !containsString(f.genderOptions, ev.Option) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownOption, ev.Option)
	}

	checked := make(map[string]bool, len(f.gender)+1)
	for _, option := range f.gender {
		checked[option] = true
	}
	checked[ev.Option] = ev.Checked

	f.gender = f.gender[:0]
	for _, option := range f.genderOptions {
		if checked[option] {
			f.gender = append(f.gender, option)
		}
	}
	return f.edited(f.validate(validation.FieldGender)...), nil
}

func (f *Form) selectCountry(ev CountrySelected) Result {
	f.cascade.SelectCountry(ev.Country)
	// The prefix rule depends on the country.
	return f.edited(f.validate(validation.FieldPhone)...)
}

// edited moves the form back to Editing after a user edit. The alert stays
// until the next submit or reset.
func (f *Form) edited(validated ...validation.Field) Result {
	if f.phase == PhaseSubmittedInvalid {
		f.phase = PhaseEditing
	}
	return Result{Validated: validated}
}

func (f *Form) submit() Result {
	f.strength = strength.Classify(f.values[validation.FieldPassword])
	validated := f.validate(validation.ValidatedFields...)

	if errs := f.outstanding(); len(errs) > 0 {
		f.phase = PhaseSubmittedInvalid
		f.alert = Alert{Kind: AlertError, Message: MsgSubmitInvalid}
		return Result{
			Outcome:   OutcomeInvalid,
			Validated: validated,
			Err:       &validation.AggregateSubmissionError{Errors: errs},
			FocusTop:  true,
		}
	}

	registration := f.registration()
	f.clear()
	f.phase = PhaseSubmittedSuccess
	f.alert = Alert{Kind: AlertSuccess, Message: MsgSubmitSuccess}
	f.modalOpen = true
	return Result{
		Outcome:      OutcomeSuccess,
		Validated:    validated,
		Registration: &registration,
	}
}

func (f *Form) reset() Result {
	f.clear()
	f.phase = PhaseEditing
	return Result{}
}

func (f *Form) dismissModal() Result {
	if f.modalOpen {
		f.modalOpen = false
		if f.phase == PhaseSubmittedSuccess {
			f.phase = PhaseEditing
		}
	}
	return Result{}
}

// clear restores every field, the selects, the strength meter and the alert
// to their initial values. The modal is left alone.
func (f *Form) clear() {
	f.values = make(map[validation.Field]string, len(validation.TextFields))
	f.errors = make(map[validation.Field]string, len(validation.ValidatedFields))
	f.gender = nil
	f.terms = false
	f.strength = strength.LevelNone
	f.alert = Alert{}
	f.cascade.Reset()
	f.updateSubmitGate()
}

func (f *Form) validate(fields ...validation.Field) []validation.Field {
	in := f.input()
	for _, field := range fields {
		if msg := f.rules.Validate(field, in); msg != "" {
			f.errors[field] = msg
		} else {
			delete(f.errors, field)
		}
	}
	return fields
}

func (f *Form) outstanding() []validation.ValidationError {
	var out []validation.ValidationError
	for _, field := range validation.ValidatedFields {
		if msg := f.errors[field]; msg != "" {
			out = append(out, validation.ValidationError{Field: field, Message: msg})
		}
	}
	return out
}

// updateSubmitGate derives the submit button state from the current values.
// Password and confirmation are left to the submit-time re-validation.
func (f *Form) updateSubmitGate() {
	in := f.input()
	enabled := validation.FirstName(in.FirstName) == "" &&
		validation.Email(in.Email, f.denylist) == "" &&
		validation.Phone(in.Phone, in.Country, f.catalog) == "" &&
		validation.Gender(in.Gender) == "" &&
		validation.Terms(in.Terms) == ""
	if f.lastNameGated {
		enabled = enabled && validation.LastName(in.LastName) == ""
	}
	f.submitEnabled = enabled
}

func (f *Form) input() validation.Input {
	return validation.Input{
		FirstName:       f.values[validation.FieldFirstName],
		LastName:        f.values[validation.FieldLastName],
		Email:           f.values[validation.FieldEmail],
		Phone:           f.values[validation.FieldPhone],
		Country:         f.cascade.Country(),
		Gender:          f.gender,
		Password:        f.values[validation.FieldPassword],
		ConfirmPassword: f.values[validation.FieldConfirmPassword],
		Terms:           f.terms,
	}
}

func (f *Form) registration() Registration {
	sel := f.cascade.Selection()
	return Registration{
		FirstName:        strings.TrimSpace(f.values[validation.FieldFirstName]),
		LastName:         strings.TrimSpace(f.values[validation.FieldLastName]),
		Email:            strings.TrimSpace(f.values[validation.FieldEmail]),
		Phone:            strings.TrimSpace(f.values[validation.FieldPhone]),
		Gender:           append([]string{}, f.gender...),
		Address:          strings.TrimSpace(f.values[validation.FieldAddress]),
		Country:          sel.Country,
		State:            sel.State,
		City:             sel.City,
		PasswordStrength: f.strength,
		SubmittedAt:      f.now().UTC(),
	}
}

// Snapshot copies the current state for rendering.
func (f *Form) Snapshot() Snapshot {
	fields := make(map[validation.Field]FieldState, len(validation.TextFields)+2)
	for _, field := range validation.TextFields {
		msg := f.errors[field]
		fields[field] = FieldState{Value: f.values[field], Error: msg, Invalid: msg != ""}
	}
	for _, field := range []validation.Field{validation.FieldGender, validation.FieldTerms} {
		msg := f.errors[field]
		fields[field] = FieldState{Error: msg, Invalid: msg != ""}
	}
	if f.terms {
		fields[validation.FieldTerms] = FieldState{
			Value:   "on",
			Error:   fields[validation.FieldTerms].Error,
			Invalid: fields[validation.FieldTerms].Invalid,
		}
	}

	return Snapshot{
		Phase:         f.phase,
		Fields:        fields,
		Gender:        append([]string{}, f.gender...),
		GenderOptions: append([]string{}, f.genderOptions...),
		Terms:         f.terms,
		Selection:     f.cascade.Selection(),
		Strength:      f.strength,
		StrengthLabel: f.strength.Label(),
		SubmitEnabled: f.submitEnabled,
		Alert:         f.alert,
		ModalOpen:     f.modalOpen,
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
