package orchestrator_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/strength"
	"github.com/goliatone/go-regform/pkg/validation"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newForm(t *testing.T, opts ...orchestrator.Option) *orchestrator.Form {
	t.Helper()
	opts = append([]orchestrator.Option{orchestrator.WithClock(func() time.Time { return fixedNow })}, opts...)
	return orchestrator.New(opts...)
}

func dispatch(t *testing.T, form *orchestrator.Form, events ...orchestrator.Event) orchestrator.Result {
	t.Helper()
	var res orchestrator.Result
	for _, ev := range events {
		var err error
		res, err = form.Dispatch(ev)
		if err != nil {
			t.Fatalf("dispatch %s: %v", ev.Kind(), err)
		}
	}
	return res
}

func text(field validation.Field, value string) orchestrator.FieldChanged {
	return orchestrator.FieldChanged{Field: field, Value: value}
}

func validEvents() []orchestrator.Event {
	return []orchestrator.Event{
		text(validation.FieldFirstName, "Asha"),
		text(validation.FieldLastName, "Patel"),
		text(validation.FieldEmail, "asha@example.com"),
		orchestrator.CountrySelected{Country: "India"},
		orchestrator.StateSelected{State: "Gujarat"},
		orchestrator.CitySelected{City: "Vadodara"},
		text(validation.FieldPhone, "+91 9876543210"),
		orchestrator.GenderToggled{Option: "Female", Checked: true},
		text(validation.FieldAddress, "  12 Station Road  "),
		text(validation.FieldPassword, "Str0ng!Pass"),
		text(validation.FieldConfirmPassword, "Str0ng!Pass"),
		orchestrator.TermsToggled{Checked: true},
	}
}

func TestNew_InitialSnapshot(t *testing.T) {
	snap := newForm(t).Snapshot()

	if snap.Phase != orchestrator.PhaseEditing {
		t.Fatalf("expected editing phase, got %s", snap.Phase)
	}
	if snap.SubmitEnabled {
		t.Fatalf("submit must start disabled")
	}
	if snap.Alert.Visible() || snap.ModalOpen {
		t.Fatalf("expected no alert and a closed modal, got %+v", snap)
	}
	if snap.StrengthLabel != strength.Placeholder {
		t.Fatalf("expected strength placeholder, got %q", snap.StrengthLabel)
	}
	if diff := cmp.Diff([]string{"Male", "Female", "Other"}, snap.GenderOptions); diff != "" {
		t.Fatalf("gender options mismatch (-want +got):\n%s", diff)
	}
	if errs := snap.Errors(); len(errs) != 0 {
		t.Fatalf("expected no errors before interaction, got %v", errs)
	}
}

func TestDispatch_SuccessfulSubmitResetsForm(t *testing.T) {
	form := newForm(t)
	dispatch(t, form, validEvents()...)

	if !form.SubmitEnabled() {
		t.Fatalf("expected submit enabled for a complete form, errors: %v", form.Snapshot().Errors())
	}

	res := dispatch(t, form, orchestrator.Submitted{})
	if res.Outcome != orchestrator.OutcomeSuccess || res.Err != nil {
		t.Fatalf("expected success, got %+v", res)
	}

	want := &orchestrator.Registration{
		FirstName:        "Asha",
		LastName:         "Patel",
		Email:            "asha@example.com",
		Phone:            "+91 9876543210",
		Gender:           []string{"Female"},
		Address:          "12 Station Road",
		Country:          "India",
		State:            "Gujarat",
		City:             "Vadodara",
		PasswordStrength: strength.LevelStrong,
		SubmittedAt:      fixedNow,
	}
	if diff := cmp.Diff(want, res.Registration); diff != "" {
		t.Fatalf("registration mismatch (-want +got):\n%s", diff)
	}

	snap := form.Snapshot()
	if snap.Phase != orchestrator.PhaseSubmittedSuccess || !snap.ModalOpen {
		t.Fatalf("expected success phase with modal open, got %s modal=%v", snap.Phase, snap.ModalOpen)
	}
	if diff := cmp.Diff(orchestrator.Alert{Kind: orchestrator.AlertSuccess, Message: orchestrator.MsgSubmitSuccess}, snap.Alert); diff != "" {
		t.Fatalf("alert mismatch (-want +got):\n%s", diff)
	}
	if snap.SubmitEnabled {
		t.Fatalf("submit must be disabled after the reset")
	}
	for _, field := range validation.TextFields {
		if got := snap.Field(field).Value; got != "" {
			t.Fatalf("field %s not cleared: %q", field, got)
		}
	}
	if snap.Selection.Country != "" || snap.Selection.StateEnabled || len(snap.Gender) != 0 || snap.Terms {
		t.Fatalf("selects and toggles not reset: %+v", snap)
	}
	if snap.Strength != strength.LevelNone {
		t.Fatalf("strength not reset: %s", snap.Strength)
	}
}

func TestDispatch_ModalBlocksUntilDismissed(t *testing.T) {
	form := newForm(t)
	dispatch(t, form, validEvents()...)
	dispatch(t, form, orchestrator.Submitted{})

	if _, err := form.Dispatch(text(validation.FieldFirstName, "Ravi")); !errors.Is(err, orchestrator.ErrModalOpen) {
		t.Fatalf("expected ErrModalOpen, got %v", err)
	}

	res := dispatch(t, form, orchestrator.ModalDismissed{})
	if res.Phase != orchestrator.PhaseEditing {
		t.Fatalf("expected editing after dismiss, got %s", res.Phase)
	}
	if form.Snapshot().ModalOpen {
		t.Fatalf("modal still open")
	}

	// Dismissing a closed modal is a no-op.
	if res := dispatch(t, form, orchestrator.ModalDismissed{}); res.Phase != orchestrator.PhaseEditing {
		t.Fatalf("unexpected phase %s", res.Phase)
	}
}

func TestDispatch_InvalidSubmitKeepsValues(t *testing.T) {
	form := newForm(t)
	dispatch(t, form,
		text(validation.FieldFirstName, "Asha"),
		text(validation.FieldEmail, "asha@example.com"),
		orchestrator.CountrySelected{Country: "India"},
		text(validation.FieldPhone, "+91 9876543210"),
		orchestrator.GenderToggled{Option: "Male", Checked: true},
		orchestrator.TermsToggled{Checked: true},
	)

	if !form.SubmitEnabled() {
		t.Fatalf("last name is not part of the default gate")
	}

	res := dispatch(t, form, orchestrator.Submitted{})
	if res.Outcome != orchestrator.OutcomeInvalid || !res.FocusTop {
		t.Fatalf("expected invalid outcome with focus request, got %+v", res)
	}
	if res.Err == nil {
		t.Fatalf("expected aggregate error")
	}
	want := map[validation.Field]string{validation.FieldLastName: validation.MsgLastNameRequired}
	if diff := cmp.Diff(want, res.Err.Messages()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	var fieldErr validation.ValidationError
	if !errors.As(res.Err, &fieldErr) || fieldErr.Field != validation.FieldLastName {
		t.Fatalf("expected last name field error, got %v", fieldErr)
	}

	snap := form.Snapshot()
	if snap.Phase != orchestrator.PhaseSubmittedInvalid {
		t.Fatalf("expected submitted_invalid, got %s", snap.Phase)
	}
	if diff := cmp.Diff(orchestrator.Alert{Kind: orchestrator.AlertError, Message: orchestrator.MsgSubmitInvalid}, snap.Alert); diff != "" {
		t.Fatalf("alert mismatch (-want +got):\n%s", diff)
	}
	if got := snap.Field(validation.FieldFirstName).Value; got != "Asha" {
		t.Fatalf("values must survive an invalid submit, got %q", got)
	}
	if !snap.Field(validation.FieldLastName).Invalid {
		t.Fatalf("last name must be highlighted")
	}

	res = dispatch(t, form, text(validation.FieldLastName, "Patel"))
	if res.Phase != orchestrator.PhaseEditing {
		t.Fatalf("an edit returns the form to editing, got %s", res.Phase)
	}
	if snap := form.Snapshot(); !snap.Alert.Visible() {
		t.Fatalf("the banner stays until the next submit")
	}

	res = dispatch(t, form, orchestrator.Submitted{})
	if res.Outcome != orchestrator.OutcomeSuccess {
		t.Fatalf("expected success after the fix, got %+v", res.Err)
	}
}

func TestDispatch_LastNameGateOption(t *testing.T) {
	form := newForm(t, orchestrator.WithLastNameGated(true))
	dispatch(t, form,
		text(validation.FieldFirstName, "Asha"),
		text(validation.FieldEmail, "asha@example.com"),
		text(validation.FieldPhone, "+1 4155550100"),
		orchestrator.GenderToggled{Option: "Other", Checked: true},
		orchestrator.TermsToggled{Checked: true},
	)
	if form.SubmitEnabled() {
		t.Fatalf("expected gate closed without a last name")
	}
	dispatch(t, form, text(validation.FieldLastName, "Patel"))
	if !form.SubmitEnabled() {
		t.Fatalf("expected gate open once last name is set")
	}
}

func TestDispatch_DisposableEmailRejected(t *testing.T) {
	form := newForm(t)
	dispatch(t, form, text(validation.FieldEmail, "someone@TempMail.com"))

	if got := form.Snapshot().Field(validation.FieldEmail).Error; got != validation.MsgEmailDisposable {
		t.Fatalf("expected disposable error, got %q", got)
	}
}

func TestDispatch_CustomDenylist(t *testing.T) {
	form := newForm(t, orchestrator.WithDenylist(validation.NewDenylist("blocked.test")))
	dispatch(t, form, text(validation.FieldEmail, "a@tempmail.com"))
	if got := form.Snapshot().Field(validation.FieldEmail).Error; got != "" {
		t.Fatalf("custom denylist replaces the default, got %q", got)
	}
	dispatch(t, form, text(validation.FieldEmail, "a@blocked.test"))
	if got := form.Snapshot().Field(validation.FieldEmail).Error; got != validation.MsgEmailDisposable {
		t.Fatalf("expected disposable error, got %q", got)
	}
}

func TestDispatch_PhoneFollowsCountry(t *testing.T) {
	form := newForm(t)
	dispatch(t, form, text(validation.FieldPhone, "+91 1234567"))
	if got := form.Snapshot().Field(validation.FieldPhone).Error; got != "" {
		t.Fatalf("expected phone accepted without a country, got %q", got)
	}

	dispatch(t, form, orchestrator.CountrySelected{Country: "India"})
	if got := form.Snapshot().Field(validation.FieldPhone).Error; got != "" {
		t.Fatalf("expected +91 number accepted for India, got %q", got)
	}

	res := dispatch(t, form, orchestrator.CountrySelected{Country: "United States"})
	if diff := cmp.Diff([]validation.Field{validation.FieldPhone}, res.Validated); diff != "" {
		t.Fatalf("country change re-validates phone (-want +got):\n%s", diff)
	}
	if got := form.Snapshot().Field(validation.FieldPhone).Error; got != "Phone must start with +1." {
		t.Fatalf("expected prefix error, got %q", got)
	}
}

func TestDispatch_ConfirmTracksPassword(t *testing.T) {
	form := newForm(t)
	dispatch(t, form,
		text(validation.FieldPassword, "abcdefgh"),
		text(validation.FieldConfirmPassword, "abcdefgX"),
	)
	if got := form.Snapshot().Field(validation.FieldConfirmPassword).Error; got != validation.MsgPasswordsDontMatch {
		t.Fatalf("expected mismatch, got %q", got)
	}

	dispatch(t, form, text(validation.FieldConfirmPassword, "abcdefgh"))
	if got := form.Snapshot().Field(validation.FieldConfirmPassword).Error; got != "" {
		t.Fatalf("expected mismatch cleared, got %q", got)
	}

	res := dispatch(t, form, text(validation.FieldPassword, "abcdefghi"))
	want := []validation.Field{validation.FieldPassword, validation.FieldConfirmPassword}
	if diff := cmp.Diff(want, res.Validated); diff != "" {
		t.Fatalf("password change re-validates confirm (-want +got):\n%s", diff)
	}
	if got := form.Snapshot().Field(validation.FieldConfirmPassword).Error; got != validation.MsgPasswordsDontMatch {
		t.Fatalf("expected mismatch after password change, got %q", got)
	}
}

func TestDispatch_StrengthMeter(t *testing.T) {
	form := newForm(t)
	cases := []struct {
		password string
		want     string
	}{
		{"abc", "Strength: Weak"},
		{"abcdefG1", "Strength: Medium"},
		{"abcdefG1!", "Strength: Strong"},
		{"", strength.Placeholder},
	}
	for _, tc := range cases {
		dispatch(t, form, text(validation.FieldPassword, tc.password))
		if got := form.Snapshot().StrengthLabel; got != tc.want {
			t.Fatalf("password %q: expected %q, got %q", tc.password, tc.want, got)
		}
	}
}

func TestDispatch_CountryChangeResetsCascade(t *testing.T) {
	form := newForm(t)
	dispatch(t, form,
		orchestrator.CountrySelected{Country: "India"},
		orchestrator.StateSelected{State: "Maharashtra"},
		orchestrator.CitySelected{City: "Pune"},
		orchestrator.CountrySelected{Country: "United States"},
	)
	sel := form.Snapshot().Selection
	if sel.State != "" || sel.City != "" || sel.CityEnabled {
		t.Fatalf("expected dependents cleared, got %+v", sel)
	}
	if diff := cmp.Diff([]string{"California", "New York"}, sel.StateOptions); diff != "" {
		t.Fatalf("state options mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatch_GenderGroup(t *testing.T) {
	form := newForm(t)
	dispatch(t, form,
		orchestrator.GenderToggled{Option: "Other", Checked: true},
		orchestrator.GenderToggled{Option: "Male", Checked: true},
	)
	if diff := cmp.Diff([]string{"Male", "Other"}, form.Snapshot().Gender); diff != "" {
		t.Fatalf("gender order mismatch (-want +got):\n%s", diff)
	}

	dispatch(t, form,
		orchestrator.GenderToggled{Option: "Male", Checked: false},
		orchestrator.GenderToggled{Option: "Other", Checked: false},
	)
	if got := form.Snapshot().Field(validation.FieldGender).Error; got != validation.MsgGenderRequired {
		t.Fatalf("expected gender error, got %q", got)
	}

	if _, err := form.Dispatch(orchestrator.GenderToggled{Option: "Robot", Checked: true}); !errors.Is(err, orchestrator.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
}

func TestDispatch_RejectsMalformedEvents(t *testing.T) {
	form := newForm(t)
	if _, err := form.Dispatch(text(validation.FieldCountry, "India")); !errors.Is(err, orchestrator.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := form.Dispatch(nil); !errors.Is(err, orchestrator.ErrUnsupportedEvent) {
		t.Fatalf("expected ErrUnsupportedEvent, got %v", err)
	}
}

func TestDispatch_ResetClearsEverything(t *testing.T) {
	form := newForm(t)
	dispatch(t, form, validEvents()...)
	dispatch(t, form, text(validation.FieldEmail, "bad"), orchestrator.Submitted{})

	res := dispatch(t, form, orchestrator.ResetRequested{})
	if res.Phase != orchestrator.PhaseEditing {
		t.Fatalf("expected editing, got %s", res.Phase)
	}

	got := form.Snapshot()
	want := orchestrator.New().Snapshot()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("reset snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	form := newForm(t)
	dispatch(t, form, orchestrator.GenderToggled{Option: "Male", Checked: true})

	snap := form.Snapshot()
	snap.Gender[0] = "Changed"
	snap.Fields[validation.FieldFirstName] = orchestrator.FieldState{Value: "x"}

	again := form.Snapshot()
	if again.Gender[0] != "Male" || again.Field(validation.FieldFirstName).Value != "" {
		t.Fatalf("snapshot mutation leaked into the form")
	}
}

// The submit gate never opens while a gated field fails its validator, and
// Invalid always mirrors a non-empty message.
func TestDispatch_GateAndErrorInvariants(t *testing.T) {
	firstNames := []string{"", " ", "Asha"}
	emails := []string{"", "bad", "a@tempmail.com", "a@example.com"}
	phones := []string{"", "+91 9876543210", "+1 4155550100", "12345"}
	countries := []string{"", "India", "United States"}

	rapid.Check(t, func(t *rapid.T) {
		form := orchestrator.New()
		steps := rapid.IntRange(1, 25).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			var ev orchestrator.Event
			switch rapid.IntRange(0, 5).Draw(t, "op") {
			case 0:
				ev = text(validation.FieldFirstName, rapid.SampledFrom(firstNames).Draw(t, "first"))
			case 1:
				ev = text(validation.FieldEmail, rapid.SampledFrom(emails).Draw(t, "email"))
			case 2:
				ev = text(validation.FieldPhone, rapid.SampledFrom(phones).Draw(t, "phone"))
			case 3:
				ev = orchestrator.CountrySelected{Country: rapid.SampledFrom(countries).Draw(t, "country")}
			case 4:
				ev = orchestrator.GenderToggled{Option: "Female", Checked: rapid.Bool().Draw(t, "gender")}
			default:
				ev = orchestrator.TermsToggled{Checked: rapid.Bool().Draw(t, "terms")}
			}
			if _, err := form.Dispatch(ev); err != nil {
				t.Fatalf("dispatch: %v", err)
			}

			snap := form.Snapshot()
			for field, state := range snap.Fields {
				if state.Invalid != (state.Error != "") {
					t.Fatalf("field %s: invalid=%v error=%q", field, state.Invalid, state.Error)
				}
			}
			if !snap.SubmitEnabled {
				continue
			}
			if validation.FirstName(snap.Field(validation.FieldFirstName).Value) != "" ||
				validation.Email(snap.Field(validation.FieldEmail).Value, validation.DefaultDenylist()) != "" ||
				validation.Phone(snap.Field(validation.FieldPhone).Value, snap.Selection.Country, form.Catalog()) != "" ||
				len(snap.Gender) == 0 || !snap.Terms {
				t.Fatalf("gate open with failing inputs: %+v", snap)
			}
		}
	})
}
