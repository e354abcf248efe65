package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/location"
	"github.com/goliatone/go-regform/pkg/validation"
)

func TestNames(t *testing.T) {
	cases := map[string]string{
		"":      validation.MsgFirstNameRequired,
		"   ":   validation.MsgFirstNameRequired,
		"Amit":  "",
		" Ada ": "",
	}
	for input, want := range cases {
		if got := validation.FirstName(input); got != want {
			t.Errorf("FirstName(%q) = %q, want %q", input, got, want)
		}
	}
	if got := validation.LastName("\t"); got != validation.MsgLastNameRequired {
		t.Errorf("LastName(blank) = %q", got)
	}
	if got := validation.LastName("Shah"); got != "" {
		t.Errorf("LastName(Shah) = %q", got)
	}
}

func TestEmail(t *testing.T) {
	deny := validation.DefaultDenylist()
	cases := []struct {
		input string
		want  string
	}{
		{"", validation.MsgEmailInvalid},
		{"amit@example", validation.MsgEmailInvalid},
		{"amit example@x.com", validation.MsgEmailInvalid},
		{"a@b@c.com", validation.MsgEmailInvalid},
		{"amit.shah@example.com", ""},
		{"  John.Doe@Example.COM ", ""},
		{"user@TempMail.com", validation.MsgEmailDisposable},
		{"user@mailinator.com", validation.MsgEmailDisposable},
		{"user@sub.mailinator.com", ""},
	}
	for _, tc := range cases {
		if got := validation.Email(tc.input, deny); got != tc.want {
			t.Errorf("Email(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestEmail_ZeroDenylistBlocksNothing(t *testing.T) {
	if got := validation.Email("user@tempmail.com", validation.Denylist{}); got != "" {
		t.Fatalf("expected zero denylist to allow domain, got %q", got)
	}
}

func TestPhone(t *testing.T) {
	catalog := location.Default()
	cases := []struct {
		name    string
		value   string
		country string
		want    string
	}{
		{"empty", "", "India", validation.MsgPhoneRequired},
		{"blank", "   ", "", validation.MsgPhoneRequired},
		{"wrong prefix", "+1 5551234567", "India", "Phone must start with +91."},
		{"prefix ok but too short", "+91 12345", "India", validation.MsgPhoneInvalid},
		{"prefix ok minimum digits", "+91 1234567", "India", ""},
		{"india valid", "+91 9876543210", "India", ""},
		{"us valid", "+1 5551234567", "United States", ""},
		{"no country", "+44 2071234567", "", ""},
		{"no plus", "919876543210", "", validation.MsgPhoneInvalid},
		{"letters", "+91 98765abcde", "India", validation.MsgPhoneInvalid},
		{"unknown country skips prefix", "+44 2071234567", "Atlantis", ""},
		{"too many digits", "+1 1234567890123456", "United States", validation.MsgPhoneInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validation.Phone(tc.value, tc.country, catalog); got != tc.want {
				t.Fatalf("Phone(%q, %q) = %q, want %q", tc.value, tc.country, got, tc.want)
			}
		})
	}
}

func TestPasswordAndConfirm(t *testing.T) {
	if got := validation.Password(""); got != "" {
		t.Errorf("empty password should not error, got %q", got)
	}
	if got := validation.Password("short"); got != validation.MsgPasswordTooShort {
		t.Errorf("short password = %q", got)
	}
	if got := validation.Password("abcdefgh"); got != "" {
		t.Errorf("8 char password = %q", got)
	}
	// Length counts characters, not bytes or UTF-16 units.
	if got := validation.Password("😀😀😀😀"); got != validation.MsgPasswordTooShort {
		t.Errorf("4 emoji password = %q", got)
	}
	if got := validation.Password("pässwört"); got != "" {
		t.Errorf("8 character non-ASCII password = %q", got)
	}

	cases := []struct {
		password, confirm, want string
	}{
		{"", "", ""},
		{"", "stray", ""},
		{"StrongPass1!", "", validation.MsgConfirmRequired},
		{"StrongPass1!", "Mismatch123", validation.MsgPasswordsDontMatch},
		{"StrongPass1!", "StrongPass1!", ""},
	}
	for _, tc := range cases {
		if got := validation.ConfirmPassword(tc.password, tc.confirm); got != tc.want {
			t.Errorf("ConfirmPassword(%q, %q) = %q, want %q", tc.password, tc.confirm, got, tc.want)
		}
	}
}

func TestGenderAndTerms(t *testing.T) {
	if got := validation.Gender(nil); got != validation.MsgGenderRequired {
		t.Errorf("Gender(nil) = %q", got)
	}
	if got := validation.Gender([]string{"Male"}); got != "" {
		t.Errorf("Gender(Male) = %q", got)
	}
	if got := validation.Terms(false); got != validation.MsgTermsRequired {
		t.Errorf("Terms(false) = %q", got)
	}
	if got := validation.Terms(true); got != "" {
		t.Errorf("Terms(true) = %q", got)
	}
}

func TestRules_ValidateAll(t *testing.T) {
	rules := validation.Rules{Codes: location.Default(), Denylist: validation.DefaultDenylist()}

	input := validation.Input{
		FirstName:       "Amit",
		Email:           "amit@example.com",
		Country:         "India",
		Phone:           "+91 9876543210",
		Gender:          []string{"Male"},
		Password:        "StrongPass1!",
		ConfirmPassword: "StrongPass1!",
		Terms:           true,
	}

	got := rules.ValidateAll(input)
	want := []validation.ValidationError{{Field: validation.FieldLastName, Message: validation.MsgLastNameRequired}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	err := rules.Check(input)
	var aggregate *validation.AggregateSubmissionError
	if !errors.As(err, &aggregate) {
		t.Fatalf("expected AggregateSubmissionError, got %v", err)
	}
	var fieldErr validation.ValidationError
	if !errors.As(err, &fieldErr) || fieldErr.Field != validation.FieldLastName {
		t.Fatalf("expected wrapped last name error, got %v", fieldErr)
	}

	input.LastName = "Shah"
	if err := rules.Check(input); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestDenylist(t *testing.T) {
	deny := validation.NewDenylist(" Example.ORG ", "")
	if !deny.Contains("example.org") {
		t.Fatalf("expected normalized match")
	}
	extended := deny.With("spam.io")
	if deny.Contains("spam.io") {
		t.Fatalf("With must not mutate the receiver")
	}
	if diff := cmp.Diff([]string{"example.org", "spam.io"}, extended.Domains()); diff != "" {
		t.Fatalf("domains mismatch (-want +got):\n%s", diff)
	}
}

func TestParseField(t *testing.T) {
	if f, ok := validation.ParseField("confirmPassword"); !ok || f != validation.FieldConfirmPassword {
		t.Fatalf("unexpected parse result %q %v", f, ok)
	}
	if _, ok := validation.ParseField("age"); ok {
		t.Fatalf("expected unknown field to be rejected")
	}
	if validation.FieldAddress.Validated() {
		t.Fatalf("address carries no validator")
	}
}
