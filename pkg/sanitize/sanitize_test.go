package sanitize

import (
	"errors"
	"testing"

	"github.com/goliatone/go-regform/pkg/validation"
)

func TestContainsMarkup(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{name: "plain", in: "Asha", want: false},
		{name: "tags", in: "<b>Asha</b>", want: true},
		{name: "empty element", in: "<i></i>", want: true},
		{name: "script", in: "Asha<script>alert(1)</script>", want: true},
		{name: "phone with tags", in: "+91 <b>9876543210</b>", want: true},
		{name: "ampersand", in: "12 Station Road & Mill Lane", want: false},
		{name: "entity", in: "Tom &amp; Jerry", want: false},
		{name: "less than", in: "a < b", want: false},
		{name: "empty", in: "", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContainsMarkup(tc.in); got != tc.want {
				t.Fatalf("ContainsMarkup(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCheckSkipsPasswords(t *testing.T) {
	raw := "<b>Str0ng!</b>"
	if err := Check(validation.FieldPassword, raw); err != nil {
		t.Fatalf("password rejected: %v", err)
	}
	if err := Check(validation.FieldConfirmPassword, raw); err != nil {
		t.Fatalf("confirm password rejected: %v", err)
	}
	if err := Check(validation.FieldAddress, raw); !errors.Is(err, ErrMarkup) {
		t.Fatalf("expected ErrMarkup for address, got %v", err)
	}
	if err := Check(validation.FieldAddress, "12 Station Road"); err != nil {
		t.Fatalf("plain address rejected: %v", err)
	}
}
