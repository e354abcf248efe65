// Package validation holds one pure validator per registration field. Each
// validator returns the field's error message, or "" when the value is
// acceptable. Validators never fail: a value whose validity cannot be decided
// is treated as valid.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-regform/pkg/strength"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+\d{1,3}\s?\d{6,15}$`)
)

// DialingCodes resolves a country's phone prefix. *location.Catalog
// satisfies it.
type DialingCodes interface {
	DialingCode(country string) (string, error)
}

// FirstName requires a non-blank value.
func FirstName(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgFirstNameRequired
	}
	return ""
}

// LastName requires a non-blank value.
func LastName(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgLastNameRequired
	}
	return ""
}

// Email checks the basic local@domain.tld shape of the trimmed, lowercased
// value and rejects domains on the denylist.
func Email(value string, denylist Denylist) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if !emailPattern.MatchString(normalized) {
		return MsgEmailInvalid
	}
	if denylist.Contains(EmailDomain(normalized)) {
		return MsgEmailDisposable
	}
	return ""
}

// EmailDomain returns the part after the first "@", or "".
func EmailDomain(email string) string {
	_, domain, found := strings.Cut(email, "@")
	if !found {
		return ""
	}
	return domain
}

// Phone requires a value, checks the selected country's dialing code prefix
// and finally the overall +<code><optional space><digits> shape. A country the
// resolver does not know skips the prefix check.
func Phone(value, country string, codes DialingCodes) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return MsgPhoneRequired
	}
	if country != "" && codes != nil {
		if code, err := codes.DialingCode(country); err == nil && code != "" {
			if !strings.HasPrefix(trimmed, code) {
				return fmt.Sprintf(MsgPhonePrefixFormat, code)
			}
		}
	}
	if !phonePattern.MatchString(trimmed) {
		return MsgPhoneInvalid
	}
	return ""
}

// Gender requires at least one checked option.
func Gender(selected []string) string {
	for _, option := range selected {
		if strings.TrimSpace(option) != "" {
			return ""
		}
	}
	return MsgGenderRequired
}

// Password only enforces the minimum length, and only once something was
// typed. Strength is reported separately and never blocks.
func Password(value string) string {
	if value == "" {
		return ""
	}
	if utf8.RuneCountInString(value) < strength.MinLength {
		return MsgPasswordTooShort
	}
	return ""
}

// ConfirmPassword requires confirmation once a password is entered and
// rejects a differing confirmation.
func ConfirmPassword(password, confirm string) string {
	if confirm == "" && password != "" {
		return MsgConfirmRequired
	}
	if confirm != "" && password != "" && confirm != password {
		return MsgPasswordsDontMatch
	}
	return ""
}

// Terms requires the checkbox to be checked.
func Terms(checked bool) string {
	if !checked {
		return MsgTermsRequired
	}
	return ""
}
