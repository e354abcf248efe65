// Package sanitize detects markup in free text submitted to the event API.
// Values are never rewritten: the form validates exactly what was sent and
// renderers escape on output.
package sanitize

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-regform/pkg/validation"
)

// ErrMarkup is returned by Check for a text value carrying HTML tags.
var ErrMarkup = errors.New("sanitize: value contains markup")

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// ContainsMarkup reports whether the strict policy would drop anything from
// raw. Entities and a bare "<" are text, not markup.
func ContainsMarkup(raw string) bool {
	if !strings.Contains(raw, "<") {
		return false
	}
	return html.UnescapeString(strictPolicy().Sanitize(raw)) != html.UnescapeString(raw)
}

// Applies reports whether values of field are checked. Passwords may
// contain any character.
func Applies(field validation.Field) bool {
	switch field {
	case validation.FieldPassword, validation.FieldConfirmPassword:
		return false
	default:
		return field.IsText()
	}
}

// Check fails with ErrMarkup when a checked field carries markup.
func Check(field validation.Field, value string) error {
	if !Applies(field) || !ContainsMarkup(value) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMarkup, field)
}
