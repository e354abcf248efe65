package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/validation"
)

// ErrorMapping splits feedback into field-level messages keyed by logical
// field name and form-level messages shown in the banner.
type ErrorMapping struct {
	Fields map[validation.Field][]string
	Form   []string
}

// FieldError returns the first message recorded for field, or "".
func (m ErrorMapping) FieldError(field validation.Field) string {
	if messages := m.Fields[field]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapSnapshot collects the field errors and the error banner of a snapshot.
// A success banner is not an error and is left out.
func MapSnapshot(snapshot orchestrator.Snapshot) ErrorMapping {
	mapping := ErrorMapping{}
	for _, fieldErr := range snapshot.Errors() {
		mapping.add(fieldErr.Field, fieldErr.Message)
	}
	if snapshot.Alert.Kind == orchestrator.AlertError {
		mapping.Form = MergeFormErrors(mapping.Form, snapshot.Alert.Message)
	}
	return mapping
}

// MapError turns a rejected submission into an ErrorMapping. Errors that do
// not carry field information become form-level messages.
func MapError(err error) ErrorMapping {
	mapping := ErrorMapping{}
	if err == nil {
		return mapping
	}

	var aggregate *validation.AggregateSubmissionError
	if errors.As(err, &aggregate) {
		for _, fieldErr := range aggregate.Errors {
			mapping.add(fieldErr.Field, fieldErr.Message)
		}
		mapping.Form = MergeFormErrors(mapping.Form, orchestrator.MsgSubmitInvalid)
		return mapping
	}

	var fieldErr validation.ValidationError
	if errors.As(err, &fieldErr) {
		mapping.add(fieldErr.Field, fieldErr.Message)
		return mapping
	}

	mapping.Form = MergeFormErrors(mapping.Form, err.Error())
	return mapping
}

func (m *ErrorMapping) add(field validation.Field, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	if m.Fields == nil {
		m.Fields = make(map[validation.Field][]string)
	}
	m.Fields[field] = normalizeMessages(append(m.Fields[field], message))
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
