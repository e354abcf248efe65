package validation

import (
	"fmt"
	"strings"
)

// ValidationError is a field-level failure carrying the fixed message shown
// beside the field.
type ValidationError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// AggregateSubmissionError reports that one or more ValidationErrors were
// outstanding when the form was submitted.
type AggregateSubmissionError struct {
	Errors []ValidationError `json:"errors"`
}

func (e *AggregateSubmissionError) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return "validation: submission rejected"
	}
	names := make([]string, 0, len(e.Errors))
	for _, fieldErr := range e.Errors {
		names = append(names, string(fieldErr.Field))
	}
	return fmt.Sprintf("validation: submission rejected, %d invalid field(s): %s", len(e.Errors), strings.Join(names, ", "))
}

// Unwrap exposes the field errors to errors.Is / errors.As.
func (e *AggregateSubmissionError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := make([]error, 0, len(e.Errors))
	for _, fieldErr := range e.Errors {
		out = append(out, fieldErr)
	}
	return out
}

// Messages indexes the field errors by field.
func (e *AggregateSubmissionError) Messages() map[Field]string {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	out := make(map[Field]string, len(e.Errors))
	for _, fieldErr := range e.Errors {
		out[fieldErr.Field] = fieldErr.Message
	}
	return out
}
