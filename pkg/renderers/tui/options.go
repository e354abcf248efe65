package tui

import (
	"io"

	"github.com/goliatone/go-regform/pkg/orchestrator"
)

// OutputFormat controls how the captured registration is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits an indented JSON document.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional message prefixes the session applies when printing
// feedback.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme is used when WithTheme is not supplied.
var DefaultTheme = Theme{
	InfoPrefix:    "•",
	ErrorPrefix:   "✗",
	SuccessPrefix: "✓",
}

// DefaultMaxAttempts bounds the correction rounds after a rejected submit.
const DefaultMaxAttempts = 3

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithForm drives an existing form instead of a fresh one.
func WithForm(form *orchestrator.Form) Option {
	return func(s *Session) {
		if form != nil {
			s.form = form
		}
	}
}

// WithOutput sets where the final registration is written.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.format = format
		}
	}
}

// WithMaxAttempts bounds the correction rounds. Values below one are
// ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithConfirmSubmit asks for a final confirmation before submitting.
func WithConfirmSubmit(enabled bool) Option {
	return func(s *Session) {
		s.confirmSubmit = enabled
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
