package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

const noneOption = "(none)"

// promptOrder is the order of the first pass. Country comes before phone so
// the dialing code is known when the number is checked.
var promptOrder = []validation.Field{
	validation.FieldFirstName,
	validation.FieldLastName,
	validation.FieldEmail,
	validation.FieldCountry,
	validation.FieldPhone,
	validation.FieldGender,
	validation.FieldAddress,
	validation.FieldPassword,
	validation.FieldConfirmPassword,
	validation.FieldTerms,
}

// Session drives a form through terminal prompts: one pass over every
// control, then submit; a rejected submit re-prompts only the failing
// fields.
type Session struct {
	form          *orchestrator.Form
	driver        PromptDriver
	out           io.Writer
	format        OutputFormat
	maxAttempts   int
	confirmSubmit bool
	theme         Theme
}

// NewSession builds a session on a fresh form and the survey driver unless
// options say otherwise.
func NewSession(options ...Option) *Session {
	s := &Session{
		out:         os.Stdout,
		format:      OutputFormatJSON,
		maxAttempts: DefaultMaxAttempts,
		theme:       DefaultTheme,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.form == nil {
		s.form = orchestrator.New()
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(os.Stdout)
	}
	return s
}

// Form exposes the underlying form.
func (s *Session) Form() *orchestrator.Form {
	return s.form
}

// Run prompts until the form is submitted successfully, then writes the
// captured registration to the configured output.
func (s *Session) Run(ctx context.Context) (*orchestrator.Registration, error) {
	pending := promptOrder
	var lastErr *validation.AggregateSubmissionError

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		for _, field := range pending {
			if err := s.ask(ctx, field); err != nil {
				return nil, err
			}
		}

		if s.confirmSubmit {
			ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Submit registration?", Default: true})
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrDeclined
			}
		}

		res, err := s.form.Dispatch(orchestrator.Submitted{})
		if err != nil {
			return nil, fmt.Errorf("tui: submit: %w", err)
		}
		if res.Outcome == orchestrator.OutcomeSuccess {
			return s.finish(ctx, res.Registration)
		}

		lastErr = res.Err
		if err := s.fail(ctx, orchestrator.MsgSubmitInvalid); err != nil {
			return nil, err
		}
		for _, fieldErr := range res.Err.Errors {
			if err := s.fail(ctx, fmt.Sprintf("%s: %s", render.Labels[fieldErr.Field], fieldErr.Message)); err != nil {
				return nil, err
			}
		}
		pending = retryFields(res.Err)
	}
	return nil, fmt.Errorf("%w: %w", ErrTooManyAttempts, lastErr)
}

func (s *Session) finish(ctx context.Context, registration *orchestrator.Registration) (*orchestrator.Registration, error) {
	if err := s.driver.Info(ctx, s.theme.SuccessPrefix+" "+orchestrator.MsgSubmitSuccess); err != nil {
		return nil, err
	}
	if _, err := s.form.Dispatch(orchestrator.ModalDismissed{}); err != nil {
		return nil, fmt.Errorf("tui: dismiss: %w", err)
	}
	if err := WriteRegistration(s.out, registration, s.format); err != nil {
		return nil, err
	}
	return registration, nil
}

func (s *Session) ask(ctx context.Context, field validation.Field) error {
	var err error
	switch field {
	case validation.FieldCountry:
		return s.askLocation(ctx)
	case validation.FieldGender:
		err = s.askGender(ctx)
	case validation.FieldTerms:
		err = s.askTerms(ctx)
	case validation.FieldAddress:
		err = s.askAddress(ctx)
	case validation.FieldPassword, validation.FieldConfirmPassword:
		err = s.askPassword(ctx, field)
	default:
		err = s.askText(ctx, field)
	}
	if err != nil {
		return err
	}
	return s.report(ctx, field)
}

func (s *Session) askText(ctx context.Context, field validation.Field) error {
	value, err := s.driver.Input(ctx, InputConfig{
		Message: render.Labels[field],
		Default: s.form.Snapshot().Field(field).Value,
		Help:    helpText[field],
	})
	if err != nil {
		return err
	}
	return s.dispatch(orchestrator.FieldChanged{Field: field, Value: value})
}

func (s *Session) askAddress(ctx context.Context) error {
	value, err := s.driver.TextArea(ctx, TextAreaConfig{
		Message: render.Labels[validation.FieldAddress],
		Default: s.form.Snapshot().Field(validation.FieldAddress).Value,
	})
	if err != nil {
		return err
	}
	return s.dispatch(orchestrator.FieldChanged{Field: validation.FieldAddress, Value: value})
}

func (s *Session) askPassword(ctx context.Context, field validation.Field) error {
	value, err := s.driver.Password(ctx, InputConfig{
		Message: render.Labels[field],
		Help:    helpText[field],
	})
	if err != nil {
		return err
	}
	if err := s.dispatch(orchestrator.FieldChanged{Field: field, Value: value}); err != nil {
		return err
	}
	if field == validation.FieldPassword && value != "" {
		return s.info(ctx, s.form.Snapshot().StrengthLabel)
	}
	return nil
}

// askLocation walks the cascade: country, then state and city while they
// are enabled.
func (s *Session) askLocation(ctx context.Context) error {
	sel := s.form.Snapshot().Selection
	country, err := s.choose(ctx, render.Labels[validation.FieldCountry], sel.CountryOptions, sel.Country)
	if err != nil {
		return err
	}
	if err := s.dispatch(orchestrator.CountrySelected{Country: country}); err != nil {
		return err
	}

	sel = s.form.Snapshot().Selection
	if !sel.StateEnabled {
		return nil
	}
	state, err := s.choose(ctx, render.Labels[validation.FieldState], sel.StateOptions, sel.State)
	if err != nil {
		return err
	}
	if err := s.dispatch(orchestrator.StateSelected{State: state}); err != nil {
		return err
	}

	sel = s.form.Snapshot().Selection
	if !sel.CityEnabled {
		return nil
	}
	city, err := s.choose(ctx, render.Labels[validation.FieldCity], sel.CityOptions, sel.City)
	if err != nil {
		return err
	}
	return s.dispatch(orchestrator.CitySelected{City: city})
}

func (s *Session) choose(ctx context.Context, message string, options []string, current string) (string, error) {
	choices := append([]string{noneOption}, options...)
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      choices,
		DefaultIndex: max(indexOf(choices, current), 0),
	})
	if err != nil {
		return "", err
	}
	if idx <= 0 || idx >= len(choices) {
		return "", nil
	}
	return choices[idx], nil
}

func (s *Session) askGender(ctx context.Context) error {
	snap := s.form.Snapshot()
	picked, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  render.Labels[validation.FieldGender],
		Options:  snap.GenderOptions,
		Defaults: indicesOf(snap.GenderOptions, snap.Gender),
	})
	if err != nil {
		return err
	}

	checked := make(map[int]bool, len(picked))
	for _, idx := range picked {
		checked[idx] = true
	}
	for i, option := range snap.GenderOptions {
		if checked[i] == snap.GenderChecked(option) {
			continue
		}
		if err := s.dispatch(orchestrator.GenderToggled{Option: option, Checked: checked[i]}); err != nil {
			return err
		}
	}
	// An unchanged empty group still needs its validator to run.
	if len(picked) == 0 && len(snap.Gender) == 0 && len(snap.GenderOptions) > 0 {
		first := snap.GenderOptions[0]
		if err := s.dispatch(orchestrator.GenderToggled{Option: first, Checked: false}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) askTerms(ctx context.Context) error {
	ok, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: render.Labels[validation.FieldTerms] + "?",
		Default: s.form.Snapshot().Terms,
	})
	if err != nil {
		return err
	}
	return s.dispatch(orchestrator.TermsToggled{Checked: ok})
}

func (s *Session) dispatch(event orchestrator.Event) error {
	if _, err := s.form.Dispatch(event); err != nil {
		return fmt.Errorf("tui: %s: %w", event.Kind(), err)
	}
	return nil
}

func (s *Session) report(ctx context.Context, field validation.Field) error {
	if msg := s.form.Snapshot().Field(field).Error; msg != "" {
		return s.fail(ctx, msg)
	}
	return nil
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+" "+msg)
}

func (s *Session) fail(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.ErrorPrefix+" "+msg)
}

var helpText = map[validation.Field]string{
	validation.FieldEmail:    "Disposable email domains are rejected.",
	validation.FieldPhone:    "Start with the country dialing code, e.g. +91 9876543210.",
	validation.FieldPassword: "At least 8 characters. Mix cases, digits and symbols for a stronger password.",
}

// retryFields lists the prompts needed to fix the rejected fields, in
// prompt order.
func retryFields(err *validation.AggregateSubmissionError) []validation.Field {
	failing := err.Messages()
	var out []validation.Field
	for _, field := range promptOrder {
		if _, ok := failing[field]; ok {
			out = append(out, field)
			continue
		}
		// A mismatch is fixed by re-entering both passwords.
		if field == validation.FieldPassword && failing[validation.FieldConfirmPassword] == validation.MsgPasswordsDontMatch {
			out = append(out, field)
		}
	}
	return out
}
