package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/strength"
	"github.com/goliatone/go-regform/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputPos     int
	passPos      int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func fixedForm() *orchestrator.Form {
	return orchestrator.New(orchestrator.WithClock(func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}))
}

func TestSession_HappyPath(t *testing.T) {
	driver := &stubDriver{
		// first, last, email, phone
		inputs: []string{"Asha", "Patel", "asha@example.com", "+91 9876543210"},
		// country India, state Gujarat, city Vadodara ("(none)" is index 0)
		selectIdx: []int{1, 1, 2},
		multiIdx:  [][]int{{1}},
		textAreas: []string{"12 Station Road"},
		passwords: []string{"Str0ng!Pass", "Str0ng!Pass"},
		confirm:   []bool{true},
	}
	var out bytes.Buffer
	session := NewSession(WithPromptDriver(driver), WithForm(fixedForm()), WithOutput(&out))

	reg, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
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
		SubmittedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if diff := cmp.Diff(want, reg); diff != "" {
		t.Fatalf("registration mismatch (-want +got):\n%s", diff)
	}

	var decoded orchestrator.Registration
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if diff := cmp.Diff(*want, decoded); diff != "" {
		t.Fatalf("written registration mismatch (-want +got):\n%s", diff)
	}

	if session.Form().Snapshot().ModalOpen {
		t.Fatalf("modal must be dismissed after a terminal submit")
	}
	if !containsMessage(driver.infoMessages, "Strength: Strong") {
		t.Fatalf("expected strength feedback, got %v", driver.infoMessages)
	}
	if !containsMessage(driver.infoMessages, orchestrator.MsgSubmitSuccess) {
		t.Fatalf("expected success message, got %v", driver.infoMessages)
	}
}

func TestSession_RepromptsOnlyFailingFields(t *testing.T) {
	driver := &stubDriver{
		// first pass: last name skipped; second pass: last name only
		inputs:    []string{"Asha", "", "asha@example.com", "+1 4155550100", "Patel"},
		selectIdx: []int{0},
		multiIdx:  [][]int{{0}},
		textAreas: []string{""},
		passwords: []string{"", ""},
		confirm:   []bool{true},
	}
	var out bytes.Buffer
	session := NewSession(WithPromptDriver(driver), WithOutput(&out), WithOutputFormat(OutputFormatPrettyText))

	reg, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if reg.LastName != "Patel" {
		t.Fatalf("expected corrected last name, got %q", reg.LastName)
	}
	if driver.inputPos != 5 || driver.confirmPos != 1 {
		t.Fatalf("unexpected prompt counts inputs=%d confirms=%d", driver.inputPos, driver.confirmPos)
	}
	if !containsMessage(driver.infoMessages, orchestrator.MsgSubmitInvalid) {
		t.Fatalf("expected aggregate error banner, got %v", driver.infoMessages)
	}
	if !strings.Contains(out.String(), "Name:      Asha Patel") {
		t.Fatalf("unexpected pretty output:\n%s", out.String())
	}
}

func TestSession_GivesUpAfterMaxAttempts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "", "", "", ""},
		selectIdx: []int{0},
		multiIdx:  [][]int{{}},
		textAreas: []string{""},
		passwords: []string{"", ""},
		confirm:   []bool{false, false},
	}
	// A single round, so the scripted answers are enough.
	session := NewSession(WithPromptDriver(driver), WithMaxAttempts(1), WithOutput(&bytes.Buffer{}))

	_, err := session.Run(context.Background())
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	var aggregate *validation.AggregateSubmissionError
	if !errors.As(err, &aggregate) {
		t.Fatalf("expected the aggregate error to be wrapped, got %v", err)
	}
	if _, ok := aggregate.Messages()[validation.FieldGender]; !ok {
		t.Fatalf("expected gender error, got %v", aggregate.Messages())
	}
}

func TestSession_Declined(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Asha", "Patel", "asha@example.com", "+1 4155550100"},
		selectIdx: []int{0},
		multiIdx:  [][]int{{2}},
		textAreas: []string{""},
		passwords: []string{"", ""},
		confirm:   []bool{true, false},
	}
	session := NewSession(WithPromptDriver(driver), WithConfirmSubmit(true))

	if _, err := session.Run(context.Background()); !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}

func TestRenderer_PlainText(t *testing.T) {
	form := orchestrator.New()
	if _, err := form.Dispatch(orchestrator.FieldChanged{Field: validation.FieldPassword, Value: "abc"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if _, err := form.Dispatch(orchestrator.Submitted{}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	out, err := NewRenderer().Render(context.Background(), form.Snapshot(), render.RenderOptions{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)
	for _, fragment := range []string{
		"Registration form [submitted_invalid]",
		"Session: s-1",
		"✗ " + orchestrator.MsgSubmitInvalid,
		"***",
		validation.MsgPasswordTooShort,
		"State:             (disabled)",
		"Strength: Weak",
		"Submit: disabled",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, text)
		}
	}
	if strings.Contains(text, "abc") {
		t.Fatalf("password leaked into output")
	}
}

func containsMessage(messages []string, fragment string) bool {
	for _, msg := range messages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
