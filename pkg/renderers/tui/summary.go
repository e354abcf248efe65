package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Renderer prints a snapshot as plain text, the same way the terminal
// session presents it.
type Renderer struct {
	theme Theme
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer returns the plain text renderer.
func NewRenderer(theme ...Theme) *Renderer {
	r := &Renderer{theme: DefaultTheme}
	if len(theme) > 0 {
		r.theme = theme[0]
	}
	return r
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, snapshot orchestrator.Snapshot, options render.RenderOptions) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Registration form [%s]\n", snapshot.Phase)
	if options.SessionID != "" {
		fmt.Fprintf(&buf, "Session: %s\n", options.SessionID)
	}
	if snapshot.Alert.Visible() {
		prefix := r.theme.ErrorPrefix
		if snapshot.Alert.Kind == orchestrator.AlertSuccess {
			prefix = r.theme.SuccessPrefix
		}
		fmt.Fprintf(&buf, "%s %s\n", prefix, snapshot.Alert.Message)
	}
	buf.WriteByte('\n')

	for _, field := range validation.TextFields {
		state := snapshot.Field(field)
		value := state.Value
		if field == validation.FieldPassword || field == validation.FieldConfirmPassword {
			value = strings.Repeat("*", len([]rune(value)))
		}
		writeLine(&buf, render.Labels[field], value, state.Error, r.theme.ErrorPrefix)
	}
	writeLine(&buf, render.Labels[validation.FieldGender], strings.Join(snapshot.Gender, ", "),
		snapshot.Field(validation.FieldGender).Error, r.theme.ErrorPrefix)

	sel := snapshot.Selection
	writeLine(&buf, render.Labels[validation.FieldCountry], sel.Country, "", "")
	writeLine(&buf, render.Labels[validation.FieldState], disabledOr(sel.State, sel.StateEnabled), "", "")
	writeLine(&buf, render.Labels[validation.FieldCity], disabledOr(sel.City, sel.CityEnabled), "", "")

	terms := "no"
	if snapshot.Terms {
		terms = "yes"
	}
	writeLine(&buf, "Terms accepted", terms, snapshot.Field(validation.FieldTerms).Error, r.theme.ErrorPrefix)

	buf.WriteByte('\n')
	fmt.Fprintln(&buf, snapshot.StrengthLabel)
	if snapshot.SubmitEnabled {
		fmt.Fprintln(&buf, "Submit: enabled")
	} else {
		fmt.Fprintln(&buf, "Submit: disabled")
	}
	return buf.Bytes(), nil
}

func writeLine(buf *bytes.Buffer, label, value, errMsg, errPrefix string) {
	fmt.Fprintf(buf, "  %-18s %s\n", label+":", value)
	if errMsg != "" {
		fmt.Fprintf(buf, "  %-18s %s %s\n", "", errPrefix, errMsg)
	}
}

func disabledOr(value string, enabled bool) string {
	if !enabled {
		return "(disabled)"
	}
	return value
}

// WriteRegistration serializes a captured registration.
func WriteRegistration(w io.Writer, registration *orchestrator.Registration, format OutputFormat) error {
	if registration == nil {
		return fmt.Errorf("tui: registration is nil")
	}
	switch format {
	case OutputFormatPrettyText:
		return writePretty(w, registration)
	case OutputFormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(registration); err != nil {
			return fmt.Errorf("tui: encode registration: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("tui: unsupported output format %q", format)
	}
}

func writePretty(w io.Writer, reg *orchestrator.Registration) error {
	rows := [][2]string{
		{"Name", strings.TrimSpace(reg.FirstName + " " + reg.LastName)},
		{"Email", reg.Email},
		{"Phone", reg.Phone},
		{"Gender", strings.Join(reg.Gender, ", ")},
		{"Address", reg.Address},
		{"Country", reg.Country},
		{"State", reg.State},
		{"City", reg.City},
		{"Password", reg.PasswordStrength.Label()},
		{"Submitted", reg.SubmittedAt.Format("2006-01-02 15:04:05 MST")},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-10s %s\n", row[0]+":", row[1]); err != nil {
			return err
		}
	}
	return nil
}
