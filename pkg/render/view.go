package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Labels are the visible captions of each control.
var Labels = map[validation.Field]string{
	validation.FieldFirstName:       "First Name",
	validation.FieldLastName:        "Last Name",
	validation.FieldEmail:           "Email",
	validation.FieldPhone:           "Phone",
	validation.FieldGender:          "Gender",
	validation.FieldAddress:         "Address",
	validation.FieldCountry:         "Country",
	validation.FieldState:           "State",
	validation.FieldCity:            "City",
	validation.FieldPassword:        "Password",
	validation.FieldConfirmPassword: "Confirm Password",
	validation.FieldTerms:           "I agree to the Terms & Conditions",
}

var inputTypes = map[validation.Field]string{
	validation.FieldEmail:           "email",
	validation.FieldPhone:           "tel",
	validation.FieldAddress:         "textarea",
	validation.FieldPassword:        "password",
	validation.FieldConfirmPassword: "password",
}

var placeholders = map[validation.Field]string{
	validation.FieldEmail: "name@example.com",
	validation.FieldPhone: "+91 9876543210",
}

// FieldView is one text control ready for a template.
type FieldView struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	Placeholder string `json:"placeholder,omitempty"`
	Error       string `json:"error,omitempty"`
	Invalid     bool   `json:"invalid"`
	Required    bool   `json:"required"`
}

// OptionView is a select option or a checkbox of a group.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// SelectView is one of the cascading location selects.
type SelectView struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder"`
	Options     []OptionView `json:"options"`
	Enabled     bool         `json:"enabled"`
}

// GroupView is the gender checkbox group.
type GroupView struct {
	Name    string       `json:"name"`
	Label   string       `json:"label"`
	Options []OptionView `json:"options"`
	Error   string       `json:"error,omitempty"`
	Invalid bool         `json:"invalid"`
}

// CheckboxView is the terms checkbox.
type CheckboxView struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
	Error   string `json:"error,omitempty"`
	Invalid bool   `json:"invalid"`
}

// StrengthView is the password strength indicator.
type StrengthView struct {
	Level string `json:"level"`
	Label string `json:"label"`
}

// AlertView is the banner above the form.
type AlertView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Visible bool   `json:"visible"`
}

// ModalView is the success dialog.
type ModalView struct {
	Open         bool                       `json:"open"`
	Registration *orchestrator.Registration `json:"registration,omitempty"`
}

// ThemeView is the template-facing slice of a theme selection.
type ThemeView struct {
	Name         string            `json:"name,omitempty"`
	Variant      string            `json:"variant,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle string            `json:"cssVarsStyle,omitempty"`
	Stylesheet   string            `json:"stylesheet,omitempty"`
}

// FormView is the render-ready projection of a snapshot shared by the
// template based renderers.
type FormView struct {
	Action        string        `json:"action"`
	Hidden        []HiddenField `json:"hidden"`
	Phase         string        `json:"phase"`
	Personal      []FieldView   `json:"personal"`
	Gender        GroupView     `json:"gender"`
	Address       FieldView     `json:"address"`
	Country       SelectView    `json:"country"`
	State         SelectView    `json:"state"`
	City          SelectView    `json:"city"`
	Password      FieldView     `json:"password"`
	Confirm       FieldView     `json:"confirm"`
	Strength      StrengthView  `json:"strength"`
	Terms         CheckboxView  `json:"terms"`
	SubmitEnabled bool          `json:"submitEnabled"`
	Alert         AlertView     `json:"alert"`
	FormErrors    []string      `json:"formErrors,omitempty"`
	Modal         ModalView     `json:"modal"`
	Theme         ThemeView     `json:"theme"`
}

// StylesheetAssetKey is the theme asset resolved into ThemeView.Stylesheet.
const StylesheetAssetKey = "regform.stylesheet"

// BuildView projects a snapshot into a FormView.
func BuildView(snapshot orchestrator.Snapshot, options RenderOptions) FormView {
	mapping := MapSnapshot(snapshot)
	sel := snapshot.Selection

	view := FormView{
		Action: options.ActionOrDefault(),
		Hidden: HiddenFieldsFor(options),
		Phase:  snapshot.Phase.String(),
		Personal: []FieldView{
			fieldView(snapshot, validation.FieldFirstName, true),
			fieldView(snapshot, validation.FieldLastName, true),
			fieldView(snapshot, validation.FieldEmail, true),
			fieldView(snapshot, validation.FieldPhone, true),
		},
		Gender:   genderView(snapshot),
		Address:  fieldView(snapshot, validation.FieldAddress, false),
		Country:  selectView(validation.FieldCountry, "Select Country", sel.CountryOptions, sel.Country, true),
		State:    selectView(validation.FieldState, "Select State", sel.StateOptions, sel.State, sel.StateEnabled),
		City:     selectView(validation.FieldCity, "Select City", sel.CityOptions, sel.City, sel.CityEnabled),
		Password: fieldView(snapshot, validation.FieldPassword, false),
		Confirm:  fieldView(snapshot, validation.FieldConfirmPassword, false),
		Strength: StrengthView{Level: snapshot.Strength.String(), Label: snapshot.StrengthLabel},
		Terms: CheckboxView{
			Name:    string(validation.FieldTerms),
			Label:   Labels[validation.FieldTerms],
			Checked: snapshot.Terms,
			Error:   snapshot.Field(validation.FieldTerms).Error,
			Invalid: snapshot.Field(validation.FieldTerms).Invalid,
		},
		SubmitEnabled: snapshot.SubmitEnabled,
		Alert: AlertView{
			Kind:    string(snapshot.Alert.Kind),
			Message: snapshot.Alert.Message,
			Visible: snapshot.Alert.Visible(),
		},
		FormErrors: mapping.Form,
		Modal:      ModalView{Open: snapshot.ModalOpen},
		Theme:      BuildThemeView(options.Theme),
	}
	if snapshot.ModalOpen {
		view.Modal.Registration = options.Registration
	}
	return view
}

func fieldView(snapshot orchestrator.Snapshot, field validation.Field, required bool) FieldView {
	state := snapshot.Field(field)
	kind := inputTypes[field]
	if kind == "" {
		kind = "text"
	}
	return FieldView{
		Name:        string(field),
		Label:       Labels[field],
		Type:        kind,
		Value:       state.Value,
		Placeholder: placeholders[field],
		Error:       state.Error,
		Invalid:     state.Invalid,
		Required:    required,
	}
}

func genderView(snapshot orchestrator.Snapshot) GroupView {
	state := snapshot.Field(validation.FieldGender)
	options := make([]OptionView, 0, len(snapshot.GenderOptions))
	for _, option := range snapshot.GenderOptions {
		options = append(options, OptionView{
			Value:    option,
			Label:    option,
			Selected: snapshot.GenderChecked(option),
		})
	}
	return GroupView{
		Name:    string(validation.FieldGender),
		Label:   Labels[validation.FieldGender],
		Options: options,
		Error:   state.Error,
		Invalid: state.Invalid,
	}
}

func selectView(field validation.Field, placeholder string, values []string, selected string, enabled bool) SelectView {
	options := make([]OptionView, 0, len(values))
	for _, value := range values {
		options = append(options, OptionView{Value: value, Label: value, Selected: value == selected})
	}
	return SelectView{
		Name:        string(field),
		Label:       Labels[field],
		Placeholder: placeholder,
		Options:     options,
		Enabled:     enabled,
	}
}

// BuildThemeView copies the theme configuration into template-safe values.
func BuildThemeView(cfg *theme.RendererConfig) ThemeView {
	if cfg == nil {
		return ThemeView{}
	}
	view := ThemeView{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  copyStringMap(cfg.Tokens),
		CSSVars: copyStringMap(cfg.CSSVars),
	}
	view.CSSVarsStyle = CSSVarsStyle(view.CSSVars)
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL(StylesheetAssetKey)
	}
	return view
}

// CSSVarsStyle renders custom properties as a deterministic inline style.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := strings.TrimSpace(key)
		value := strings.TrimSpace(vars[key])
		if name == "" || value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte(';')
	}
	return b.String()
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
