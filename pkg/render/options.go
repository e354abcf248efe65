package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/orchestrator"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the form state.
type RenderOptions struct {
	// Action is the URL the rendered form posts to. Renderers fall back to
	// DefaultAction when empty.
	Action string
	// SessionID identifies the server-side form session. HTML renderers emit
	// it as a hidden input so posts land on the same session.
	SessionID string
	// HiddenFields are extra hidden inputs, keyed by name.
	HiddenFields map[string]string
	// Fragment asks HTML renderers for the form body only, without the page
	// chrome.
	Fragment bool
	// Theme carries the resolved theme tokens and asset resolver. Nil renders
	// with the built-in stylesheet only.
	Theme *theme.RendererConfig
	// Registration is the record captured by the last successful submit, shown
	// inside the success modal when present.
	Registration *orchestrator.Registration
}

// DefaultAction is the form post target used when RenderOptions.Action is
// empty.
const DefaultAction = "/form"

// ActionOrDefault returns Action, or DefaultAction when unset.
func (o RenderOptions) ActionOrDefault() string {
	if o.Action == "" {
		return DefaultAction
	}
	return o.Action
}
