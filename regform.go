// Package regform is the top-level entry point: it re-exports the form
// state machine and offers one-call HTML rendering for hosts that do not
// need the renderer registry.
package regform

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/location"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/theming"
)

// Form is the registration form state machine.
type Form = orchestrator.Form

// Snapshot is an immutable copy of the form state.
type Snapshot = orchestrator.Snapshot

// Registration is the record captured by a successful submit.
type Registration = orchestrator.Registration

// RenderOptions describes per-request render settings.
type RenderOptions = render.RenderOptions

// NewForm exposes the orchestrator constructor from the top-level module.
func NewForm(options ...orchestrator.Option) *Form {
	return orchestrator.New(options...)
}

// LoadCatalog reads a YAML or JSON location catalog for WithCatalog.
func LoadCatalog(fsys fs.FS, path string) (*location.Catalog, error) {
	return location.Load(fsys, path)
}

// WithCatalog swaps the location catalog.
func WithCatalog(catalog *location.Catalog) orchestrator.Option {
	return orchestrator.WithCatalog(catalog)
}

// WithLastNameGated makes last name part of the submit gate.
func WithLastNameGated(gated bool) orchestrator.Option {
	return orchestrator.WithLastNameGated(gated)
}

// RenderHTML renders snapshot as a full page with the built-in renderer
// and the default theme.
func RenderHTML(ctx context.Context, snapshot Snapshot, options RenderOptions) ([]byte, error) {
	if options.Theme == nil {
		cfg, err := DefaultTheme()
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, snapshot, options)
}

// DefaultTheme resolves the bundled theme in its default variant.
func DefaultTheme() (*theme.RendererConfig, error) {
	themes, err := theming.New()
	if err != nil {
		return nil, err
	}
	return themes.Resolve(theming.DefaultTheme, theming.DefaultVariant)
}
