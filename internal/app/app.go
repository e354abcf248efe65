// Package app turns configuration into the form and theme options shared by
// the commands.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/pkg/location"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/theming"
	"github.com/goliatone/go-regform/pkg/validation"
)

// LoadCatalog returns the configured catalog, or the embedded one.
func LoadCatalog(path string) (*location.Catalog, error) {
	if path == "" {
		return location.Default(), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("app: catalog path: %w", err)
	}
	catalog, err := location.Load(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return catalog, nil
}

// FormOptions builds the orchestrator options from cfg.
func FormOptions(cfg *config.Config) ([]orchestrator.Option, error) {
	catalog, err := LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	denylist := validation.DefaultDenylist().With(cfg.Validation.ExtraDisposableDomains...)
	return []orchestrator.Option{
		orchestrator.WithCatalog(catalog),
		orchestrator.WithDenylist(denylist),
		orchestrator.WithLastNameGated(cfg.Validation.LastNameGated),
	}, nil
}

// Theme resolves the configured theme and variant.
func Theme(cfg *config.Config) (*theme.RendererConfig, error) {
	themes, err := theming.New()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	resolved, err := themes.Resolve(cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return resolved, nil
}
