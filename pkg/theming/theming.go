// Package theming registers the bundled go-theme manifests and resolves a
// theme/variant choice into the renderer configuration the HTML renderer
// consumes.
package theming

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

const (
	DefaultTheme   = "default"
	DefaultVariant = "light"

	// PartialPage names the template rendering the full page.
	PartialPage = "regform.page"
	// PartialForm names the template rendering the form body.
	PartialForm = "regform.form"
)

var (
	ErrThemeNotFound   = errors.New("theming: theme not found")
	ErrVariantNotFound = errors.New("theming: variant not found")
)

// Fallbacks are the partials used when a manifest does not override them.
var Fallbacks = map[string]string{
	PartialPage: "templates/page.tmpl",
	PartialForm: "templates/form.tmpl",
}

// Catalog holds the registered manifests and implements theme.ThemeSelector.
type Catalog struct {
	mu        sync.RWMutex
	registry  theme.ThemeProvider
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*Catalog)(nil)

// New registers the given manifests, or the bundled ones when none are
// supplied.
func New(manifests ...*theme.Manifest) (*Catalog, error) {
	if len(manifests) == 0 {
		manifests = Bundled()
	}
	registry := theme.NewRegistry()
	c := &Catalog{
		registry:  registry,
		manifests: make(map[string]*theme.Manifest, len(manifests)),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("theming: register %q: %w", manifest.Name, err)
		}
		c.manifests[manifest.Name] = manifest
	}
	return c, nil
}

// Provider exposes the underlying go-theme registry.
func (c *Catalog) Provider() theme.ThemeProvider {
	return c.registry
}

// Names lists the registered themes.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.manifests))
	for name := range c.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variants lists the variants of a theme.
func (c *Catalog) Variants(name string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	manifest, ok := c.manifests[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(manifest.Variants))
	for variant := range manifest.Variants {
		out = append(out, variant)
	}
	sort.Strings(out)
	return out
}

// Select resolves a theme and variant. Empty values fall back to
// DefaultTheme and DefaultVariant.
func (c *Catalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTheme
	}
	variant = strings.TrimSpace(variant)

	c.mu.RLock()
	manifest, ok := c.manifests[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant == "" && len(manifest.Variants) > 0 {
		variant = DefaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q/%q", ErrVariantNotFound, name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection into renderer input: variant tokens
// override the base tokens, every token becomes a "--<token>" CSS custom
// property, and partials fall back to Fallbacks.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := merge(manifest.Tokens, variant.Tokens)
	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	partials := merge(Fallbacks, manifest.Templates)
	partials = merge(partials, variant.Templates)

	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}
	files := merge(manifest.Assets.Files, variant.Assets.Files)

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}
}

// Resolve selects and flattens in one step.
func (c *Catalog) Resolve(name, variant string) (*theme.RendererConfig, error) {
	selection, err := c.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(selection), nil
}

func merge(base, overlay map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}
