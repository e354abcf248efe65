package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	gotemplate "github.com/goliatone/go-regform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-regform/pkg/theming"
)

// DefaultTitle is the page heading.
const DefaultTitle = "Registration Form"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	title            string
	inlineStyles     bool
	scriptURL        string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTitle overrides the page title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// WithInlineStyles toggles inlining the bundled stylesheet into full pages.
// It is skipped whenever the theme supplies its own stylesheet URL.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// WithScriptURL sets the URL of the runtime script that streams field
// events to the session API. Empty disables it.
func WithScriptURL(url string) Option {
	return func(cfg *config) {
		cfg.scriptURL = strings.TrimSpace(url)
	}
}

// Renderer produces the server-rendered HTML form.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	title        string
	inlineStyles bool
	scriptURL    string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		title:        DefaultTitle,
		inlineStyles: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		if cfg.templateFS == nil {
			cfg.templateFS = TemplatesFS()
		}
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		title:        cfg.title,
		inlineStyles: cfg.inlineStyles,
		scriptURL:    cfg.scriptURL,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders the form body, then wraps it in the page template unless a
// fragment was requested.
func (r *Renderer) Render(_ context.Context, snapshot orchestrator.Snapshot, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	view := render.BuildView(snapshot, options)
	formHTML, err := r.templates.RenderTemplate(partial(options, theming.PartialForm), map[string]any{
		"form":       view,
		"selects":    []render.SelectView{view.Country, view.State, view.City},
		"session_id": options.SessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	if options.Fragment {
		return []byte(formHTML), nil
	}

	inlineCSS := ""
	if r.inlineStyles && view.Theme.Stylesheet == "" {
		inlineCSS = defaultStylesheet()
	}
	scriptURL := ""
	if options.SessionID != "" {
		scriptURL = r.scriptURL
	}

	page, err := r.templates.RenderTemplate(partial(options, theming.PartialPage), map[string]any{
		"title":      r.title,
		"form_html":  formHTML,
		"theme":      view.Theme,
		"inline_css": inlineCSS,
		"script_url": scriptURL,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(page), nil
}

func partial(options render.RenderOptions, key string) string {
	if options.Theme != nil {
		if path := strings.TrimSpace(options.Theme.Partials[key]); path != "" {
			return path
		}
	}
	return theming.Fallbacks[key]
}
