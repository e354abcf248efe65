// Package server hosts the registration form over HTTP: a server-rendered
// page driven by form posts and a JSON event API over the same sessions.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/goliatone/go-regform/internal/metrics"
	"github.com/goliatone/go-regform/pkg/apidoc"
	"github.com/goliatone/go-regform/pkg/location"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/jsonview"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/theming"
)

// RuntimeScriptPath is where the page loads the field event script from.
const RuntimeScriptPath = "/assets/" + vanilla.RuntimeScriptName

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	Logger          *slog.Logger
	Metrics         *metrics.Metrics
	Tracer          trace.Tracer
	FormOptions     []orchestrator.Option
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	Theme           *theme.RendererConfig
	APIDoc          *apidoc.Document
	Renderers       *render.Registry
}

// Server owns the session store and the HTTP handlers.
type Server struct {
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	store     *Store
	catalog   *location.Catalog
	theme     *theme.RendererConfig
	apidoc    *apidoc.Document
	renderers *render.Registry
	json      *jsonview.Renderer
}

// New builds a server. The renderer registry defaults to the HTML page
// first, then JSON and plain text.
func New(ctx context.Context, opts Options) (*Server, error) {
	s := &Server{
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		tracer:    opts.Tracer,
		theme:     opts.Theme,
		apidoc:    opts.APIDoc,
		renderers: opts.Renderers,
		json:      jsonview.New(),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.tracer == nil {
		s.tracer = noop.NewTracerProvider().Tracer("regform")
	}
	if s.theme == nil {
		themes, err := theming.New()
		if err != nil {
			return nil, fmt.Errorf("server: themes: %w", err)
		}
		if s.theme, err = themes.Resolve(theming.DefaultTheme, theming.DefaultVariant); err != nil {
			return nil, fmt.Errorf("server: theme: %w", err)
		}
	}
	if s.apidoc == nil {
		doc, err := apidoc.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.apidoc = doc
	}
	if s.renderers == nil {
		registry, err := DefaultRenderers()
		if err != nil {
			return nil, err
		}
		s.renderers = registry
	}

	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	cleanup := opts.CleanupInterval
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	formOptions := append([]orchestrator.Option(nil), opts.FormOptions...)
	newForm := func() *orchestrator.Form { return orchestrator.New(formOptions...) }
	s.catalog = newForm().Catalog()
	s.store = NewStore(ttl, cleanup, newForm, func(id string) {
		s.metrics.SessionEnded()
		s.logger.Debug("session expired", "session_id", id)
	})
	return s, nil
}

// DefaultRenderers registers the HTML, JSON and text renderers. The HTML
// renderer is the negotiation fallback.
func DefaultRenderers() (*render.Registry, error) {
	page, err := vanilla.New(vanilla.WithScriptURL(RuntimeScriptPath))
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	registry := render.NewRegistry()
	for _, renderer := range []render.Renderer{page, jsonview.New(), tui.NewRenderer()} {
		if err := registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
	}
	return registry, nil
}

// Store exposes the session store.
func (s *Server) Store() *Store {
	return s.store
}

// Router wires every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Post(render.DefaultAction, s.handleFormPost)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Post("/sessions/{id}/events", s.handleEvent)

		r.Get("/catalog/countries", s.handleCountries)
		r.Get("/catalog/countries/{country}/states", s.handleStates)
		r.Get("/catalog/countries/{country}/states/{state}/cities", s.handleCities)
	})

	r.Get("/openapi.yaml", s.handleOpenAPI)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(vanilla.AssetsFS()))))
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down within
// grace.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	s.logger.Info("shutting down", "grace", grace)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
