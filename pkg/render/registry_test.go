package render_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, orchestrator.Snapshot, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndList(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "json", contentType: "application/json"})

	if err := registry.Register(stubRenderer{name: "json", contentType: "application/json"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if got := registry.List(); len(got) != 2 || got[0] != "json" || got[1] != "vanilla" {
		t.Fatalf("unexpected list %v", got)
	}
	if _, err := registry.Get("preact"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
}

func TestRegistry_Negotiate(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "json", contentType: "application/json"})

	cases := []struct {
		accept string
		want   string
	}{
		{"", "vanilla"},
		{"*/*", "vanilla"},
		{"application/json", "json"},
		{"text/html,application/json;q=0.9", "vanilla"},
		{"text/html;q=0.5, application/json", "json"},
		{"application/json;q=0, text/plain", "vanilla"},
		{"not a media type", "vanilla"},
	}
	for _, tc := range cases {
		renderer, err := registry.Negotiate(tc.accept)
		if err != nil {
			t.Fatalf("negotiate %q: %v", tc.accept, err)
		}
		if renderer.Name() != tc.want {
			t.Fatalf("negotiate %q: want %s, got %s", tc.accept, tc.want, renderer.Name())
		}
	}

	if _, err := render.NewRegistry().Negotiate("text/html"); err == nil {
		t.Fatalf("expected error from empty registry")
	}
}
