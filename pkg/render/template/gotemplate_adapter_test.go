package template_test

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-regform/pkg/render/template/gotemplate"
)

var templates = fstest.MapFS{
	"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
	"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
	"use-filter.tmpl": {Data: []byte("{{ name|shout }}")},
	"field.tmpl": {Data: []byte(`<input id="{{ label|dom_id }}" class="{{ invalid|invalid_class }}">` +
		`<span class="{{ level|strength_class }}">{{ value|trim }}</span>`)},
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var out strings.Builder
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!" {
		t.Fatalf("unexpected result %q", result)
	}
	if out.String() != result {
		t.Fatalf("writer mismatch: %q", out.String())
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestGoTemplateEngine_DefaultFilters(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("field", map[string]any{
		"label":   "New York City",
		"invalid": true,
		"level":   "strong",
		"value":   "  padded ",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<input id="new-york-city" class="is-invalid"><span class="rf-strength rf-strength--strong">padded</span>`
	if result != want {
		t.Fatalf("unexpected result\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RenderStringWithStruct(t *testing.T) {
	engine := newEngine(t)

	data := struct {
		Country string `json:"country"`
	}{Country: "India"}
	result, err := engine.Render("{{ country }}", data)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "India" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a template source")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templates))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
