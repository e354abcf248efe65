// Package apidoc embeds the OpenAPI description of the HTTP surface and
// checks event payloads against it.
package apidoc

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var raw []byte

// EnvelopeSchema names the event payload schema.
const EnvelopeSchema = "Envelope"

// Operation is one documented route.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Document is a loaded and validated API description.
type Document struct {
	api *openapi3.T
	raw []byte
}

// Raw returns the embedded YAML.
func Raw() []byte {
	return append([]byte(nil), raw...)
}

// Load parses and validates the embedded description.
func Load(ctx context.Context) (*Document, error) {
	return LoadFromData(ctx, raw)
}

// LoadFromData parses and validates an arbitrary description.
func LoadFromData(ctx context.Context, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, errors.New("apidoc: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	api, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("apidoc: load document: %w", err)
	}
	if err := api.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("apidoc: validate: %w", err)
	}
	if api.Paths == nil || api.Paths.Len() == 0 {
		return nil, errors.New("apidoc: document does not contain any paths")
	}
	return &Document{api: api, raw: append([]byte(nil), data...)}, nil
}

// Raw returns the source the document was loaded from.
func (d *Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Title returns info.title.
func (d *Document) Title() string {
	if d.api.Info == nil {
		return ""
	}
	return d.api.Info.Title
}

// Version returns info.version.
func (d *Document) Version() string {
	if d.api.Info == nil {
		return ""
	}
	return d.api.Info.Version
}

// Operations lists every operation sorted by path, then method.
func (d *Document) Operations() []Operation {
	var out []Operation
	for path, item := range d.api.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, Operation{ID: id, Method: method, Path: path, Summary: op.Summary})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Operation looks an operation up by id.
func (d *Document) Operation(id string) (Operation, bool) {
	for _, op := range d.Operations() {
		if op.ID == id {
			return op, true
		}
	}
	return Operation{}, false
}

// ValidateSchema checks a decoded JSON value against a named component
// schema.
func (d *Document) ValidateSchema(name string, value any) error {
	if d.api.Components == nil {
		return fmt.Errorf("apidoc: unknown schema %q", name)
	}
	ref, ok := d.api.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return fmt.Errorf("apidoc: unknown schema %q", name)
	}
	if err := ref.Value.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("apidoc: %s: %w", name, err)
	}
	return nil
}

// ValidateEnvelope checks a decoded event payload.
func (d *Document) ValidateEnvelope(value any) error {
	return d.ValidateSchema(EnvelopeSchema, value)
}
