// Package jsonview renders form snapshots as JSON documents for API clients
// and the browser runtime.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

// ResultDocument reports what the last event did. Errors and FormErrors
// carry a rejected submission.
type ResultDocument struct {
	Phase      orchestrator.Phase          `json:"phase"`
	Outcome    orchestrator.Outcome        `json:"outcome,omitempty"`
	Validated  []validation.Field          `json:"validated,omitempty"`
	FocusTop   bool                        `json:"focusTop,omitempty"`
	Errors     map[validation.Field]string `json:"errors,omitempty"`
	FormErrors []string                    `json:"formErrors,omitempty"`
}

// Document is the JSON body served for a form session.
type Document struct {
	SessionID    string                      `json:"sessionId,omitempty"`
	Snapshot     orchestrator.Snapshot       `json:"snapshot"`
	Errors       map[validation.Field]string `json:"errors,omitempty"`
	FormErrors   []string                    `json:"formErrors,omitempty"`
	Registration *orchestrator.Registration  `json:"registration,omitempty"`
	Result       *ResultDocument             `json:"result,omitempty"`
}

// Build assembles the document for a snapshot.
func Build(snapshot orchestrator.Snapshot, options render.RenderOptions) Document {
	mapping := render.MapSnapshot(snapshot)
	doc := Document{
		SessionID:    options.SessionID,
		Snapshot:     snapshot,
		FormErrors:   mapping.Form,
		Registration: options.Registration,
	}
	doc.Errors = firstErrors(mapping)
	return doc
}

func firstErrors(mapping render.ErrorMapping) map[validation.Field]string {
	if len(mapping.Fields) == 0 {
		return nil
	}
	out := make(map[validation.Field]string, len(mapping.Fields))
	for field := range mapping.Fields {
		out[field] = mapping.FieldError(field)
	}
	return out
}

// WithResult attaches an event result.
func (d Document) WithResult(result orchestrator.Result) Document {
	d.Result = &ResultDocument{
		Phase:     result.Phase,
		Outcome:   result.Outcome,
		Validated: result.Validated,
		FocusTop:  result.FocusTop,
	}
	if result.Err != nil {
		mapping := render.MapError(result.Err)
		d.Result.Errors = firstErrors(mapping)
		d.Result.FormErrors = mapping.Form
	}
	if result.Registration != nil {
		d.Registration = result.Registration
	}
	return d
}

type Option func(*Renderer)

// WithIndent pretty prints the output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer implements render.Renderer for application/json.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(_ context.Context, snapshot orchestrator.Snapshot, options render.RenderOptions) ([]byte, error) {
	return r.Encode(Build(snapshot, options))
}

// Encode marshals a document with the renderer's formatting.
func (r *Renderer) Encode(doc Document) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview: encode: %w", err)
	}
	return out, nil
}
