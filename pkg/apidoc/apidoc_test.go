package apidoc

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadEmbedded(t *testing.T) {
	doc, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Title() != "Registration form API" || doc.Version() != "1.0.0" {
		t.Fatalf("unexpected info: %q %q", doc.Title(), doc.Version())
	}

	var ids []string
	for _, op := range doc.Operations() {
		ids = append(ids, op.Method+" "+op.Path)
	}
	want := []string{
		"POST /api/sessions",
		"GET /api/sessions/{id}",
		"POST /api/sessions/{id}/events",
		"GET /api/catalog/countries",
		"GET /api/catalog/countries/{country}/states",
		"GET /api/catalog/countries/{country}/states/{state}/cities",
		"GET /healthz",
	}
	if diff := cmp.Diff(sortedCopy(want), sortedCopy(ids)); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}

	op, ok := doc.Operation("dispatchEvent")
	if !ok || op.Method != "POST" || op.Path != "/api/sessions/{id}/events" {
		t.Fatalf("dispatchEvent lookup: %+v %v", op, ok)
	}
}

func TestValidateEnvelope(t *testing.T) {
	doc, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cases := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "field change", payload: `{"kind":"field_changed","field":"email","value":"a@b.co"}`},
		{name: "toggle", payload: `{"kind":"gender_toggled","option":"Other","checked":true}`},
		{name: "submit", payload: `{"kind":"submitted"}`},
		{name: "missing kind", payload: `{"field":"email"}`, wantErr: true},
		{name: "unknown kind", payload: `{"kind":"exploded"}`, wantErr: true},
		{name: "select as text field", payload: `{"kind":"field_changed","field":"country","value":"India"}`, wantErr: true},
		{name: "unknown member", payload: `{"kind":"submitted","extra":1}`, wantErr: true},
		{name: "checked not bool", payload: `{"kind":"terms_toggled","checked":"yes"}`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var value any
			if err := json.Unmarshal([]byte(tc.payload), &value); err != nil {
				t.Fatalf("decode payload: %v", err)
			}
			err := doc.ValidateEnvelope(value)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadFromDataRejectsEmpty(t *testing.T) {
	if _, err := LoadFromData(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := LoadFromData(context.Background(), []byte("openapi: 3.0.3\ninfo: {title: x, version: '1'}\npaths: {}\n")); err == nil {
		t.Fatalf("expected error for document without paths")
	}
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
