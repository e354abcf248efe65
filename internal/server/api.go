package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-regform/pkg/apidoc"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/jsonview"
	"github.com/goliatone/go-regform/pkg/sanitize"
	"github.com/goliatone/go-regform/pkg/validation"
)

const maxEventBytes = 64 << 10

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := s.store.Create()
	s.metrics.SessionStarted()
	s.logger.DebugContext(r.Context(), "session started", "session_id", session.ID, "via", "api")

	var snap orchestrator.Snapshot
	_ = session.Do(func(form *orchestrator.Form) error {
		snap = form.Snapshot()
		return nil
	})
	w.Header().Set("Location", "/api/sessions/"+session.ID)
	s.writeDocument(w, http.StatusCreated, jsonview.Build(snap, s.documentOptions(session)))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var snap orchestrator.Snapshot
	_ = session.Do(func(form *orchestrator.Form) error {
		snap = form.Snapshot()
		return nil
	})
	s.writeDocument(w, http.StatusOK, jsonview.Build(snap, s.documentOptions(session)))
}

// handleEvent applies one wire event. The payload is checked against the
// published schema before it is decoded, and text values carrying markup
// are refused.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	session, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	event, err := s.decodeEvent(r)
	if err != nil {
		s.metrics.IncrementRejected("malformed")
		writeError(w, err)
		return
	}

	res, snap, err := s.dispatch(r.Context(), session, event)
	if err != nil {
		writeError(w, err)
		return
	}
	doc := jsonview.Build(snap, s.documentOptions(session)).WithResult(res)
	s.writeDocument(w, http.StatusOK, doc)
}

func (s *Server) decodeEvent(r *http.Request) (orchestrator.Event, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", errBadRequest, err)
	}
	var generic any
	if err := json.Unmarshal(body, &generic); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", errBadRequest, err)
	}
	if err := s.apidoc.ValidateSchema(apidoc.EnvelopeSchema, generic); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	var envelope orchestrator.Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", errBadRequest, err)
	}
	if envelope.Kind == orchestrator.KindFieldChanged {
		if err := sanitize.Check(validation.Field(envelope.Field), envelope.Value); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	return envelope.Event()
}

func (s *Server) documentOptions(session *Session) render.RenderOptions {
	return render.RenderOptions{SessionID: session.ID, Registration: session.Registration()}
}

func (s *Server) writeDocument(w http.ResponseWriter, status int, doc jsonview.Document) {
	body, err := s.json.Encode(doc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, status, s.json.ContentType(), body)
}

func (s *Server) handleCountries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Countries())
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")
	if !s.catalog.HasCountry(country) {
		writeError(w, fmt.Errorf("%w: country %q", errCatalogMiss, country))
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.StatesOf(country))
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	country, state := chi.URLParam(r, "country"), chi.URLParam(r, "state")
	if !s.catalog.HasState(country, state) {
		writeError(w, fmt.Errorf("%w: state %q in %q", errCatalogMiss, state, country))
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.CitiesOf(country, state))
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	writeRaw(w, http.StatusOK, "application/yaml", s.apidoc.Raw())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
