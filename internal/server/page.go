package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Form post actions carried by the button named "action".
const (
	ActionSubmit  = "submit"
	ActionReset   = "reset"
	ActionDismiss = "dismiss"
	ActionUpdate  = "update"
)

// handlePage starts a fresh session for every page load.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	session := s.store.Create()
	s.metrics.SessionStarted()
	s.logger.DebugContext(r.Context(), "session started", "session_id", session.ID)

	var snap orchestrator.Snapshot
	_ = session.Do(func(form *orchestrator.Form) error {
		snap = form.Snapshot()
		return nil
	})
	s.respond(w, r, http.StatusOK, session, snap)
}

// handleFormPost applies a browser form post: the posted values become
// change events for whatever differs from the session, followed by the
// pressed button's action.
func (s *Server) handleFormPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	session, err := s.store.Get(r.PostForm.Get(render.SessionFieldName))
	if errors.Is(err, ErrSessionNotFound) {
		// Expired page: replay the posted values onto a fresh form.
		session = s.store.Create()
		s.metrics.SessionStarted()
	}

	var events []orchestrator.Event
	action := strings.TrimSpace(r.PostForm.Get("action"))
	err = session.Do(func(form *orchestrator.Form) error {
		events = formEvents(form.Snapshot(), r, action)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	_, snap, err := s.dispatch(r.Context(), session, events...)
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		if status == http.StatusInternalServerError {
			writeError(w, err)
			return
		}
		// Rejected posts re-render the current state.
		_ = session.Do(func(form *orchestrator.Form) error {
			snap = form.Snapshot()
			return nil
		})
	}
	s.respond(w, r, status, session, snap)
}

// formEvents diffs a form post against the current snapshot.
func formEvents(current orchestrator.Snapshot, r *http.Request, action string) []orchestrator.Event {
	if current.ModalOpen || action == ActionDismiss {
		return []orchestrator.Event{orchestrator.ModalDismissed{}}
	}

	values := r.PostForm
	var events []orchestrator.Event
	for _, field := range validation.TextFields {
		if _, posted := values[string(field)]; !posted {
			continue
		}
		value := values.Get(string(field))
		if value == "" && isSecret(field) {
			// Password inputs are rendered empty, so a blank post keeps
			// the value the session already holds.
			continue
		}
		if value != current.Field(field).Value {
			events = append(events, orchestrator.FieldChanged{Field: field, Value: value})
		}
	}

	posted := make(map[string]bool)
	for _, option := range values[string(validation.FieldGender)] {
		posted[option] = true
	}
	for _, option := range current.GenderOptions {
		if posted[option] != current.GenderChecked(option) {
			events = append(events, orchestrator.GenderToggled{Option: option, Checked: posted[option]})
		}
	}

	// A changed parent makes the posted children stale: they were picked
	// from the old option lists.
	sel := current.Selection
	state := values.Get(string(validation.FieldState))
	city := values.Get(string(validation.FieldCity))
	switch country := values.Get(string(validation.FieldCountry)); {
	case country != sel.Country:
		events = append(events, orchestrator.CountrySelected{Country: country})
	case state != sel.State:
		events = append(events, orchestrator.StateSelected{State: state})
	case city != sel.City:
		events = append(events, orchestrator.CitySelected{City: city})
	}

	terms := values.Get(string(validation.FieldTerms)) == "on"
	if terms != current.Terms {
		events = append(events, orchestrator.TermsToggled{Checked: terms})
	}

	switch action {
	case ActionSubmit:
		events = append(events, orchestrator.Submitted{})
	case ActionReset:
		events = []orchestrator.Event{orchestrator.ResetRequested{}}
	}
	return events
}

func isSecret(field validation.Field) bool {
	return field == validation.FieldPassword || field == validation.FieldConfirmPassword
}

// respond renders snap with the negotiated renderer.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, session *Session, snap orchestrator.Snapshot) {
	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		writeError(w, err)
		return
	}
	body, err := s.renderWith(r.Context(), renderer, session, snap)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "render failed", "renderer", renderer.Name(), "error", err)
		writeError(w, err)
		return
	}
	writeRaw(w, status, renderer.ContentType(), body)
}
