package server

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-regform/internal/tracing"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
)

// dispatch applies events in order while holding the session lock and
// returns the result of the last one with the snapshot after all of them.
// Callers hold no lock.
func (s *Server) dispatch(ctx context.Context, session *Session, events ...orchestrator.Event) (orchestrator.Result, orchestrator.Snapshot, error) {
	var (
		last orchestrator.Result
		snap orchestrator.Snapshot
	)
	err := session.Do(func(form *orchestrator.Form) error {
		for _, event := range events {
			res, err := s.apply(ctx, session, form, event)
			if err != nil {
				return err
			}
			last = res
		}
		snap = form.Snapshot()
		return nil
	})
	if err != nil {
		return orchestrator.Result{}, orchestrator.Snapshot{}, err
	}
	return last, snap, nil
}

// apply runs one event. The session lock must be held.
func (s *Server) apply(ctx context.Context, session *Session, form *orchestrator.Form, event orchestrator.Event) (orchestrator.Result, error) {
	kind := "unknown"
	if event != nil {
		kind = string(event.Kind())
	}
	_, span := s.tracer.Start(ctx, tracing.SpanDispatch, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrSessionID, session.ID),
		attribute.String(tracing.AttrEventKind, kind),
	)

	res, err := form.Dispatch(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.IncrementRejected(rejectReason(err))
		s.logger.DebugContext(ctx, "event rejected", "session_id", session.ID, "kind", kind, "error", err)
		return res, err
	}

	span.SetAttributes(
		attribute.String(tracing.AttrPhase, res.Phase.String()),
		attribute.String(tracing.AttrOutcome, string(res.Outcome)),
	)
	span.SetStatus(codes.Ok, "")
	s.metrics.IncrementEvent(kind)

	switch res.Outcome {
	case orchestrator.OutcomeSuccess:
		session.registration = res.Registration
		s.metrics.IncrementSubmission(string(res.Outcome))
		s.logger.InfoContext(ctx, "registration submitted", "session_id", session.ID,
			"country", res.Registration.Country, "strength", res.Registration.PasswordStrength.String())
	case orchestrator.OutcomeInvalid:
		s.metrics.IncrementSubmission(string(res.Outcome))
		s.logger.DebugContext(ctx, "submission rejected", "session_id", session.ID,
			"errors", len(res.Err.Errors))
	}
	if _, ok := event.(orchestrator.ModalDismissed); ok {
		session.registration = nil
	}
	return res, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, orchestrator.ErrModalOpen):
		return "modal_open"
	case errors.Is(err, orchestrator.ErrUnknownField):
		return "unknown_field"
	case errors.Is(err, orchestrator.ErrUnknownOption):
		return "unknown_option"
	default:
		return "unsupported"
	}
}

// renderWith renders snap with renderer and records the duration.
func (s *Server) renderWith(ctx context.Context, renderer render.Renderer, session *Session, snap orchestrator.Snapshot) ([]byte, error) {
	start := time.Now()
	body, err := renderer.Render(ctx, snap, render.RenderOptions{
		Action:       render.DefaultAction,
		SessionID:    session.ID,
		Theme:        s.theme,
		Registration: session.Registration(),
	})
	s.metrics.ObserveRender(renderer.Name(), time.Since(start).Seconds())
	return body, err
}
