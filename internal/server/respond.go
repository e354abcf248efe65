package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-regform/pkg/orchestrator"
)

// errorBody is the JSON envelope of every API error.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeRaw(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// statusFor translates domain errors into HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, errCatalogMiss):
		return http.StatusNotFound
	case errors.Is(err, orchestrator.ErrModalOpen):
		return http.StatusConflict
	case errors.Is(err, orchestrator.ErrUnknownField),
		errors.Is(err, orchestrator.ErrUnknownOption),
		errors.Is(err, orchestrator.ErrUnsupportedEvent),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var (
	errBadRequest  = errors.New("server: bad request")
	errCatalogMiss = errors.New("server: not in catalog")
)

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	writeJSON(w, status, errorBody{Error: message})
}
