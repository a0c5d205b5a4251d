package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/wheretogo/compass/internal/compass"
	"github.com/wheretogo/compass/internal/visit"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// readOptionalJSON is readJSON for endpoints whose body may be empty.
func readOptionalJSON(r *http.Request, v any) error {
	if err := readJSON(r, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeVisitError maps visit and resolver errors onto HTTP statuses.
// Anything unexpected is logged and reported as a 500.
func writeVisitError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, visit.ErrUnknownDevice):
		writeError(w, http.StatusNotFound, "device not found")
	case errors.Is(err, visit.ErrInvalidAttempt):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, compass.ErrEmptyIdentity), errors.Is(err, compass.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
