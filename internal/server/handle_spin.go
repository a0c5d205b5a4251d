package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wheretogo/compass/internal/compass"
	"github.com/wheretogo/compass/internal/visit"
)

type SpinRequest struct {
	Attempt int `json:"attempt"`
}

type GemResponse struct {
	Attempt   int               `json:"attempt"`
	HiddenGem compass.HiddenGem `json:"hiddenGem"`
}

type ShareResponse struct {
	Message string `json:"message"`
}

func handleSpin(logger *slog.Logger, visits *visit.Service, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SpinRequest
		if err := readOptionalJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		deviceID := chi.URLParam(r, "deviceID")
		sp, err := visits.Spin(r.Context(), deviceID, req.Attempt)
		if err != nil {
			writeVisitError(w, logger, err)
			return
		}

		broker.Publish(deviceID, SSEEvent{
			Type:        "spin",
			Attempt:     sp.Attempt,
			Date:        sp.Result.Date,
			DirectionID: sp.Result.Direction.ID,
		})

		writeJSON(w, http.StatusOK, newSpinResponse(sp))
	}
}

func handleUnlockGem(logger *slog.Logger, visits *visit.Service, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SpinRequest
		if err := readOptionalJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		deviceID := chi.URLParam(r, "deviceID")
		gem, err := visits.UnlockGem(r.Context(), deviceID, req.Attempt)
		if err != nil {
			writeVisitError(w, logger, err)
			return
		}

		broker.Publish(deviceID, SSEEvent{Type: "gem_unlocked", Attempt: req.Attempt})

		writeJSON(w, http.StatusOK, GemResponse{Attempt: req.Attempt, HiddenGem: gem})
	}
}

func handleShare(logger *slog.Logger, visits *visit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attempt, ok := attemptParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "attempt must be a non-negative integer")
			return
		}

		msg, err := visits.Share(r.Context(), chi.URLParam(r, "deviceID"), attempt)
		if err != nil {
			writeVisitError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, ShareResponse{Message: msg})
	}
}

// attemptParam reads the reroll counter from ?attempt=, defaulting to 0.
func attemptParam(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("attempt")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
