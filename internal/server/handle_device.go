package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wheretogo/compass/internal/visit"
)

type ProvisionRequest struct {
	DeviceID string `json:"deviceId"`
}

type DeviceResponse struct {
	DeviceID   string `json:"deviceId"`
	FirstVisit bool   `json:"firstVisit"`
}

type VisitResponse struct {
	DeviceID string           `json:"deviceId"`
	Today    string           `json:"today"`
	Greeting string           `json:"greeting"`
	Tomorrow TomorrowResponse `json:"tomorrow"`
	Revisit  *SpinResponse    `json:"revisit"`
}

// handleProvision returns the device named in the body when it is known and
// issues a new identity otherwise. The body is optional.
func handleProvision(logger *slog.Logger, visits *visit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProvisionRequest
		if err := readOptionalJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		existing := strings.TrimSpace(req.DeviceID)
		d, err := visits.Provision(r.Context(), existing)
		if err != nil {
			writeVisitError(w, logger, err)
			return
		}

		status := http.StatusOK
		if d.ID != existing {
			status = http.StatusCreated
		}
		writeJSON(w, status, DeviceResponse{DeviceID: d.ID, FirstVisit: d.FirstVisit})
	}
}

func handleOpen(logger *slog.Logger, visits *visit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := visits.Open(r.Context(), chi.URLParam(r, "deviceID"))
		if err != nil {
			writeVisitError(w, logger, err)
			return
		}

		resp := VisitResponse{
			DeviceID: v.DeviceID,
			Today:    v.Today,
			Greeting: v.Greeting,
			Tomorrow: TomorrowResponse{Date: v.TomorrowDate, Direction: v.Tomorrow},
		}
		if v.Revisit != nil {
			sp := newSpinResponse(*v.Revisit)
			resp.Revisit = &sp
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
