package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wheretogo/compass/internal/compass"
	"github.com/wheretogo/compass/internal/visit"
)

type JournalResponse struct {
	Entries     []visit.JournalEntry        `json:"entries"`
	Total       int                         `json:"total"`
	TotalLabel  string                      `json:"totalLabel"`
	ByDirection map[compass.DirectionID]int `json:"byDirection"`
}

type StampsResponse struct {
	Month     string                `json:"month"`
	Collected []compass.DirectionID `json:"collected"`
	Complete  bool                  `json:"complete"`
}

func handleJournal(logger *slog.Logger, visits *visit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		j, err := visits.Journal(r.Context(), chi.URLParam(r, "deviceID"))
		if err != nil {
			writeVisitError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, JournalResponse{
			Entries:     j.Entries,
			Total:       j.Total,
			TotalLabel:  j.TotalLabel,
			ByDirection: j.ByDirection,
		})
	}
}

func handleStamps(logger *slog.Logger, visits *visit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := visits.Stamps(r.Context(), chi.URLParam(r, "deviceID"))
		if err != nil {
			writeVisitError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, StampsResponse{
			Month:     c.Month,
			Collected: c.Collected,
			Complete:  c.Complete(),
		})
	}
}
