package server

import (
	"net/http"

	"github.com/wheretogo/compass/internal/compass"
	"github.com/wheretogo/compass/internal/visit"
)

type DirectionsResponse struct {
	Version    string              `json:"version"`
	Directions []compass.Direction `json:"directions"`
}

func handleDirections(visits *visit.Service) http.HandlerFunc {
	table := visits.Resolver().Table()
	resp := DirectionsResponse{
		Version:    table.Version(),
		Directions: table.Directions(),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleResolve exposes the bare resolver: same identity and date, same
// answer. The hidden gem stays behind the unlock endpoint.
func handleResolve(visits *visit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		identity, date := q.Get("identity"), q.Get("date")
		if identity == "" || date == "" {
			writeError(w, http.StatusBadRequest, "identity and date are required")
			return
		}

		res, err := visits.Resolver().Resolve(identity, date)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, newResultResponse(res))
	}
}

func handleTomorrow(visits *visit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, dir := visits.TomorrowHint()
		writeJSON(w, http.StatusOK, TomorrowResponse{Date: date, Direction: dir})
	}
}
