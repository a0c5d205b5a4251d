package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/wheretogo/compass/internal/handler/health"
	"github.com/wheretogo/compass/internal/visit"
)

func addRoutes(r chi.Router, logger *slog.Logger, visits *visit.Service, checks map[string]health.Checker, spaDir string) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Where To Go API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, checks).Routes())

	// Stateless: content table, pure resolver, shared tomorrow teaser.
	r.Get("/api/directions", handleDirections(visits))
	r.Get("/api/resolve", handleResolve(visits))
	r.Get("/api/tomorrow", handleTomorrow(visits))

	r.Post("/api/devices", handleProvision(logger, visits))
	r.Route("/api/devices/{deviceID}", func(r chi.Router) {
		r.Get("/", handleOpen(logger, visits))
		r.Post("/spin", handleSpin(logger, visits, broker))
		r.Post("/gem", handleUnlockGem(logger, visits, broker))
		r.Get("/share", handleShare(logger, visits))
		r.Get("/journal", handleJournal(logger, visits))
		r.Get("/stamps", handleStamps(logger, visits))
		r.Get("/events", handleEvents(logger, visits, broker))
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
