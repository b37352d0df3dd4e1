package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withRequestCount)
	router.Use(h.withRateLimit)
	router.Use(withGZip)

	router.Get("/health", h.health)
	router.Get("/metrics", h.metrics)

	router.Route("/sync", func(r chi.Router) {
		r.Get("/status", h.getSyncStatus)
		r.Get("/patch", h.getPatch)
		r.Get("/snapshot", h.getSnapshot)
		r.Get("/manifest", h.getManifest)
	})

	// published files are served verbatim under their manifest paths
	router.Get("/artifacts/*", h.getArtifact)

	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
