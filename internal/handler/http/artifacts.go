package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/cardsync/internal/logger"
)

// getArtifact serves one published file verbatim. Clients hash the bytes
// they receive, so the body must match the file on disk exactly.
func (h *Handler) getArtifact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	relPath := chi.URLParam(r, "*")

	data, err := h.services.SyncService.Artifact(ctx, relPath)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getArtifact").Str("path", relPath).Msg("error reading artifact")
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
