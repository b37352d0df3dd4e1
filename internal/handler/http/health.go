package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/utils"
	"github.com/MKhiriev/cardsync/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	health, err := h.services.SyncService.Health(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.health").Msg("error reading published manifest")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, health, http.StatusOK)
}

// metrics reports process counters. It does not touch the manifest, so
// it stays useful while the data root is broken.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	response := models.MetricsResponse{
		Requests:      h.requests.Load(),
		Errors:        h.errors.Load(),
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		TrackedIPs:    h.limiter.TrackedIPs(),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
