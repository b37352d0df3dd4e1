package http

import (
	"net/http"

	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/utils"
	"github.com/MKhiriev/cardsync/models"
)

func (h *Handler) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	current := r.URL.Query().Get("current")

	status, err := h.services.SyncService.Status(ctx, current)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getSyncStatus").Msg("error building sync status")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) getPatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")
	expand := query.Get("expand") == "1"

	plan, err := h.services.SyncService.PlanPatch(ctx, from, to, expand)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getPatch").Msg("error planning patch request")
		h.writeError(w, err)
		return
	}

	switch plan.Mode {
	case models.PatchModeFullRequired:
		// too far behind for patching: the 409 tells the client to
		// resync from a snapshot instead
		response := models.PatchModeResponse{
			Mode:          plan.Mode,
			LatestVersion: plan.LatestVersion,
		}
		utils.WriteJSON(w, response, http.StatusConflict)

	case models.PatchModeNoop:
		response := models.PatchModeResponse{
			Mode:        plan.Mode,
			FromVersion: plan.FromVersion,
			ToVersion:   plan.ToVersion,
		}
		utils.WriteJSON(w, response, http.StatusOK)

	case models.PatchModeCompacted:
		// a compacted hop is served as the bare patch body, the same
		// JSON the client would read from /artifacts
		utils.WriteJSON(w, plan.Compacted, http.StatusOK)

	default:
		if plan.Patches != nil {
			response := models.PatchChainExpandedResponse{
				Mode:        plan.Mode,
				FromVersion: plan.FromVersion,
				ToVersion:   plan.ToVersion,
				Patches:     plan.Patches,
			}
			utils.WriteJSON(w, response, http.StatusOK)
			return
		}

		response := models.PatchChainResponse{
			Mode:        plan.Mode,
			FromVersion: plan.FromVersion,
			ToVersion:   plan.ToVersion,
			Patches:     plan.Paths,
		}
		utils.WriteJSON(w, response, http.StatusOK)
	}
}

func (h *Handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query := r.URL.Query()
	version := query.Get("version")
	includeRecords := query.Get("includeRecords") == "1"

	info, err := h.services.SyncService.Snapshot(ctx, version, includeRecords)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getSnapshot").Msg("error resolving snapshot")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, info, http.StatusOK)
}

func (h *Handler) getManifest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	manifest, err := h.services.SyncService.Manifest(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getManifest").Msg("error reading published manifest")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, manifest, http.StatusOK)
}
