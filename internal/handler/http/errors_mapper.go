package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/cardsync/internal/service"
	"github.com/MKhiriev/cardsync/internal/store"
	"github.com/MKhiriev/cardsync/internal/utils"
	"github.com/MKhiriev/cardsync/internal/validators"
	"github.com/MKhiriev/cardsync/models"
)

// errorClass pairs an HTTP status with the machine-readable code carried
// in the uniform {"error": code} body.
type errorClass struct {
	status int
	code   string
}

var errorClassMap = map[error]errorClass{
	service.ErrMissingFromVersion:  {http.StatusBadRequest, models.ErrCodeMissingFrom},
	service.ErrPatchNotFound:       {http.StatusNotFound, models.ErrCodePatchNotFound},
	service.ErrSnapshotNotFound:    {http.StatusNotFound, models.ErrCodeSnapshotNotFound},
	service.ErrSnapshotFileMissing: {http.StatusNotFound, models.ErrCodeSnapshotFileMissing},

	store.ErrManifestMissing:     {http.StatusInternalServerError, models.ErrCodeManifestMissing},
	store.ErrPatchFileMissing:    {http.StatusNotFound, models.ErrCodePatchNotFound},
	store.ErrSnapshotFileMissing: {http.StatusNotFound, models.ErrCodeSnapshotFileMissing},
	store.ErrArtifactMissing:     {http.StatusNotFound, models.ErrCodeNotFound},

	// a manifest that fails validation is as unusable as a missing one
	validators.ErrMissingLatestVersion: {http.StatusInternalServerError, models.ErrCodeManifestMissing},
	validators.ErrNoVersions:           {http.StatusInternalServerError, models.ErrCodeManifestMissing},
	validators.ErrEmptyVersionEntry:    {http.StatusInternalServerError, models.ErrCodeManifestMissing},
}

func classifyError(err error) errorClass {
	for target, class := range errorClassMap {
		if errors.Is(err, target) {
			return class
		}
	}
	return errorClass{http.StatusInternalServerError, models.ErrCodeInternal}
}

// writeError sends the uniform error body for err and counts it towards
// the errors metric.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	class := classifyError(err)
	h.errors.Add(1)
	utils.WriteJSONError(w, class.code, class.status)
}

// notFound is the router's fallback for paths outside the API surface.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.errors.Add(1)
	utils.WriteJSONError(w, models.ErrCodeNotFound, http.StatusNotFound)
}
