package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linesmerrill/civic-report-api/config"
	"github.com/linesmerrill/civic-report-api/databases"
	"github.com/linesmerrill/civic-report-api/media"
	"github.com/linesmerrill/civic-report-api/models"
	"github.com/linesmerrill/civic-report-api/triage"
)

const maxUploadBytes = 20 << 20

// Signer signs direct-to-store uploads of a single file
type Signer interface {
	Sign(kind media.Kind, publicID string, now time.Time) (media.Signature, error)
}

// Media handles attachment uploads. Every stored file is recorded against
// its uploader so only they can attach it to a report.
type Media struct {
	Store   media.Store
	Signer  Signer
	Uploads databases.UploadDatabase
}

// UploadHandler stores the multipart "file" as the given "kind" and returns
// the reference to put on a report
func (m Media) UploadHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		config.ErrorStatus("failed to parse upload", http.StatusBadRequest, w, err)
		return
	}
	kind, ok := media.ParseKind(r.FormValue("kind"))
	if !ok {
		config.ErrorStatus("kind must be voice, image or evidence", http.StatusBadRequest, w, nil)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("file is required", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	ref, err := m.Store.Upload(r.Context(), file, kind)
	if errors.Is(err, media.ErrDisabled) {
		config.ErrorStatus("media uploads are not configured", http.StatusServiceUnavailable, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to upload media", http.StatusBadGateway, w, err)
		return
	}

	err = m.Uploads.Create(r.Context(), &models.Upload{
		ID:           ref.ID,
		URL:          ref.URL,
		ResourceType: ref.ResourceType,
		Kind:         string(kind),
		OwnerID:      p.ID,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// an unrecorded file could never be attached, so don't keep it
		media.Release(r.Context(), m.Store, []models.MediaRef{ref})
		zap.S().Errorw("failed to record upload", "mediaId", ref.ID, "error", err)
		config.ErrorStatus("failed to record upload", http.StatusInternalServerError, w, errInternal)
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

// GenerateSignature signs a direct upload of the "kind" query parameter,
// image by default. The public ID is chosen here and recorded for the caller
// before the file exists.
func (m Media) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if m.Signer == nil {
		config.ErrorStatus("media uploads are not configured", http.StatusServiceUnavailable, w, media.ErrDisabled)
		return
	}
	kind := media.KindImage
	if s := r.URL.Query().Get("kind"); s != "" {
		if kind, ok = media.ParseKind(s); !ok {
			config.ErrorStatus("kind must be voice, image or evidence", http.StatusBadRequest, w, nil)
			return
		}
	}
	now := time.Now().UTC()
	sig, err := m.Signer.Sign(kind, uuid.NewString(), now)
	if err != nil {
		config.ErrorStatus("failed to sign upload", http.StatusInternalServerError, w, err)
		return
	}
	err = m.Uploads.Create(r.Context(), &models.Upload{
		ID:           sig.StoredID,
		ResourceType: sig.ResourceType,
		Kind:         string(kind),
		OwnerID:      p.ID,
		CreatedAt:    now,
	})
	if err != nil {
		zap.S().Errorw("failed to record signed upload", "mediaId", sig.StoredID, "error", err)
		config.ErrorStatus("failed to sign upload", http.StatusInternalServerError, w, errInternal)
		return
	}
	writeJSON(w, http.StatusOK, sig)
}

// releasable reports whether a failed create may clean up the caller's
// uploads. Rejected input and foreign media leave storage untouched.
func releasable(err error) bool {
	switch triage.KindOf(err) {
	case triage.KindBadRequest, triage.KindForbidden:
		return false
	}
	return true
}

// releaseUploads deletes the files behind uploads and forgets each one that
// is gone. Failures are logged and the record kept for a later attempt.
func releaseUploads(ctx context.Context, store media.Store, ledger databases.UploadDatabase, uploads []models.Upload) int {
	released := 0
	for _, u := range uploads {
		if err := store.Delete(ctx, u.Ref()); err != nil {
			zap.S().Errorw("failed to release media", "mediaId", u.ID, "error", err)
			continue
		}
		if err := ledger.Delete(ctx, u.ID); err != nil {
			zap.S().Errorw("failed to forget upload", "mediaId", u.ID, "error", err)
		}
		released++
	}
	return released
}
