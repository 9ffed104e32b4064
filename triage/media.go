package triage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/linesmerrill/civic-report-api/models"
)

// MediaLedger knows who uploaded each media handle and which report holds it
type MediaLedger interface {
	FindUnclaimed(ctx context.Context, ownerID string, ids []string) ([]models.Upload, error)
	Claim(ctx context.Context, ids []string, reportID primitive.ObjectID) error
}

// ownMedia checks that every ref was uploaded by ownerID and is not attached
// to a report yet, then replaces each ref with the recorded handle. It
// returns the distinct IDs to claim once the report is saved.
func (s *Service) ownMedia(ctx context.Context, ownerID string, refs ...*models.MediaRef) ([]string, error) {
	var ids []string
	seen := map[string]bool{}
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		if ref.ID == "" {
			return nil, badRequest("media reference is missing its id")
		}
		if !seen[ref.ID] {
			seen[ref.ID] = true
			ids = append(ids, ref.ID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if s.Uploads == nil {
		return nil, forbidden("media attachments are not accepted")
	}

	uploads, err := s.Uploads.FindUnclaimed(ctx, ownerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up uploads: %w", err)
	}
	owned := make(map[string]models.Upload, len(uploads))
	for _, u := range uploads {
		owned[u.ID] = u
	}
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		u, ok := owned[ref.ID]
		if !ok {
			return nil, forbidden(fmt.Sprintf("media %s was not uploaded by you or is already attached", ref.ID))
		}
		if u.URL != "" {
			ref.URL = u.URL
		}
		if u.ResourceType != "" {
			ref.ResourceType = u.ResourceType
		}
	}
	return ids, nil
}

// claim marks ids as held by the report; the report is already saved, so a
// failure here is only logged
func (s *Service) claim(ctx context.Context, r *models.Report, ids []string) {
	if len(ids) == 0 || s.Uploads == nil {
		return
	}
	if err := s.Uploads.Claim(ctx, ids, r.ID); err != nil {
		zap.S().Errorw("failed to claim uploads",
			"reportId", r.ReportID,
			"uploads", ids,
			"error", err)
	}
}
