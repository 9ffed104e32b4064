package triage

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/linesmerrill/civic-report-api/models"
)

// CreateInput is a citizen's complaint as submitted
type CreateInput struct {
	ReporterID  string
	Title       string
	Category    string
	Urgency     string
	Description string
	Voice       *models.MediaRef
	Images      []models.MediaRef
	Longitude   *float64
	Latitude    *float64
	Address     string
}

func (in CreateInput) validate() (*models.Report, error) {
	if strings.TrimSpace(in.ReporterID) == "" {
		return nil, badRequest("reporter is required")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, badRequest("title is required")
	}
	category, ok := models.ParseCategory(in.Category)
	if !ok {
		return nil, badRequest("invalid category %q", in.Category)
	}
	urgency, ok := models.ParseUrgency(in.Urgency)
	if !ok {
		return nil, badRequest("invalid urgency %q", in.Urgency)
	}
	description := strings.TrimSpace(in.Description)
	if description == "" && (in.Voice == nil || in.Voice.URL == "") {
		return nil, badRequest("either a description or a voice note is required")
	}
	if in.Longitude == nil || in.Latitude == nil {
		return nil, badRequest("location with longitude and latitude is required")
	}
	if err := models.ValidateCoordinates(*in.Longitude, *in.Latitude); err != nil {
		return nil, badRequest("invalid location: %s", err.Error())
	}

	var voice *models.MediaRef
	if in.Voice != nil {
		v := *in.Voice
		voice = &v
	}
	return &models.Report{
		Title:       title,
		Description: description,
		Category:    category,
		Urgency:     urgency,
		Voice:       voice,
		Images:      append([]models.MediaRef(nil), in.Images...),
		Location:    models.NewGeoPoint(*in.Longitude, *in.Latitude),
		Address:     strings.TrimSpace(in.Address),
		ReportedBy:  in.ReporterID,
		Upvotes:     []models.Upvote{},
		Updates:     []models.Update{},
	}, nil
}

// Create validates and stores a new report. It resolves the jurisdiction,
// routes it to a department and scores it before anything is written; when
// no jurisdiction is found nothing is stored. Attached media must have been
// uploaded by the reporter and not be held by another report.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Report, error) {
	r, err := in.validate()
	if err != nil {
		return nil, err
	}
	refs := []*models.MediaRef{r.Voice}
	for i := range r.Images {
		refs = append(refs, &r.Images[i])
	}
	mediaIDs, err := s.ownMedia(ctx, r.ReportedBy, refs...)
	if err != nil {
		return nil, err
	}

	m, method, err := s.Resolver.Resolve(ctx, r.Location)
	if err != nil {
		return nil, err
	}
	dept, assignment, err := s.Router.Route(ctx, m, r.Category)
	if err != nil {
		return nil, err
	}

	seq, err := s.Counters.Next(ctx, r.Category.Code())
	if err != nil {
		return nil, fmt.Errorf("failed to allocate report id: %w", err)
	}

	now := s.now()
	r.ReportID = fmt.Sprintf("%s-%05d", r.Category.Code(), seq)
	r.Municipality = m.ID
	r.JurisdictionMethod = string(method)
	r.AssignmentType = assignment
	r.Status = models.StatusPendingAssignment
	if dept != nil {
		r.Department = &dept.ID
		r.Status = models.StatusAssigned
	}
	r.CreatedAt = now
	r.UpdatedAt = now
	rescore(r, now)

	if err := s.Reports.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}
	s.attach(ctx, r)
	s.claim(ctx, r, mediaIDs)

	zap.S().Infow("report created",
		"reportId", r.ReportID,
		"municipality", m.Name,
		"method", method,
		"assignment", assignment,
		"priority", r.Priority)
	return r, nil
}
