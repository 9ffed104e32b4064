package triage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/linesmerrill/civic-report-api/models"
)

// maxAttempts bounds the optimistic retry loop of a single mutation
const maxAttempts = 5

// ReportStore persists reports. CompareAndSwap must only write when the
// stored version still equals expectedVersion.
type ReportStore interface {
	FindByID(ctx context.Context, id string) (*models.Report, error)
	Create(ctx context.Context, report *models.Report) error
	CompareAndSwap(ctx context.Context, report *models.Report, expectedVersion int64) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Sequencer hands out per key sequence numbers for human readable IDs
type Sequencer interface {
	Next(ctx context.Context, key string) (int64, error)
}

// Service is the report triage engine: creation, voting and the status
// lifecycle, each mutation applied under per-report optimistic concurrency
type Service struct {
	Reports     ReportStore
	Departments DepartmentStore
	Counters    Sequencer
	Uploads     MediaLedger
	Resolver    *Resolver
	Router      *Router
	Now         func() time.Time
}

// NewService wires the engine to its stores
func NewService(reports ReportStore, municipalities MunicipalityStore, departments DepartmentStore, counters Sequencer, uploads MediaLedger, geocoder Geocoder, radiusMeters float64) *Service {
	return &Service{
		Reports:     reports,
		Departments: departments,
		Counters:    counters,
		Uploads:     uploads,
		Resolver:    NewResolver(municipalities, geocoder, radiusMeters),
		Router:      NewRouter(departments),
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

// Get loads a report by ObjectID hex or human readable ID
func (s *Service) Get(ctx context.Context, id string) (*models.Report, error) {
	r, err := s.Reports.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report %s: %w", id, err)
	}
	return r, nil
}

// mutate runs apply against the latest stored copy of the report and saves
// it only if nobody else saved in between, reloading and retrying otherwise
func (s *Service) mutate(ctx context.Context, id string, apply func(r *models.Report, now time.Time) error) (*models.Report, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		r, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		now := s.now()
		if err := apply(r, now); err != nil {
			return nil, err
		}

		expected := r.Version
		r.Version++
		r.UpdatedAt = now
		ok, err := s.Reports.CompareAndSwap(ctx, r, expected)
		if err != nil {
			return nil, fmt.Errorf("failed to save report %s: %w", id, err)
		}
		if ok {
			return r, nil
		}
		zap.S().Debugw("report version conflict", "reportId", id, "attempt", attempt)
	}
	zap.S().Warnw("giving up on contended report", "reportId", id, "attempts", maxAttempts)
	return nil, ErrConcurrentUpdate
}

// department loads a department by hex id, mapping absence to NotFound
func (s *Service) department(ctx context.Context, id string) (*models.Department, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, badRequest("invalid department id %q", id)
	}
	d, err := s.Departments.FindByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound("department")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load department %s: %w", id, err)
	}
	return d, nil
}

// attach records the report on its department's list; the report itself is
// already saved, so a failure here is only logged
func (s *Service) attach(ctx context.Context, r *models.Report) {
	if r.Department == nil {
		return
	}
	if err := s.Departments.AttachReport(ctx, *r.Department, r.ID); err != nil {
		zap.S().Errorw("failed to attach report to department",
			"reportId", r.ReportID,
			"department", r.Department.Hex(),
			"error", err)
	}
}
