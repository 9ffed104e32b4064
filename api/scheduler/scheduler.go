package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/linesmerrill/civic-report-api/models"
)

// Counter is the read the backlog job needs from the report store
type Counter interface {
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

// Resetter is anything holding per-window state the scheduler clears
type Resetter interface {
	Reset()
}

// Roller starts a fresh metrics window
type Roller interface {
	Roll()
}

// Scheduler runs the service's housekeeping jobs
type Scheduler struct {
	cron    *cron.Cron
	Limiter Resetter
	Metrics Roller
	Reports Counter
	Now     func() time.Time
}

// NewScheduler creates a new scheduler instance. Any of the collaborators may
// be nil, in which case its job is not registered.
func NewScheduler(limiter Resetter, metrics Roller, reports Counter) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		Limiter: limiter,
		Metrics: metrics,
		Reports: reports,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// Start registers the jobs and begins the scheduler
func (s *Scheduler) Start() error {
	if err := s.register(); err != nil {
		return err
	}
	s.cron.Start()
	zap.S().Info("Housekeeping scheduler started")
	return nil
}

func (s *Scheduler) register() error {
	if s.Limiter != nil {
		if _, err := s.cron.AddFunc("@every 1h", s.Limiter.Reset); err != nil {
			return err
		}
	}
	if s.Metrics != nil {
		if _, err := s.cron.AddFunc("0 * * * *", s.Metrics.Roll); err != nil {
			return err
		}
	}
	if s.Reports != nil {
		// every morning at 6 AM UTC
		if _, err := s.cron.AddFunc("0 6 * * *", s.reportBacklog); err != nil {
			return err
		}
	}
	return nil
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Housekeeping scheduler stopped")
}

// reportBacklog logs how many reports have waited over a day without a
// department
func (s *Scheduler) reportBacklog() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.Backlog(ctx)
	if err != nil {
		zap.S().Errorw("failed to count unassigned backlog", "error", err)
		return
	}
	zap.S().Infow("unassigned report backlog", "count", n)
}

// Backlog counts reports still pending assignment a day after creation
func (s *Scheduler) Backlog(ctx context.Context) (int64, error) {
	return s.Reports.CountDocuments(ctx, bson.M{
		"status":    models.StatusPendingAssignment,
		"createdAt": bson.M{"$lt": s.Now().Add(-24 * time.Hour)},
	})
}
