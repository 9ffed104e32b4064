package triage

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linesmerrill/civic-report-api/models"
)

// next lists the statuses reachable by a plain status change. Entering
// assigned is only possible through a manual assignment.
var next = map[models.Status][]models.Status{
	models.StatusPendingAssignment: {models.StatusRejected},
	models.StatusAssigned:          {models.StatusInProgress, models.StatusRejected},
	models.StatusInProgress:        {models.StatusResolved, models.StatusRejected},
}

func allowed(from, to models.Status) bool {
	for _, s := range next[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Evidence is the proof of completion captured on resolve
type Evidence struct {
	Image         *models.MediaRef
	Notes         string
	MaterialsCost float64
	LaborHours    float64
}

// StatusChange is a requested transition. DepartmentID (and optionally
// StaffID) is required when the target is assigned.
type StatusChange struct {
	Status       string
	Message      string
	Evidence     *Evidence
	DepartmentID string
	StaffID      string
}

// canOperate enforces that staff only touch their own department's reports
func canOperate(actor models.Principal, r *models.Report) error {
	switch {
	case actor.Role.IsAdmin():
		return nil
	case actor.Role == models.RoleStaff:
		if r.Department != nil && actor.Department != "" && r.Department.Hex() == actor.Department {
			return nil
		}
		return forbidden("staff may only update reports of their own department")
	}
	return forbidden("only staff or administrators may update a report")
}

func appendUpdate(r *models.Report, actor models.Principal, message string, status models.Status, now time.Time) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	r.Updates = append(r.Updates, models.Update{
		ID:        uuid.NewString(),
		Message:   message,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Status:    status,
		CreatedAt: now,
	})
}

func transition(r *models.Report, actor models.Principal, target models.Status, message string, ev *Evidence, now time.Time) error {
	if r.Status.Terminal() {
		return ErrTerminalStatus
	}
	if err := canOperate(actor, r); err != nil {
		return err
	}
	if !allowed(r.Status, target) {
		return invalidStatus("cannot move a report from %s to %s", r.Status, target)
	}

	if actor.Role == models.RoleStaff && r.AssignedTo == "" {
		r.AssignedTo = actor.ID
	}
	r.Status = target
	if target == models.StatusResolved {
		resolve(r, actor, ev, now)
	}
	appendUpdate(r, actor, message, target, now)
	return nil
}

func resolve(r *models.Report, actor models.Principal, ev *Evidence, now time.Time) {
	resolvedAt := now
	hours := math.Round(now.Sub(r.CreatedAt).Hours()*100) / 100
	r.ResolvedAt = &resolvedAt
	r.ResolutionTimeHours = &hours

	res := &models.Resolution{CompletedBy: actor.ID, CompletedAt: now}
	if ev != nil {
		res.EvidenceImage = ev.Image
		res.Notes = strings.TrimSpace(ev.Notes)
		res.MaterialsCost = ev.MaterialsCost
		res.LaborHours = ev.LaborHours
	}
	r.Resolution = res
}

func assign(r *models.Report, actor models.Principal, dept *models.Department, staffID, message string, now time.Time) error {
	if r.Status.Terminal() {
		return ErrTerminalStatus
	}
	if !actor.Role.IsAdmin() {
		return forbidden("only administrators may assign reports")
	}
	if r.Status != models.StatusPendingAssignment {
		return invalidStatus("cannot assign a report that is %s", r.Status)
	}
	if dept.Municipality != r.Municipality {
		return badRequest("department %s does not belong to the report's municipality", dept.Name)
	}
	if staffID != "" && len(dept.Staff) > 0 && !dept.HasStaff(staffID) {
		return badRequest("staff member is not part of department %s", dept.Name)
	}

	id := dept.ID
	r.Department = &id
	r.AssignmentType = models.AssignmentManual
	r.Status = models.StatusAssigned
	if staffID != "" {
		r.AssignedTo = staffID
	}
	appendUpdate(r, actor, message, models.StatusAssigned, now)
	return nil
}

// ChangeStatus moves a report along its lifecycle on behalf of actor
func (s *Service) ChangeStatus(ctx context.Context, id string, actor models.Principal, change StatusChange) (*models.Report, error) {
	target, ok := models.ParseStatus(change.Status)
	if !ok {
		return nil, invalidStatus("unknown status %q", change.Status)
	}
	if ev := change.Evidence; ev != nil && (ev.MaterialsCost < 0 || ev.LaborHours < 0) {
		return nil, badRequest("materials cost and labor hours cannot be negative")
	}

	// closed reports fail the same way whatever else is wrong with the request
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() {
		return nil, ErrTerminalStatus
	}

	var dept *models.Department
	if target == models.StatusAssigned {
		if change.DepartmentID == "" {
			return nil, invalidStatus("assigning a report requires a department")
		}
		if dept, err = s.department(ctx, change.DepartmentID); err != nil {
			return nil, err
		}
	}

	var evidenceIDs []string
	if ev := change.Evidence; target == models.StatusResolved && ev != nil && ev.Image != nil {
		img := *ev.Image
		owned := *ev
		owned.Image = &img
		change.Evidence = &owned
		if evidenceIDs, err = s.ownMedia(ctx, actor.ID, owned.Image); err != nil {
			return nil, err
		}
	}

	r, err := s.mutate(ctx, id, func(r *models.Report, now time.Time) error {
		if dept != nil {
			return assign(r, actor, dept, change.StaffID, change.Message, now)
		}
		return transition(r, actor, target, change.Message, change.Evidence, now)
	})
	if err != nil {
		return nil, err
	}
	if dept != nil {
		s.attach(ctx, r)
	}
	s.claim(ctx, r, evidenceIDs)

	zap.S().Infow("report status changed",
		"reportId", r.ReportID,
		"status", r.Status,
		"actor", actor.ID,
		"role", actor.Role)
	return r, nil
}

// Assign manually routes a pending report to a department
func (s *Service) Assign(ctx context.Context, id string, actor models.Principal, departmentID, staffID, message string) (*models.Report, error) {
	return s.ChangeStatus(ctx, id, actor, StatusChange{
		Status:       string(models.StatusAssigned),
		Message:      message,
		DepartmentID: departmentID,
		StaffID:      staffID,
	})
}

// AddComment appends an attributed update without changing status. The
// reporter, staff of the owning department and administrators may comment.
func (s *Service) AddComment(ctx context.Context, id string, actor models.Principal, message string) (*models.Report, error) {
	if strings.TrimSpace(message) == "" {
		return nil, badRequest("message is required")
	}
	return s.mutate(ctx, id, func(r *models.Report, now time.Time) error {
		if actor.ID != r.ReportedBy {
			if err := canOperate(actor, r); err != nil {
				return err
			}
		}
		appendUpdate(r, actor, message, "", now)
		return nil
	})
}

// ChangeUrgency re-grades an open report and recomputes its priority
func (s *Service) ChangeUrgency(ctx context.Context, id string, actor models.Principal, urgency string) (*models.Report, error) {
	if strings.TrimSpace(urgency) == "" {
		return nil, badRequest("urgency is required")
	}
	u, ok := models.ParseUrgency(urgency)
	if !ok {
		return nil, badRequest("invalid urgency %q", urgency)
	}
	return s.mutate(ctx, id, func(r *models.Report, now time.Time) error {
		if r.Status.Terminal() {
			return ErrTerminalStatus
		}
		if err := canOperate(actor, r); err != nil {
			return err
		}
		r.Urgency = u
		rescore(r, now)
		return nil
	})
}

// AddFeedback stores the reporter's rating and comment on a resolved report
func (s *Service) AddFeedback(ctx context.Context, id, reporterID string, rating *int, feedback string) (*models.Report, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrBadRating
	}
	return s.mutate(ctx, id, func(r *models.Report, now time.Time) error {
		if r.ReportedBy != reporterID {
			return forbidden("only the reporter may leave feedback")
		}
		if r.Status != models.StatusResolved {
			return ErrNotResolved
		}
		if rating != nil {
			v := *rating
			r.Rating = &v
		}
		if f := strings.TrimSpace(feedback); f != "" {
			r.Feedback = f
		}
		return nil
	})
}

// Delete removes a report. Reporters may withdraw their own report while it
// awaits assignment; administrators may delete any. The removed report is
// returned so its media can be released.
func (s *Service) Delete(ctx context.Context, id string, actor models.Principal) (*models.Report, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	own := actor.ID == r.ReportedBy && r.Status == models.StatusPendingAssignment
	if !actor.Role.IsAdmin() && !own {
		return nil, forbidden("only administrators may delete a report once it is being handled")
	}
	if err := s.Reports.Delete(ctx, r.ID); err != nil {
		return nil, err
	}
	zap.S().Infow("report deleted", "reportId", r.ReportID, "actor", actor.ID)
	return r, nil
}
