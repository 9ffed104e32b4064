package triage

import (
	"context"
	"strings"
	"time"

	"github.com/linesmerrill/civic-report-api/models"
)

// VoteResult is the engagement state after a vote change
type VoteResult struct {
	UpvoteCount int `json:"upvoteCount"`
	Priority    int `json:"priority"`
}

func addVote(r *models.Report, voterID string, now time.Time) error {
	if r.HasVoted(voterID) {
		return ErrAlreadyVoted
	}
	if r.Status == models.StatusResolved {
		return ErrReportResolved
	}
	r.Upvotes = append(r.Upvotes, models.Upvote{UserID: voterID, CreatedAt: now})
	r.UpvoteCount = len(r.Upvotes)
	rescore(r, now)
	return nil
}

// removeVote always refreshes count and priority, voter present or not
func removeVote(r *models.Report, voterID string, now time.Time) {
	kept := make([]models.Upvote, 0, len(r.Upvotes))
	for _, u := range r.Upvotes {
		if u.UserID != voterID {
			kept = append(kept, u)
		}
	}
	r.Upvotes = kept
	r.UpvoteCount = len(kept)
	rescore(r, now)
}

// AddVote records voterID's upvote and rescores the report
func (s *Service) AddVote(ctx context.Context, id, voterID string) (VoteResult, error) {
	if strings.TrimSpace(voterID) == "" {
		return VoteResult{}, badRequest("voter is required")
	}
	r, err := s.mutate(ctx, id, func(r *models.Report, now time.Time) error {
		return addVote(r, voterID, now)
	})
	if err != nil {
		return VoteResult{}, err
	}
	return VoteResult{UpvoteCount: r.UpvoteCount, Priority: r.Priority}, nil
}

// RemoveVote withdraws voterID's upvote. Removing a vote that was never cast
// is not an error.
func (s *Service) RemoveVote(ctx context.Context, id, voterID string) (VoteResult, error) {
	if strings.TrimSpace(voterID) == "" {
		return VoteResult{}, badRequest("voter is required")
	}
	r, err := s.mutate(ctx, id, func(r *models.Report, now time.Time) error {
		removeVote(r, voterID, now)
		return nil
	})
	if err != nil {
		return VoteResult{}, err
	}
	return VoteResult{UpvoteCount: r.UpvoteCount, Priority: r.Priority}, nil
}
