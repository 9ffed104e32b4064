package triage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/civic-report-api/models"
)

func TestScore_CriticalFreshReportClamps(t *testing.T) {
	priority, b := Score(models.UrgencyCritical, 0, 0)

	assert.Equal(t, 5, priority)
	assert.Equal(t, 5.0, b.UrgencyScore)
	assert.Equal(t, 0.0, b.CommunityScore)
	assert.Equal(t, 0.2, b.RecencyScore)
	assert.Equal(t, 5.0, b.RawScore)
	assert.Equal(t, 5.0, b.FinalScore)
}

func TestScore_LowOldReportWithVotes(t *testing.T) {
	priority, b := Score(models.UrgencyLow, 7, 10*day)

	assert.Equal(t, 2, priority)
	assert.Equal(t, 1.5, b.UrgencyScore)
	assert.Equal(t, 0.5, b.CommunityScore)
	assert.Equal(t, 0.0, b.RecencyScore)
	assert.InDelta(t, 2.0, b.FinalScore, 1e-9)
	assert.InDelta(t, 10.0, b.AgeDays, 1e-9)
}

func TestScore_CommunityTiers(t *testing.T) {
	tests := []struct {
		upvotes int
		boost   float64
	}{
		{0, 0}, {1, 0.2}, {4, 0.2}, {5, 0.5}, {9, 0.5}, {10, 1.0},
		{19, 1.0}, {20, 1.5}, {49, 1.5}, {50, 2.0}, {500, 2.0},
	}
	for _, tt := range tests {
		_, b := Score(models.UrgencyLow, tt.upvotes, 30*day)
		assert.Equal(t, tt.boost, b.CommunityScore, "upvotes=%d", tt.upvotes)
	}
}

func TestScore_Recency(t *testing.T) {
	tests := []struct {
		age   time.Duration
		boost float64
	}{
		{0, 0.2},
		{23 * time.Hour, 0.2},
		{day, 0.1},
		{7*day - time.Minute, 0.1},
		{7 * day, 0},
		{90 * day, 0},
		{-time.Hour, 0.2},
	}
	for _, tt := range tests {
		_, b := Score(models.UrgencyMedium, 0, tt.age)
		assert.Equal(t, tt.boost, b.RecencyScore, "age=%s", tt.age)
	}
}

func TestScore_UnknownUrgencyDefaultsToMedium(t *testing.T) {
	for _, u := range []models.Urgency{"", "severe"} {
		_, b := Score(u, 0, 30*day)
		assert.Equal(t, 2.5, b.UrgencyScore)
	}
}

func TestScore_RoundsHalfUp(t *testing.T) {
	// 2.5 exactly
	priority, b := Score(models.UrgencyMedium, 0, 30*day)
	assert.Equal(t, 3, priority)
	assert.Equal(t, 2.5, b.FinalScore)

	// 1.5 exactly
	priority, _ = Score(models.UrgencyLow, 0, 30*day)
	assert.Equal(t, 2, priority)

	// 4.0 + 0.2 + 0.1
	priority, b = Score(models.UrgencyHigh, 1, 3*day)
	assert.Equal(t, 4, priority)
	assert.InDelta(t, 4.3, b.FinalScore, 1e-9)
}

func TestScore_AlwaysInRange(t *testing.T) {
	urgencies := []models.Urgency{models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh, models.UrgencyCritical, ""}
	ages := []time.Duration{0, 12 * time.Hour, day, 3 * day, 7 * day, 365 * day}
	for _, u := range urgencies {
		for _, age := range ages {
			for votes := 0; votes <= 120; votes++ {
				priority, b := Score(u, votes, age)
				assert.GreaterOrEqual(t, priority, 1)
				assert.LessOrEqual(t, priority, 5)
				assert.GreaterOrEqual(t, b.FinalScore, 1.0)
				assert.LessOrEqual(t, b.FinalScore, 5.0)
			}
		}
	}
}

func TestScore_NonDecreasingInUpvotes(t *testing.T) {
	urgencies := []models.Urgency{models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh, models.UrgencyCritical}
	for _, u := range urgencies {
		for _, age := range []time.Duration{0, 2 * day, 30 * day} {
			prev, prevB := Score(u, 0, age)
			for votes := 1; votes <= 100; votes++ {
				priority, b := Score(u, votes, age)
				assert.GreaterOrEqual(t, priority, prev)
				assert.GreaterOrEqual(t, b.RawScore, prevB.RawScore)
				prev, prevB = priority, b
			}
		}
	}
}
