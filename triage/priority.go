package triage

import (
	"math"
	"time"

	"github.com/linesmerrill/civic-report-api/models"
)

const (
	minScore = 1.0
	maxScore = 5.0
	day      = 24 * time.Hour
)

var urgencyScores = map[models.Urgency]float64{
	models.UrgencyLow:      1.5,
	models.UrgencyMedium:   2.5,
	models.UrgencyHigh:     4.0,
	models.UrgencyCritical: 5.0,
}

// communityTiers are checked low to high; the first tier whose upper bound
// exceeds the count wins
var communityTiers = []struct {
	below int
	boost float64
}{
	{below: 1, boost: 0},
	{below: 5, boost: 0.2},
	{below: 10, boost: 0.5},
	{below: 20, boost: 1.0},
	{below: 50, boost: 1.5},
}

const topTierBoost = 2.0

func urgencyScore(u models.Urgency) float64 {
	if s, ok := urgencyScores[u]; ok {
		return s
	}
	return urgencyScores[models.UrgencyMedium]
}

func communityBoost(upvotes int) float64 {
	for _, tier := range communityTiers {
		if upvotes < tier.below {
			return tier.boost
		}
	}
	return topTierBoost
}

func recencyBoost(age time.Duration) float64 {
	switch {
	case age < day:
		return 0.2
	case age < 7*day:
		return 0.1
	}
	return 0
}

// Score computes a report's priority in [1,5] and the breakdown behind it.
// It is only ever called when urgency or votes change, so the recency term
// reflects the age at the last mutation rather than the current age.
func Score(urgency models.Urgency, upvotes int, age time.Duration) (int, models.PriorityBreakdown) {
	if age < 0 {
		age = 0
	}
	b := models.PriorityBreakdown{
		UrgencyScore:   urgencyScore(urgency),
		CommunityScore: communityBoost(upvotes),
		RecencyScore:   recencyBoost(age),
		AgeDays:        math.Round(age.Hours()/24*100) / 100,
	}
	raw := b.UrgencyScore + b.CommunityScore + b.RecencyScore
	raw = math.Max(minScore, math.Min(maxScore, raw))

	b.RawScore = raw
	b.FinalScore = math.Round(raw*10) / 10
	// half-up; the epsilon absorbs float noise such as 3.4999999
	return int(math.Floor(raw + 0.5 + 1e-9)), b
}

// rescore refreshes the report's stored priority as of now
func rescore(r *models.Report, now time.Time) {
	r.Priority, r.PriorityBreakdown = Score(r.Urgency, r.UpvoteCount, now.Sub(r.CreatedAt))
}
