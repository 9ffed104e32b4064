package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is a report's position in its resolution lifecycle
type Status string

// Report statuses
const (
	StatusPendingAssignment Status = "pending_assignment"
	StatusAssigned          Status = "assigned"
	StatusInProgress        Status = "in_progress"
	StatusResolved          Status = "resolved"
	StatusRejected          Status = "rejected"
)

// Statuses lists every status a report can hold
var Statuses = []Status{
	StatusPendingAssignment,
	StatusAssigned,
	StatusInProgress,
	StatusResolved,
	StatusRejected,
}

// ParseStatus returns the status for s. "acknowledged" is accepted as an
// alias of assigned.
func ParseStatus(s string) (Status, bool) {
	if s == "acknowledged" {
		return StatusAssigned, true
	}
	for _, known := range Statuses {
		if Status(s) == known {
			return known, true
		}
	}
	return "", false
}

// Terminal reports whether no further transition is allowed out of s
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusRejected
}

// AssignmentType records how a report got (or did not get) its department
type AssignmentType string

// Assignment types
const (
	AssignmentAutomatic AssignmentType = "automatic"
	AssignmentManual    AssignmentType = "manual"
	AssignmentPending   AssignmentType = "pending"
)

// MediaRef is an opaque handle returned by the media store
type MediaRef struct {
	URL          string `json:"url" bson:"url"`
	ID           string `json:"id" bson:"id"`
	ResourceType string `json:"resourceType,omitempty" bson:"resourceType,omitempty"`
}

// Upvote is a single citizen's vote on a report
type Upvote struct {
	UserID    string    `json:"userId" bson:"userId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Update is a timestamped, attributed comment on a report. Status is set
// when the entry accompanied a status transition.
type Update struct {
	ID        string    `json:"id" bson:"id"`
	Message   string    `json:"message" bson:"message"`
	ActorID   string    `json:"actorId" bson:"actorId"`
	ActorRole Role      `json:"actorRole" bson:"actorRole"`
	Status    Status    `json:"status,omitempty" bson:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// PriorityBreakdown holds the components that summed to a report's priority
type PriorityBreakdown struct {
	UrgencyScore   float64 `json:"urgencyScore" bson:"urgencyScore"`
	CommunityScore float64 `json:"communityScore" bson:"communityScore"`
	RecencyScore   float64 `json:"recencyScore" bson:"recencyScore"`
	RawScore       float64 `json:"finalScoreUnrounded" bson:"finalScoreUnrounded"`
	FinalScore     float64 `json:"finalScore" bson:"finalScore"`
	AgeDays        float64 `json:"ageDays" bson:"ageDays"`
}

// Resolution is the proof of completion captured when a report is resolved
type Resolution struct {
	EvidenceImage *MediaRef `json:"evidenceImage,omitempty" bson:"evidenceImage,omitempty"`
	Notes         string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CompletedBy   string    `json:"completedBy" bson:"completedBy"`
	CompletedAt   time.Time `json:"completedAt" bson:"completedAt"`
	MaterialsCost float64   `json:"materialsCost,omitempty" bson:"materialsCost,omitempty"`
	LaborHours    float64   `json:"laborHours,omitempty" bson:"laborHours,omitempty"`
}

// Report holds the structure for the reports collection in mongo
type Report struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ReportID string             `json:"reportId" bson:"reportId"`

	// Classification & content
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Category    Category   `json:"category" bson:"category"`
	Urgency     Urgency    `json:"urgency" bson:"urgency"`
	Voice       *MediaRef  `json:"voice,omitempty" bson:"voice,omitempty"`
	Images      []MediaRef `json:"images,omitempty" bson:"images,omitempty"`

	// Location
	Location GeoPoint `json:"location" bson:"location"`
	Address  string   `json:"address" bson:"address"`

	// Engagement
	Upvotes     []Upvote `json:"upvotes" bson:"upvotes"`
	UpvoteCount int      `json:"upvoteCount" bson:"upvoteCount"`
	Updates     []Update `json:"updates" bson:"updates"`

	// Scoring
	Priority          int               `json:"priority" bson:"priority"`
	PriorityBreakdown PriorityBreakdown `json:"priorityBreakdown" bson:"priorityBreakdown"`

	// Ownership
	ReportedBy         string              `json:"reportedBy" bson:"reportedBy"`
	Municipality       primitive.ObjectID  `json:"municipality" bson:"municipality"`
	JurisdictionMethod string              `json:"jurisdictionMethod" bson:"jurisdictionMethod"`
	Department         *primitive.ObjectID `json:"department" bson:"department"`
	AssignedTo         string              `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`

	// Lifecycle
	Status              Status         `json:"status" bson:"status"`
	AssignmentType      AssignmentType `json:"assignmentType" bson:"assignmentType"`
	CreatedAt           time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt" bson:"updatedAt"`
	ResolvedAt          *time.Time     `json:"resolvedAt" bson:"resolvedAt"`
	ResolutionTimeHours *float64       `json:"resolutionTime" bson:"resolutionTime"`
	Resolution          *Resolution    `json:"resolution,omitempty" bson:"resolution,omitempty"`
	Rating              *int           `json:"rating,omitempty" bson:"rating,omitempty"`
	Feedback            string         `json:"feedback,omitempty" bson:"feedback,omitempty"`

	// Version guards read-modify-write cycles; every successful save bumps it.
	Version int64 `json:"__v" bson:"__v"`
}

// HasVoted reports whether userID is already among the report's upvotes
func (r *Report) HasVoted(userID string) bool {
	for _, u := range r.Upvotes {
		if u.UserID == userID {
			return true
		}
	}
	return false
}
