package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/civic-report-api/models"
	"github.com/linesmerrill/civic-report-api/triage"
)

type evidenceRequest struct {
	Image         *models.MediaRef `json:"image"`
	Notes         string           `json:"notes"`
	MaterialsCost float64          `json:"materialsCost"`
	LaborHours    float64          `json:"laborHours"`
}

type statusRequest struct {
	Status       string           `json:"status"`
	Message      string           `json:"message"`
	Evidence     *evidenceRequest `json:"evidence"`
	DepartmentID string           `json:"departmentId"`
	StaffID      string           `json:"staffId"`
}

type assignRequest struct {
	DepartmentID string `json:"departmentId"`
	StaffID      string `json:"staffId"`
	Message      string `json:"message"`
}

type feedbackRequest struct {
	Rating   *int   `json:"rating"`
	Feedback string `json:"feedback"`
}

// UpdateStatusHandler moves a report along its lifecycle
func (re Report) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	change := triage.StatusChange{
		Status:       req.Status,
		Message:      req.Message,
		DepartmentID: req.DepartmentID,
		StaffID:      req.StaffID,
	}
	if ev := req.Evidence; ev != nil {
		change.Evidence = &triage.Evidence{
			Image:         ev.Image,
			Notes:         ev.Notes,
			MaterialsCost: ev.MaterialsCost,
			LaborHours:    ev.LaborHours,
		}
	}

	report, err := re.Service.ChangeStatus(r.Context(), mux.Vars(r)["report_id"], p, change)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// AssignHandler routes a pending report to a department by hand
func (re Report) AssignHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req assignRequest
	if !decodeBody(w, r, &req) {
		return
	}
	report, err := re.Service.Assign(r.Context(), mux.Vars(r)["report_id"], p, req.DepartmentID, req.StaffID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// CommentHandler appends an update to a report without changing its status
func (re Report) CommentHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	report, err := re.Service.AddComment(r.Context(), mux.Vars(r)["report_id"], p, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

// UrgencyHandler changes a report's urgency and rescores it
func (re Report) UrgencyHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req struct {
		Urgency string `json:"urgency"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	report, err := re.Service.ChangeUrgency(r.Context(), mux.Vars(r)["report_id"], p, req.Urgency)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// UpvoteHandler records the caller's upvote
func (re Report) UpvoteHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	res, err := re.Service.AddVote(r.Context(), mux.Vars(r)["report_id"], p.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// RemoveUpvoteHandler withdraws the caller's upvote, if any
func (re Report) RemoveUpvoteHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	res, err := re.Service.RemoveVote(r.Context(), mux.Vars(r)["report_id"], p.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// FeedbackHandler stores the reporter's rating of a resolved report
func (re Report) FeedbackHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req feedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	report, err := re.Service.AddFeedback(r.Context(), mux.Vars(r)["report_id"], p.ID, req.Rating, req.Feedback)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
