package handlers

// go generate: mockery --name ReportService

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/linesmerrill/civic-report-api/config"
	"github.com/linesmerrill/civic-report-api/databases"
	"github.com/linesmerrill/civic-report-api/media"
	"github.com/linesmerrill/civic-report-api/models"
	"github.com/linesmerrill/civic-report-api/triage"
)

const (
	defaultNearbyRadius = 5000
	maxNearbyRadius     = 50000
)

// ReportService is the triage engine as seen by the report handlers
type ReportService interface {
	Create(ctx context.Context, in triage.CreateInput) (*models.Report, error)
	Get(ctx context.Context, id string) (*models.Report, error)
	ChangeStatus(ctx context.Context, id string, actor models.Principal, change triage.StatusChange) (*models.Report, error)
	Assign(ctx context.Context, id string, actor models.Principal, departmentID, staffID, message string) (*models.Report, error)
	AddComment(ctx context.Context, id string, actor models.Principal, message string) (*models.Report, error)
	ChangeUrgency(ctx context.Context, id string, actor models.Principal, urgency string) (*models.Report, error)
	AddVote(ctx context.Context, id, voterID string) (triage.VoteResult, error)
	RemoveVote(ctx context.Context, id, voterID string) (triage.VoteResult, error)
	AddFeedback(ctx context.Context, id, reporterID string, rating *int, feedback string) (*models.Report, error)
	Delete(ctx context.Context, id string, actor models.Principal) (*models.Report, error)
}

// Report handles report-related requests
type Report struct {
	Service ReportService
	DB      databases.ReportDatabase
	Media   media.Store
	Uploads databases.UploadDatabase
}

type location struct {
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
}

type createReportRequest struct {
	Title       string            `json:"title"`
	Category    string            `json:"category"`
	Urgency     string            `json:"urgency"`
	Description string            `json:"description"`
	Voice       *models.MediaRef  `json:"voiceRef"`
	Images      []models.MediaRef `json:"imageRefs"`
	Location    location          `json:"location"`
	Address     string            `json:"address"`
}

func (c createReportRequest) mediaIDs() []string {
	var ids []string
	for _, ref := range c.Images {
		ids = append(ids, ref.ID)
	}
	if c.Voice != nil {
		ids = append(ids, c.Voice.ID)
	}
	return ids
}

// CreateReportHandler files a new complaint for the caller. When the create
// fails past validation, the caller's own unattached uploads named in the
// request are released so they are not orphaned.
func (re Report) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req createReportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	report, err := re.Service.Create(r.Context(), triage.CreateInput{
		ReporterID:  p.ID,
		Title:       req.Title,
		Category:    req.Category,
		Urgency:     req.Urgency,
		Description: req.Description,
		Voice:       req.Voice,
		Images:      req.Images,
		Longitude:   req.Location.Longitude,
		Latitude:    req.Location.Latitude,
		Address:     req.Address,
	})
	if err != nil {
		if releasable(err) {
			if n := re.releaseUnclaimed(r.Context(), p.ID, req.mediaIDs()); n > 0 {
				zap.S().Infow("released media of rejected report", "count", n, "reporter", p.ID)
			}
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

// releaseUnclaimed releases the uploads among ids that ownerID stored and no
// report holds
func (re Report) releaseUnclaimed(ctx context.Context, ownerID string, ids []string) int {
	if re.Uploads == nil || len(ids) == 0 {
		return 0
	}
	uploads, err := re.Uploads.FindUnclaimed(ctx, ownerID, ids)
	if err != nil {
		zap.S().Errorw("failed to look up uploads", "reporter", ownerID, "error", err)
		return 0
	}
	return releaseUploads(ctx, re.Media, re.Uploads, uploads)
}

// ReportByIDHandler returns a report by ObjectID or human readable ID
func (re Report) ReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	report, err := re.Service.Get(r.Context(), mux.Vars(r)["report_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ReportsHandler lists reports in triage order, most urgent first
func (re Report) ReportsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := reportFilter(r)
	if err != nil {
		config.ErrorStatus("invalid query parameter", http.StatusBadRequest, w, err)
		return
	}

	reports, err := re.DB.List(r.Context(), filter, getLimit(r), getPage(1, r))
	if err != nil {
		config.ErrorStatus("failed to list reports", http.StatusInternalServerError, w, err)
		return
	}
	// the frontend expects [] rather than null
	if reports == nil {
		reports = []models.Report{}
	}
	writeJSON(w, http.StatusOK, reports)
}

func reportFilter(r *http.Request) (bson.M, error) {
	q := r.URL.Query()
	filter := bson.M{}
	if s := q.Get("status"); s != "" {
		status, ok := models.ParseStatus(s)
		if !ok {
			return nil, fmt.Errorf("invalid status %q", s)
		}
		filter["status"] = status
	}
	if s := q.Get("category"); s != "" {
		category, ok := models.ParseCategory(s)
		if !ok {
			return nil, fmt.Errorf("invalid category %q", s)
		}
		filter["category"] = category
	}
	for _, key := range []string{"municipality", "department"} {
		if s := q.Get(key); s != "" {
			oid, err := primitive.ObjectIDFromHex(s)
			if err != nil {
				return nil, err
			}
			filter[key] = oid
		}
	}
	if s := strings.TrimSpace(q.Get("q")); s != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
		filter["$or"] = bson.A{bson.M{"title": pattern}, bson.M{"description": pattern}}
	}
	return filter, nil
}

// NearbyReportsHandler lists reports nearest to lng/lat within radius meters
func (re Report) NearbyReportsHandler(w http.ResponseWriter, r *http.Request) {
	point, err := queryPoint(r)
	if err != nil {
		config.ErrorStatus("invalid location", http.StatusBadRequest, w, err)
		return
	}
	radius := float64(defaultNearbyRadius)
	if s := r.URL.Query().Get("radius"); s != "" {
		if radius, err = strconv.ParseFloat(s, 64); err != nil || radius <= 0 {
			config.ErrorStatus("invalid radius", http.StatusBadRequest, w, err)
			return
		}
	}
	if radius > maxNearbyRadius {
		radius = maxNearbyRadius
	}

	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry":    point,
				"$maxDistance": radius,
			},
		},
	}
	reports, err := re.DB.Find(r.Context(), filter, options.Find().SetLimit(int64(getLimit(r))))
	if err != nil {
		config.ErrorStatus("failed to find nearby reports", http.StatusInternalServerError, w, err)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	writeJSON(w, http.StatusOK, reports)
}

func queryPoint(r *http.Request) (models.GeoPoint, error) {
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		return models.GeoPoint{}, err
	}
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return models.GeoPoint{}, err
	}
	if err := models.ValidateCoordinates(lng, lat); err != nil {
		return models.GeoPoint{}, err
	}
	return models.NewGeoPoint(lng, lat), nil
}

// DeleteReportHandler removes a report and releases the media attached to it
// through the upload ledger
func (re Report) DeleteReportHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	report, err := re.Service.Delete(r.Context(), mux.Vars(r)["report_id"], p)
	if err != nil {
		writeError(w, err)
		return
	}
	released := 0
	if re.Uploads != nil {
		uploads, err := re.Uploads.FindByReport(r.Context(), report.ID)
		if err != nil {
			zap.S().Errorw("failed to look up report uploads", "reportId", report.ReportID, "error", err)
		} else {
			released = releaseUploads(r.Context(), re.Media, re.Uploads, uploads)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "report deleted",
		"reportId":      report.ReportID,
		"releasedMedia": released,
	})
}
