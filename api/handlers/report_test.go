package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/civic-report-api/api"
	"github.com/linesmerrill/civic-report-api/api/handlers"
	"github.com/linesmerrill/civic-report-api/api/handlers/mocks"
	mocksdb "github.com/linesmerrill/civic-report-api/databases/mocks"
	mocksmedia "github.com/linesmerrill/civic-report-api/media/mocks"
	"github.com/linesmerrill/civic-report-api/models"
	"github.com/linesmerrill/civic-report-api/triage"
)

var citizen = models.Principal{ID: "citizen-1", Role: models.RoleCitizen}

func authed(req *http.Request, p models.Principal) *http.Request {
	return req.WithContext(api.WithPrincipal(req.Context(), p))
}

func errorBody(message string, err error) string {
	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: err.Error()}})
	return string(b)
}

const createBody = `{
	"title": "Pothole on 5th",
	"category": "Infrastructure",
	"urgency": "high",
	"description": "deep",
	"voiceRef": {"url": "https://cdn/voice.mp3", "id": "voice-1"},
	"imageRefs": [{"url": "https://cdn/a.jpg", "id": "img-1"}],
	"location": {"longitude": 77.59, "latitude": 12.97},
	"address": "5th main"
}`

func TestReport_CreateReportHandler(t *testing.T) {
	svc := &mocks.ReportService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in triage.CreateInput) bool {
		return in.ReporterID == "citizen-1" && in.Title == "Pothole on 5th" &&
			in.Category == "Infrastructure" && in.Urgency == "high" &&
			in.Voice != nil && in.Voice.ID == "voice-1" && len(in.Images) == 1 &&
			*in.Longitude == 77.59 && *in.Latitude == 12.97
	})).Return(&models.Report{ReportID: "INFR-00042", Status: models.StatusAssigned, Priority: 4}, nil)
	store := &mocksmedia.Store{}

	req := authed(httptest.NewRequest("POST", "/api/v1/reports", strings.NewReader(createBody)), citizen)
	rr := httptest.NewRecorder()
	handlers.Report{Service: svc, Media: store}.CreateReportHandler(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var got models.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "INFR-00042", got.ReportID)
	assert.Equal(t, 4, got.Priority)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReport_CreateReportHandlerReleasesMediaOnFailure(t *testing.T) {
	svc := &mocks.ReportService{}
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, triage.ErrNoJurisdiction)
	uploads := &mocksdb.UploadDatabase{}
	uploads.On("FindUnclaimed", mock.Anything, "citizen-1", []string{"img-1", "voice-1"}).Return([]models.Upload{
		{ID: "img-1", URL: "https://cdn/a.jpg", OwnerID: "citizen-1"},
		{ID: "voice-1", URL: "https://cdn/voice.mp3", ResourceType: "video", OwnerID: "citizen-1"},
	}, nil)
	uploads.On("Delete", mock.Anything, "img-1").Return(nil)
	uploads.On("Delete", mock.Anything, "voice-1").Return(nil)
	store := &mocksmedia.Store{}
	store.On("Delete", mock.Anything, models.MediaRef{URL: "https://cdn/a.jpg", ID: "img-1"}).Return(nil)
	store.On("Delete", mock.Anything, models.MediaRef{URL: "https://cdn/voice.mp3", ID: "voice-1", ResourceType: "video"}).Return(nil)

	req := authed(httptest.NewRequest("POST", "/api/v1/reports", strings.NewReader(createBody)), citizen)
	rr := httptest.NewRecorder()
	handlers.Report{Service: svc, Media: store, Uploads: uploads}.CreateReportHandler(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, errorBody("no municipality found for this location", triage.ErrNoJurisdiction), rr.Body.String())
	store.AssertExpectations(t)
	uploads.AssertExpectations(t)
}

func TestReport_CreateReportHandlerOnlyReleasesOwnUploads(t *testing.T) {
	svc := &mocks.ReportService{}
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	uploads := &mocksdb.UploadDatabase{}
	uploads.On("FindUnclaimed", mock.Anything, "citizen-1", []string{"img-1", "voice-1"}).Return([]models.Upload{}, nil)
	store := &mocksmedia.Store{}

	req := authed(httptest.NewRequest("POST", "/api/v1/reports", strings.NewReader(createBody)), citizen)
	rr := httptest.NewRecorder()
	handlers.Report{Service: svc, Media: store, Uploads: uploads}.CreateReportHandler(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	uploads.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReport_CreateReportHandlerKeepsMediaOnRejectedInput(t *testing.T) {
	const foreign = `{
		"title": "Pothole",
		"category": "NotACategory",
		"description": "deep",
		"imageRefs": [{"url": "https://cdn/x.jpg", "id": "civic-reports/evidence/someone-elses"}],
		"location": {"longitude": 77.59, "latitude": 12.97}
	}`
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", &triage.Error{Kind: triage.KindBadRequest, Message: `invalid category "NotACategory"`}, http.StatusBadRequest},
		{"media of another user", triage.ErrForbidden, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.ReportService{}
			svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)
			uploads := &mocksdb.UploadDatabase{}
			store := &mocksmedia.Store{}

			req := authed(httptest.NewRequest("POST", "/api/v1/reports", strings.NewReader(foreign)), citizen)
			rr := httptest.NewRecorder()
			handlers.Report{Service: svc, Media: store, Uploads: uploads}.CreateReportHandler(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			uploads.AssertNotCalled(t, "FindUnclaimed", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReport_CreateReportHandlerBadBody(t *testing.T) {
	req := authed(httptest.NewRequest("POST", "/api/v1/reports", strings.NewReader("{")), citizen)
	rr := httptest.NewRecorder()
	handlers.Report{Service: &mocks.ReportService{}}.CreateReportHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to decode request body")
}

func TestReport_CreateReportHandlerNoPrincipal(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/reports", strings.NewReader(createBody))
	rr := httptest.NewRecorder()
	handlers.Report{Service: &mocks.ReportService{}}.CreateReportHandler(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestReport_ReportByIDHandler(t *testing.T) {
	svc := &mocks.ReportService{}
	svc.On("Get", mock.Anything, "INFR-00042").Return(&models.Report{ReportID: "INFR-00042"}, nil)
	svc.On("Get", mock.Anything, "INFR-00043").Return(nil, triage.ErrNotFound)
	h := handlers.Report{Service: svc}

	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/v1/reports/INFR-00042", nil), map[string]string{"report_id": "INFR-00042"})
	rr := httptest.NewRecorder()
	h.ReportByIDHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"reportId":"INFR-00042"`)

	req = mux.SetURLVars(httptest.NewRequest("GET", "/api/v1/reports/INFR-00043", nil), map[string]string{"report_id": "INFR-00043"})
	rr = httptest.NewRecorder()
	h.ReportByIDHandler(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, errorBody("report not found", triage.ErrNotFound), rr.Body.String())
}

func TestReport_ReportsHandlerFilters(t *testing.T) {
	municipality := primitive.NewObjectID()
	db := &mocksdb.ReportDatabase{}
	db.On("List", mock.Anything, mock.MatchedBy(func(f interface{}) bool {
		m := f.(bson.M)
		or, _ := m["$or"].(bson.A)
		return m["status"] == models.StatusInProgress &&
			m["category"] == models.CategoryWaterSupply &&
			m["municipality"] == municipality &&
			len(or) == 2
	}), 10, 2).Return(nil, nil)

	req := httptest.NewRequest("GET", "/api/v1/reports?status=in_progress&category=watersupply&municipality="+municipality.Hex()+"&q=leak&limit=10&page=2", nil)
	rr := httptest.NewRecorder()
	handlers.Report{DB: db}.ReportsHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
	db.AssertExpectations(t)
}

func TestReport_ReportsHandlerDefaults(t *testing.T) {
	db := &mocksdb.ReportDatabase{}
	db.On("List", mock.Anything, bson.M{}, 20, 1).Return([]models.Report{{ReportID: "SANI-00001"}}, nil)

	rr := httptest.NewRecorder()
	handlers.Report{DB: db}.ReportsHandler(rr, httptest.NewRequest("GET", "/api/v1/reports?limit=0&page=-3", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "SANI-00001")
}

func TestReport_ReportsHandlerInvalidQuery(t *testing.T) {
	for _, q := range []string{"status=closed", "category=weather", "department=xyz"} {
		rr := httptest.NewRecorder()
		handlers.Report{DB: &mocksdb.ReportDatabase{}}.ReportsHandler(rr, httptest.NewRequest("GET", "/api/v1/reports?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
}

func TestReport_ReportsHandlerDBError(t *testing.T) {
	db := &mocksdb.ReportDatabase{}
	db.On("List", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	rr := httptest.NewRecorder()
	handlers.Report{DB: db}.ReportsHandler(rr, httptest.NewRequest("GET", "/api/v1/reports", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, errorBody("failed to list reports", errors.New("mocked-error")), rr.Body.String())
}

func TestReport_NearbyReportsHandler(t *testing.T) {
	db := &mocksdb.ReportDatabase{}
	db.On("Find", mock.Anything, bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry":    models.NewGeoPoint(77.59, 12.97),
				"$maxDistance": float64(50000),
			},
		},
	}, mock.Anything).Return([]models.Report{{ReportID: "TRAF-00003"}}, nil)

	rr := httptest.NewRecorder()
	handlers.Report{DB: db}.NearbyReportsHandler(rr, httptest.NewRequest("GET", "/api/v1/reports/nearby?lng=77.59&lat=12.97&radius=90000", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "TRAF-00003")
	db.AssertExpectations(t)
}

func TestReport_NearbyReportsHandlerInvalid(t *testing.T) {
	for _, q := range []string{"lng=77.59", "lng=200&lat=10", "lng=1&lat=1&radius=-5", "lng=a&lat=b"} {
		rr := httptest.NewRecorder()
		handlers.Report{DB: &mocksdb.ReportDatabase{}}.NearbyReportsHandler(rr, httptest.NewRequest("GET", "/api/v1/reports/nearby?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
}

func TestReport_DeleteReportHandler(t *testing.T) {
	id := primitive.NewObjectID()
	svc := &mocks.ReportService{}
	svc.On("Delete", mock.Anything, "SANI-00007", citizen).Return(&models.Report{
		ID:       id,
		ReportID: "SANI-00007",
		Voice:    &models.MediaRef{URL: "https://cdn/v.mp3", ID: "v1"},
		Images:   []models.MediaRef{{URL: "https://cdn/i.jpg", ID: "i1"}, {URL: "https://cdn/x.jpg", ID: "not-mine"}},
	}, nil)
	uploads := &mocksdb.UploadDatabase{}
	uploads.On("FindByReport", mock.Anything, id).Return([]models.Upload{
		{ID: "v1", URL: "https://cdn/v.mp3", ResourceType: "video", Report: &id},
		{ID: "i1", URL: "https://cdn/i.jpg", Report: &id},
	}, nil)
	uploads.On("Delete", mock.Anything, "v1").Return(nil)
	store := &mocksmedia.Store{}
	store.On("Delete", mock.Anything, models.MediaRef{URL: "https://cdn/v.mp3", ID: "v1", ResourceType: "video"}).Return(nil)
	store.On("Delete", mock.Anything, models.MediaRef{URL: "https://cdn/i.jpg", ID: "i1"}).Return(errors.New("cdn down"))

	req := authed(httptest.NewRequest("DELETE", "/api/v1/reports/SANI-00007", nil), citizen)
	req = mux.SetURLVars(req, map[string]string{"report_id": "SANI-00007"})
	rr := httptest.NewRecorder()
	handlers.Report{Service: svc, Media: store, Uploads: uploads}.DeleteReportHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["releasedMedia"])
	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "Delete", 2)
	uploads.AssertExpectations(t)
	uploads.AssertNotCalled(t, "Delete", mock.Anything, "i1")
}

func TestReport_DeleteReportHandlerForbidden(t *testing.T) {
	svc := &mocks.ReportService{}
	svc.On("Delete", mock.Anything, "SANI-00007", citizen).Return(nil, triage.ErrForbidden)
	store := &mocksmedia.Store{}

	req := authed(httptest.NewRequest("DELETE", "/api/v1/reports/SANI-00007", nil), citizen)
	req = mux.SetURLVars(req, map[string]string{"report_id": "SANI-00007"})
	rr := httptest.NewRecorder()
	handlers.Report{Service: svc, Media: store}.DeleteReportHandler(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
