package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mocksdb "github.com/linesmerrill/civic-report-api/databases/mocks"
)

func TestStats_StatsHandler(t *testing.T) {
	municipality := primitive.NewObjectID()
	match := bson.M{"municipality": municipality}

	db := &mocksdb.ReportDatabase{}
	db.On("CountDocuments", mock.Anything, match).Return(int64(9), nil)
	db.On("Aggregate", mock.Anything, groupBy(match, "status"), mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(2).(*[]groupCount) = []groupCount{{ID: "resolved", Count: 4}, {ID: "pending_assignment", Count: 5}}
	}).Return(nil)
	db.On("Aggregate", mock.Anything, groupBy(match, "category"), mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(2).(*[]groupCount) = []groupCount{{ID: "Sanitation", Count: 9}}
	}).Return(nil)
	db.On("Aggregate", mock.Anything, averageResolution(match), mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(2).(*[]resolutionAverage) = []resolutionAverage{{Count: 4, Avg: 30.456}}
	}).Return(nil)

	rr := httptest.NewRecorder()
	Stats{DB: db}.StatsHandler(rr, httptest.NewRequest("GET", "/api/v1/stats?municipality="+municipality.Hex(), nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got StatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, StatsResponse{
		Total:              9,
		ByStatus:           map[string]int64{"resolved": 4, "pending_assignment": 5},
		ByCategory:         map[string]int64{"Sanitation": 9},
		Resolved:           4,
		AvgResolutionHours: 30.46,
	}, got)
}

func TestStats_StatsHandlerErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	Stats{DB: &mocksdb.ReportDatabase{}}.StatsHandler(rr, httptest.NewRequest("GET", "/api/v1/stats?municipality=nope", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	db := &mocksdb.ReportDatabase{}
	db.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), errors.New("mocked-error"))
	db.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	rr = httptest.NewRecorder()
	Stats{DB: db}.StatsHandler(rr, httptest.NewRequest("GET", "/api/v1/stats", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
