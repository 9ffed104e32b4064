package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/civic-report-api/triage"
)

var a App

func executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}

func TestUnknownRoute(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestHealthCheckRoute(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), "alive") {
		t.Errorf("Expected 'alive' in the reponse. Got '%s'", response.Body.String())
	}
}

func TestApp_ReportsUnauthorized(t *testing.T) {
	a.Router = a.New()
	for _, route := range []struct{ method, path string }{
		{"GET", "/api/v1/reports"},
		{"POST", "/api/v1/reports"},
		{"GET", "/api/v1/reports/INFR-00001"},
		{"POST", "/api/v1/reports/INFR-00001/upvote"},
		{"POST", "/api/v1/reports/INFR-00001/assign"},
		{"GET", "/api/v1/stats"},
	} {
		req, _ := http.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer abc123")
		response := executeRequest(req)

		checkResponseCode(t, http.StatusUnauthorized, response.Code)
	}
}

func TestApp_RequestIDHeader(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/api/v1/reports", nil)
	response := executeRequest(req)

	assert.NotEmpty(t, response.Header().Get("X-Request-ID"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{triage.ErrNotFound, http.StatusNotFound},
		{triage.ErrForbidden, http.StatusForbidden},
		{triage.ErrAlreadyVoted, http.StatusConflict},
		{triage.ErrReportResolved, http.StatusConflict},
		{triage.ErrTerminalStatus, http.StatusConflict},
		{triage.ErrConcurrentUpdate, http.StatusConflict},
		{triage.ErrBadRating, http.StatusBadRequest},
		{triage.ErrInvalidStatus, http.StatusUnprocessableEntity},
		{triage.ErrNotResolved, http.StatusUnprocessableEntity},
		{triage.ErrNoJurisdiction, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", triage.ErrNotFound), http.StatusNotFound},
		{errors.New("mongo exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, fmt.Errorf("failed to load report INFR-00001: %w", errors.New("server selection error: context deadline exceeded")))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"Error":"internal error"`)
	assert.NotContains(t, rr.Body.String(), "server selection")
	assert.NotContains(t, rr.Body.String(), "INFR-00001")

	rr = httptest.NewRecorder()
	writeError(rr, triage.ErrAlreadyVoted)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "you have already upvoted this report")
}
