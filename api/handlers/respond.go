package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/linesmerrill/civic-report-api/api"
	"github.com/linesmerrill/civic-report-api/config"
	"github.com/linesmerrill/civic-report-api/models"
	"github.com/linesmerrill/civic-report-api/triage"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// statusFor maps a triage failure to its HTTP status
func statusFor(err error) int {
	switch triage.KindOf(err) {
	case triage.KindBadRequest:
		return http.StatusBadRequest
	case triage.KindNotFound:
		return http.StatusNotFound
	case triage.KindForbidden:
		return http.StatusForbidden
	case triage.KindConflict:
		return http.StatusConflict
	case triage.KindInvalidStatus, triage.KindNotResolved, triage.KindNoJurisdiction:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// errInternal stands in for store and driver failures in response bodies
var errInternal = errors.New("internal error")

func writeError(w http.ResponseWriter, err error) {
	if triage.KindOf(err) == triage.KindInternal {
		zap.S().Errorw("request failed", "error", err)
		err = errInternal
	}
	config.ErrorStatus(triage.MessageOf(err), statusFor(err), w, err)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return false
	}
	return true
}

// principal returns the caller set by the auth middleware, answering 401 when
// there is none
func principal(w http.ResponseWriter, r *http.Request) (models.Principal, bool) {
	p, ok := api.PrincipalFrom(r.Context())
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, errors.New("no authenticated principal"))
	}
	return p, ok
}

func getPage(Page int, r *http.Request) int {
	if r.URL.Query().Get("page") == "" {
		return Page
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		zap.S().Errorf("error parsing page number: %v", err)
		return Page
	}
	if page < 1 {
		zap.S().Warnf("cannot process page number less than 1. Got: %v", page)
		return 1
	}
	return page
}

func getLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
