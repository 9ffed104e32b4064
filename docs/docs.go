// Package docs Civic Report API.
//
// Documentation of the Civic Report triage API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//     - bearer
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/civic-report-api/api/handlers"
	"github.com/linesmerrill/civic-report-api/models"
	"github.com/linesmerrill/civic-report-api/triage"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/v1/reports/{report_id} reports reportByID
// Gets a single report by ObjectID or report ID (e.g. INFR-00042).
// responses:
//   200: reportResponse
//   404: errorResponse

// swagger:route POST /api/v1/reports reports createReport
// Files a new report. It is routed to the owning municipality's department
// for its category, or left pending assignment.
// responses:
//   201: reportResponse
//   400: errorResponse
//   422: errorResponse

// A single report
// swagger:response reportResponse
type reportResponseWrapper struct {
	// in:body
	Body models.Report
}

// swagger:route POST /api/v1/reports/{report_id}/upvote reports upvoteReport
// Upvotes a report once per citizen.
// responses:
//   200: voteResponse
//   409: errorResponse

// The report's upvote count and priority after the vote
// swagger:response voteResponse
type voteResponseWrapper struct {
	// in:body
	Body triage.VoteResult
}

// swagger:route GET /api/v1/stats stats reportStats
// Counts reports by status and category.
// responses:
//   200: statsResponse

// Report statistics
// swagger:response statsResponse
type statsResponseWrapper struct {
	// in:body
	Body handlers.StatsResponse
}

// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
