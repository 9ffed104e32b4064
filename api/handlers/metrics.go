package handlers

import (
	"net/http"
	"strconv"

	"github.com/linesmerrill/civic-report-api/api"
)

// formatRouteMetrics converts duration fields to milliseconds for JSON serialization
func formatRouteMetrics(routes []api.RouteMetrics) []map[string]interface{} {
	result := make([]map[string]interface{}, len(routes))
	for i, route := range routes {
		result[i] = map[string]interface{}{
			"method":      route.Method,
			"path":        route.Path,
			"count":       route.Count,
			"errorCount":  route.ErrorCount,
			"avgTime":     route.AvgTime.Milliseconds(),
			"minTime":     route.MinTime.Milliseconds(),
			"maxTime":     route.MaxTime.Milliseconds(),
			"lastRequest": route.LastRequest,
		}
	}
	return result
}

// MetricsHandler handles metrics dashboard requests
type MetricsHandler struct {
	Metrics *api.MetricsCollector
}

// GetMetricsSummary returns the current window's summary and its slowest
// routes, "limit" of them (default 20)
func (m MetricsHandler) GetMetricsSummary(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	routes := m.Metrics.GetRouteMetrics()
	if len(routes) > limit {
		routes = routes[:limit]
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary": m.Metrics.GetSummary(),
		"routes":  formatRouteMetrics(routes),
	})
}
