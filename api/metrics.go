package api

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

// RequestTrace tracks timing for a single request
type RequestTrace struct {
	RequestID string        `json:"requestId"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Status    int           `json:"status"`
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"duration"`
}

// RouteMetrics aggregates metrics for a specific route
type RouteMetrics struct {
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"totalTime"`
	AvgTime     time.Duration `json:"avgTime"`
	MinTime     time.Duration `json:"minTime"`
	MaxTime     time.Duration `json:"maxTime"`
	LastRequest time.Time     `json:"lastRequest"`
}

// Summary is the collector's view of the current window
type Summary struct {
	TotalRequests int64     `json:"totalRequests"`
	TotalErrors   int64     `json:"totalErrors"`
	ErrorRate     float64   `json:"errorRate"`
	TPS           float64   `json:"tps"`
	WindowStart   time.Time `json:"windowStart"`
	RouteCount    int       `json:"routeCount"`
}

// MetricsCollector collects and aggregates request metrics for one window.
// Roll starts a new window.
type MetricsCollector struct {
	mu            sync.RWMutex
	routeMetrics  map[string]*RouteMetrics
	windowStart   time.Time
	totalRequests int64
	totalErrors   int64
	now           func() time.Time
}

// NewMetricsCollector returns an empty collector whose window starts now
func NewMetricsCollector() *MetricsCollector {
	mc := &MetricsCollector{now: time.Now}
	mc.Roll()
	return mc
}

// RecordTrace folds trace into its route's aggregate
func (mc *MetricsCollector) RecordTrace(trace RequestTrace) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	path := normalizeRoutePath(trace.Path)
	routeKey := trace.Method + " " + path

	metrics, exists := mc.routeMetrics[routeKey]
	if !exists {
		metrics = &RouteMetrics{
			Method:  trace.Method,
			Path:    path,
			MinTime: trace.Duration,
		}
		mc.routeMetrics[routeKey] = metrics
	}

	metrics.Count++
	metrics.TotalTime += trace.Duration
	metrics.AvgTime = metrics.TotalTime / time.Duration(metrics.Count)
	metrics.LastRequest = trace.StartTime
	if trace.Duration < metrics.MinTime {
		metrics.MinTime = trace.Duration
	}
	if trace.Duration > metrics.MaxTime {
		metrics.MaxTime = trace.Duration
	}

	mc.totalRequests++
	if trace.Status >= 400 {
		metrics.ErrorCount++
		mc.totalErrors++
	}
}

// GetRouteMetrics returns a copy of every route's aggregate, slowest first
func (mc *MetricsCollector) GetRouteMetrics() []RouteMetrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	routes := make([]RouteMetrics, 0, len(mc.routeMetrics))
	for _, m := range mc.routeMetrics {
		routes = append(routes, *m)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].AvgTime == routes[j].AvgTime {
			return routes[i].Method+routes[i].Path < routes[j].Method+routes[j].Path
		}
		return routes[i].AvgTime > routes[j].AvgTime
	})
	return routes
}

// GetSummary returns overall summary metrics
func (mc *MetricsCollector) GetSummary() Summary {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	s := Summary{
		TotalRequests: mc.totalRequests,
		TotalErrors:   mc.totalErrors,
		WindowStart:   mc.windowStart,
		RouteCount:    len(mc.routeMetrics),
	}
	if elapsed := mc.now().Sub(mc.windowStart).Seconds(); elapsed > 0 {
		s.TPS = float64(mc.totalRequests) / elapsed
	}
	if mc.totalRequests > 0 {
		s.ErrorRate = float64(mc.totalErrors) / float64(mc.totalRequests)
	}
	return s
}

// Roll discards the current window and starts a new one
func (mc *MetricsCollector) Roll() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.routeMetrics = make(map[string]*RouteMetrics)
	mc.windowStart = mc.now()
	mc.totalRequests = 0
	mc.totalErrors = 0
}

var (
	objectIDPattern = regexp.MustCompile(`/[0-9a-fA-F]{24}(/|$)`)
	reportIDPattern = regexp.MustCompile(`/[A-Z]{4,}-\d{5,}(/|$)`)
	uuidPattern     = regexp.MustCompile(`/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}(/|$)`)
)

// normalizeRoutePath replaces dynamic segments with {id} so that requests to
// the same route aggregate together, e.g.
//   - /api/v1/reports/507f1f77bcf86cd799439011/status -> /api/v1/reports/{id}/status
//   - /api/v1/reports/INFR-00042 -> /api/v1/reports/{id}
func normalizeRoutePath(path string) string {
	for _, p := range []*regexp.Regexp{objectIDPattern, reportIDPattern, uuidPattern} {
		path = p.ReplaceAllString(path, "/{id}$1")
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}
