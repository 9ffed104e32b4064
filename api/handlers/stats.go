package handlers

import (
	"math"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/linesmerrill/civic-report-api/config"
	"github.com/linesmerrill/civic-report-api/databases"
	"github.com/linesmerrill/civic-report-api/models"
)

// Stats serves the triage dashboard counters
type Stats struct {
	DB databases.ReportDatabase
}

// StatsResponse summarizes the reports of one municipality, or all of them
type StatsResponse struct {
	Total              int64            `json:"total"`
	ByStatus           map[string]int64 `json:"byStatus"`
	ByCategory         map[string]int64 `json:"byCategory"`
	Resolved           int64            `json:"resolved"`
	AvgResolutionHours float64          `json:"avgResolutionHours"`
}

type groupCount struct {
	ID    string `bson:"_id"`
	Count int64  `bson:"count"`
}

type resolutionAverage struct {
	Count int64   `bson:"count"`
	Avg   float64 `bson:"avg"`
}

func groupBy(match bson.M, field string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

func averageResolution(match bson.M) mongo.Pipeline {
	resolved := bson.M{"status": models.StatusResolved, "resolutionTime": bson.M{"$ne": nil}}
	for k, v := range match {
		resolved[k] = v
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: resolved}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$resolutionTime"}}},
		}}},
	}
}

func countsOf(groups []groupCount) map[string]int64 {
	counts := make(map[string]int64, len(groups))
	for _, g := range groups {
		counts[g.ID] = g.Count
	}
	return counts
}

// StatsHandler runs the independent count and aggregate queries concurrently
func (s Stats) StatsHandler(w http.ResponseWriter, r *http.Request) {
	match := bson.M{}
	if id := r.URL.Query().Get("municipality"); id != "" {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		match["municipality"] = oid
	}

	var (
		total      int64
		byStatus   []groupCount
		byCategory []groupCount
		resolution []resolutionAverage
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		total, err = s.DB.CountDocuments(ctx, match)
		return err
	})
	g.Go(func() error {
		return s.DB.Aggregate(ctx, groupBy(match, "status"), &byStatus)
	})
	g.Go(func() error {
		return s.DB.Aggregate(ctx, groupBy(match, "category"), &byCategory)
	})
	g.Go(func() error {
		return s.DB.Aggregate(ctx, averageResolution(match), &resolution)
	})
	if err := g.Wait(); err != nil {
		config.ErrorStatus("failed to compute stats", http.StatusInternalServerError, w, err)
		return
	}

	resp := StatsResponse{
		Total:      total,
		ByStatus:   countsOf(byStatus),
		ByCategory: countsOf(byCategory),
	}
	if len(resolution) > 0 {
		resp.Resolved = resolution[0].Count
		resp.AvgResolutionHours = math.Round(resolution[0].Avg*100) / 100
	}
	writeJSON(w, http.StatusOK, resp)
}
