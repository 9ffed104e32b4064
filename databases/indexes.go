package databases

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the triage queries depend on. $near needs
// the 2dsphere indexes; report IDs must stay unique.
func EnsureIndexes(ctx context.Context, db DatabaseHelper) error {
	indexes := map[string][]mongo.IndexModel{
		municipalityName: {
			{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
			{Keys: bson.D{{Key: "district", Value: 1}}},
		},
		departmentName: {
			{Keys: bson.D{{Key: "municipality", Value: 1}, {Key: "categories", Value: 1}}},
		},
		reportName: {
			{Keys: bson.D{{Key: "reportId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "priority", Value: -1}}},
			{Keys: bson.D{{Key: "department", Value: 1}}},
		},
		uploadName: {
			{Keys: bson.D{{Key: "ownerId", Value: 1}}},
			{Keys: bson.D{{Key: "report", Value: 1}}},
		},
		userName: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for _, name := range []string{municipalityName, departmentName, reportName, uploadName, userName} {
		if err := db.Collection(name).CreateIndexes(ctx, indexes[name]); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
