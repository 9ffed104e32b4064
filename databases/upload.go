package databases

// go generate: mockery --name UploadDatabase

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/civic-report-api/models"
)

const uploadName = "uploads"

// UploadDatabase records who uploaded each media handle and which report
// holds it
type UploadDatabase interface {
	Create(ctx context.Context, upload *models.Upload) error
	FindUnclaimed(ctx context.Context, ownerID string, ids []string) ([]models.Upload, error)
	FindByReport(ctx context.Context, reportID primitive.ObjectID) ([]models.Upload, error)
	Claim(ctx context.Context, ids []string, reportID primitive.ObjectID) error
	Delete(ctx context.Context, id string) error
}

type uploadDatabase struct {
	db DatabaseHelper
}

// NewUploadDatabase initializes a new instance of upload database with the provided db connection
func NewUploadDatabase(db DatabaseHelper) UploadDatabase {
	return &uploadDatabase{
		db: db,
	}
}

func (c *uploadDatabase) Create(ctx context.Context, upload *models.Upload) error {
	_, err := c.db.Collection(uploadName).InsertOne(ctx, upload)
	return err
}

func (c *uploadDatabase) find(ctx context.Context, filter interface{}) ([]models.Upload, error) {
	var uploads []models.Upload
	cursor, err := c.db.Collection(uploadName).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	err = cursor.Decode(&uploads)
	if err != nil {
		return nil, err
	}
	return uploads, nil
}

// FindUnclaimed returns the uploads among ids that ownerID stored and that no
// report holds yet
func (c *uploadDatabase) FindUnclaimed(ctx context.Context, ownerID string, ids []string) ([]models.Upload, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return c.find(ctx, bson.M{
		"_id":     bson.M{"$in": ids},
		"ownerId": ownerID,
		"report":  nil,
	})
}

// FindByReport returns the uploads attached to reportID
func (c *uploadDatabase) FindByReport(ctx context.Context, reportID primitive.ObjectID) ([]models.Upload, error) {
	return c.find(ctx, bson.M{"report": reportID})
}

// Claim attaches each unclaimed upload to reportID. An upload already held by
// another report is left alone and reported as an error.
func (c *uploadDatabase) Claim(ctx context.Context, ids []string, reportID primitive.ObjectID) error {
	for _, id := range ids {
		res, err := c.db.Collection(uploadName).UpdateOne(ctx,
			bson.M{"_id": id, "report": nil},
			bson.M{"$set": bson.M{"report": reportID}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("upload %s is already attached to a report", id)
		}
	}
	return nil
}

func (c *uploadDatabase) Delete(ctx context.Context, id string) error {
	return c.db.Collection(uploadName).DeleteOne(ctx, bson.M{"_id": id})
}
