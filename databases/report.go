package databases

// go generate: mockery --name ReportDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/civic-report-api/models"
)

const reportName = "reports"

// ReportDatabase contains the methods to use with the report database
type ReportDatabase interface {
	FindByID(ctx context.Context, id string) (*models.Report, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Report, error)
	List(ctx context.Context, filter interface{}, limit, page int) ([]models.Report, error)
	Create(ctx context.Context, report *models.Report) error
	CompareAndSwap(ctx context.Context, report *models.Report, expectedVersion int64) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error
}

type reportDatabase struct {
	db DatabaseHelper
}

// NewReportDatabase initializes a new instance of report database with the provided db connection
func NewReportDatabase(db DatabaseHelper) ReportDatabase {
	return &reportDatabase{
		db: db,
	}
}

// FindByID accepts either the mongo ObjectID hex or the human readable
// report ID (e.g. "INFR-00042").
func (c *reportDatabase) FindByID(ctx context.Context, id string) (*models.Report, error) {
	filter := bson.M{"reportId": id}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		filter = bson.M{"_id": oid}
	}
	report := &models.Report{}
	err := c.db.Collection(reportName).FindOne(ctx, filter).Decode(&report)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (c *reportDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Report, error) {
	var reports []models.Report
	cursor, err := c.db.Collection(reportName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cursor.Decode(&reports)
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *reportDatabase) List(ctx context.Context, filter interface{}, limit, page int) ([]models.Report, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(byPriority)
	return c.Find(ctx, filter, opts)
}

func (c *reportDatabase) Create(ctx context.Context, report *models.Report) error {
	if report.ID.IsZero() {
		report.ID = primitive.NewObjectID()
	}
	_, err := c.db.Collection(reportName).InsertOne(ctx, report)
	return err
}

// CompareAndSwap replaces the stored report only if its version still equals
// expectedVersion. It returns false, with no error, when another writer got
// there first.
func (c *reportDatabase) CompareAndSwap(ctx context.Context, report *models.Report, expectedVersion int64) (bool, error) {
	filter := bson.M{"_id": report.ID, "__v": expectedVersion}
	res, err := c.db.Collection(reportName).ReplaceOne(ctx, filter, report)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (c *reportDatabase) Delete(ctx context.Context, id primitive.ObjectID) error {
	return c.db.Collection(reportName).DeleteOne(ctx, bson.M{"_id": id})
}

func (c *reportDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(reportName).CountDocuments(ctx, filter, opts...)
}

func (c *reportDatabase) Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error {
	cursor, err := c.db.Collection(reportName).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cursor.Decode(results)
}
