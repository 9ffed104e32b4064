package databases

// go generate: mockery --name DepartmentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/civic-report-api/models"
)

const departmentName = "departments"

// DepartmentDatabase contains the methods to use with the department database
type DepartmentDatabase interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Department, error)
	FindByCategory(ctx context.Context, municipalityID primitive.ObjectID, category models.Category) ([]models.Department, error)
	Create(ctx context.Context, department *models.Department) error
	AttachReport(ctx context.Context, departmentID, reportID primitive.ObjectID) error
}

type departmentDatabase struct {
	db DatabaseHelper
}

// NewDepartmentDatabase initializes a new instance of department database with the provided db connection
func NewDepartmentDatabase(db DatabaseHelper) DepartmentDatabase {
	return &departmentDatabase{
		db: db,
	}
}

func (c *departmentDatabase) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	department := &models.Department{}
	err := c.db.Collection(departmentName).FindOne(ctx, bson.M{"_id": id}).Decode(&department)
	if err != nil {
		return nil, err
	}
	return department, nil
}

func (c *departmentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Department, error) {
	var departments []models.Department
	cursor, err := c.db.Collection(departmentName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cursor.Decode(&departments)
	if err != nil {
		return nil, err
	}
	return departments, nil
}

// FindByCategory returns every department of the municipality that lists category
func (c *departmentDatabase) FindByCategory(ctx context.Context, municipalityID primitive.ObjectID, category models.Category) ([]models.Department, error) {
	return c.Find(ctx, bson.M{"municipality": municipalityID, "categories": category})
}

func (c *departmentDatabase) Create(ctx context.Context, department *models.Department) error {
	if department.ID.IsZero() {
		department.ID = primitive.NewObjectID()
	}
	if department.Staff == nil {
		department.Staff = []string{}
	}
	if department.Reports == nil {
		department.Reports = []primitive.ObjectID{}
	}
	_, err := c.db.Collection(departmentName).InsertOne(ctx, department)
	return err
}

// AttachReport records reportID among the department's assigned reports
func (c *departmentDatabase) AttachReport(ctx context.Context, departmentID, reportID primitive.ObjectID) error {
	_, err := c.db.Collection(departmentName).UpdateOne(ctx,
		bson.M{"_id": departmentID},
		bson.M{"$addToSet": bson.M{"reports": reportID}},
	)
	return err
}
