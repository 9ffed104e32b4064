package databases

// go generate: mockery --name MunicipalityDatabase

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/civic-report-api/models"
)

const municipalityName = "municipalities"

// MunicipalityDatabase contains the methods to use with the municipality database
type MunicipalityDatabase interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Municipality, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Municipality, error)
	Nearest(ctx context.Context, point models.GeoPoint, maxDistanceMeters float64) (*models.Municipality, error)
	MatchDistrict(ctx context.Context, district string) (*models.Municipality, error)
	Create(ctx context.Context, municipality *models.Municipality) error
	AddDepartment(ctx context.Context, municipalityID, departmentID primitive.ObjectID) error
}

type municipalityDatabase struct {
	db DatabaseHelper
}

// NewMunicipalityDatabase initializes a new instance of municipality database with the provided db connection
func NewMunicipalityDatabase(db DatabaseHelper) MunicipalityDatabase {
	return &municipalityDatabase{
		db: db,
	}
}

func (c *municipalityDatabase) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Municipality, error) {
	municipality := &models.Municipality{}
	err := c.db.Collection(municipalityName).FindOne(ctx, bson.M{"_id": id}).Decode(&municipality)
	if err != nil {
		return nil, err
	}
	return municipality, nil
}

func (c *municipalityDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Municipality, error) {
	var municipalities []models.Municipality
	cursor, err := c.db.Collection(municipalityName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cursor.Decode(&municipalities)
	if err != nil {
		return nil, err
	}
	return municipalities, nil
}

// Nearest returns the municipality whose center is closest to point and no
// further than maxDistanceMeters away. It returns nil, nil when none qualifies.
func (c *municipalityDatabase) Nearest(ctx context.Context, point models.GeoPoint, maxDistanceMeters float64) (*models.Municipality, error) {
	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry":    point,
				"$maxDistance": maxDistanceMeters,
			},
		},
	}
	found, err := c.Find(ctx, filter, options.Find().SetLimit(1))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// MatchDistrict returns the first municipality whose district contains the
// given name, ignoring case. It returns nil, nil when none matches.
func (c *municipalityDatabase) MatchDistrict(ctx context.Context, district string) (*models.Municipality, error) {
	filter := bson.M{
		"district": bson.M{"$regex": regexp.QuoteMeta(district), "$options": "i"},
	}
	municipality := &models.Municipality{}
	err := c.db.Collection(municipalityName).FindOne(ctx, filter).Decode(&municipality)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return municipality, nil
}

func (c *municipalityDatabase) Create(ctx context.Context, municipality *models.Municipality) error {
	if municipality.ID.IsZero() {
		municipality.ID = primitive.NewObjectID()
	}
	if municipality.Departments == nil {
		municipality.Departments = []primitive.ObjectID{}
	}
	_, err := c.db.Collection(municipalityName).InsertOne(ctx, municipality)
	return err
}

// AddDepartment appends departmentID to the municipality's ordered department list
func (c *municipalityDatabase) AddDepartment(ctx context.Context, municipalityID, departmentID primitive.ObjectID) error {
	res, err := c.db.Collection(municipalityName).UpdateOne(ctx,
		bson.M{"_id": municipalityID},
		bson.M{"$push": bson.M{"departments": departmentID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
