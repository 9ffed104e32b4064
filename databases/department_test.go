package databases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/civic-report-api/databases"
	"github.com/linesmerrill/civic-report-api/databases/mocks"
	"github.com/linesmerrill/civic-report-api/models"
)

func TestDepartmentDatabase_FindByCategory(t *testing.T) {
	mun := primitive.NewObjectID()

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Department)
		*arg = []models.Department{{Name: "Roads", Categories: []models.Category{models.CategoryInfrastructure}}}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"municipality": mun, "categories": models.CategoryInfrastructure}).
		Return(cursorHelper, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "departments").Return(collectionHelper)

	departmentDba := databases.NewDepartmentDatabase(dbHelper)

	departments, err := departmentDba.FindByCategory(context.Background(), mun, models.CategoryInfrastructure)
	assert.NoError(t, err)
	assert.Len(t, departments, 1)
	assert.Equal(t, "Roads", departments[0].Name)
}

func TestDepartmentDatabase_AttachReport(t *testing.T) {
	dept := primitive.NewObjectID()
	report := primitive.NewObjectID()

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", context.Background(), bson.M{"_id": dept}, bson.M{"$addToSet": bson.M{"reports": report}}).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "departments").Return(collectionHelper)

	departmentDba := databases.NewDepartmentDatabase(dbHelper)

	assert.NoError(t, departmentDba.AttachReport(context.Background(), dept, report))
	collectionHelper.(*mocks.CollectionHelper).AssertExpectations(t)
}

func TestEnsureIndexes(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("CreateIndexes", context.Background(), mock.Anything).
		Return(nil)

	for _, name := range []string{"municipalities", "departments", "reports", "uploads", "users"} {
		dbHelper.(*mocks.DatabaseHelper).On("Collection", name).Return(collectionHelper)
	}

	assert.NoError(t, databases.EnsureIndexes(context.Background(), dbHelper))
	collectionHelper.(*mocks.CollectionHelper).AssertNumberOfCalls(t, "CreateIndexes", 5)
}
