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

func TestUploadDatabase_FindUnclaimed(t *testing.T) {
	ids := []string{"civic-reports/image/a", "civic-reports/image/b"}
	filter := bson.M{
		"_id":     bson.M{"$in": ids},
		"ownerId": "citizen-1",
		"report":  nil,
	}

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Upload)
		*arg = []models.Upload{{ID: "civic-reports/image/a", OwnerID: "citizen-1"}}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), filter).
		Return(cursorHelper, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "uploads").Return(collectionHelper)

	uploadDba := databases.NewUploadDatabase(dbHelper)

	uploads, err := uploadDba.FindUnclaimed(context.Background(), "citizen-1", ids)
	assert.NoError(t, err)
	assert.Len(t, uploads, 1)
	assert.Equal(t, "civic-reports/image/a", uploads[0].ID)

	none, err := uploadDba.FindUnclaimed(context.Background(), "citizen-1", nil)
	assert.NoError(t, err)
	assert.Empty(t, none)
	collectionHelper.(*mocks.CollectionHelper).AssertNumberOfCalls(t, "Find", 1)
}

func TestUploadDatabase_Claim(t *testing.T) {
	report := primitive.NewObjectID()

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", context.Background(), bson.M{"_id": "free", "report": nil}, bson.M{"$set": bson.M{"report": report}}).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", context.Background(), bson.M{"_id": "taken", "report": nil}, bson.M{"$set": bson.M{"report": report}}).
		Return(&mongo.UpdateResult{}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "uploads").Return(collectionHelper)

	uploadDba := databases.NewUploadDatabase(dbHelper)

	assert.NoError(t, uploadDba.Claim(context.Background(), []string{"free"}, report))
	assert.EqualError(t, uploadDba.Claim(context.Background(), []string{"taken"}, report), "upload taken is already attached to a report")
}

func TestUploadDatabase_FindByReportAndDelete(t *testing.T) {
	report := primitive.NewObjectID()

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Upload)
		*arg = []models.Upload{{ID: "v1", Report: &report}}
	})
	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"report": report}).
		Return(cursorHelper, nil)
	collectionHelper.(*mocks.CollectionHelper).
		On("DeleteOne", context.Background(), bson.M{"_id": "v1"}).
		Return(nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "uploads").Return(collectionHelper)

	uploadDba := databases.NewUploadDatabase(dbHelper)

	uploads, err := uploadDba.FindByReport(context.Background(), report)
	assert.NoError(t, err)
	assert.Equal(t, []models.Upload{{ID: "v1", Report: &report}}, uploads)
	assert.NoError(t, uploadDba.Delete(context.Background(), "v1"))
}
