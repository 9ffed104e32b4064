package databases

// go generate: mockery --name CounterDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const counterName = "counters"

// CounterDatabase hands out monotonically increasing sequence numbers per key
type CounterDatabase interface {
	Next(ctx context.Context, key string) (int64, error)
}

type counter struct {
	Key string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

type counterDatabase struct {
	db DatabaseHelper
}

// NewCounterDatabase initializes a new instance of counter database with the provided db connection
func NewCounterDatabase(db DatabaseHelper) CounterDatabase {
	return &counterDatabase{
		db: db,
	}
}

// Next atomically increments the counter for key, creating it on first use
func (c *counterDatabase) Next(ctx context.Context, key string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	result := &counter{}
	err := c.db.Collection(counterName).FindOneAndUpdate(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&result)
	if err != nil {
		return 0, err
	}
	return result.Seq, nil
}
