package databases

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPaginate struct {
	limit int64
	page  int64
}

// newMongoPaginate expects a 1-based page; anything lower is treated as page 1
func newMongoPaginate(limit, page int) *mongoPaginate {
	if page < 1 {
		page = 1
	}
	return &mongoPaginate{
		limit: int64(limit),
		page:  int64(page),
	}
}

func (mp *mongoPaginate) getPaginatedOpts() *options.FindOptions {
	l := mp.limit
	skip := mp.page*mp.limit - mp.limit
	fOpt := options.FindOptions{Limit: &l, Skip: &skip}

	return &fOpt
}

// byPriority orders the triage queue: most urgent first, newest first on ties
var byPriority = bson.D{{Key: "priority", Value: -1}, {Key: "createdAt", Value: -1}}
