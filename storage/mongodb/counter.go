package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vecindario/barrios/core/recommend"
)

// counterDoc is the single usage counter record: {_id: "recommendations", counts: {<id>: n}, total: n}.
type counterDoc struct {
	ID     string           `bson:"_id"`
	Counts map[string]int64 `bson:"counts"`
	Total  int64            `bson:"total"`
}

type counterRepository struct {
	coll *mongo.Collection
}

var _ recommend.CounterRepository = (*counterRepository)(nil)

func NewCounterRepository(db *DB) recommend.CounterRepository {
	return &counterRepository{coll: db.collection(countersColl)}
}

func (repo *counterRepository) GetCounter(ctx context.Context) (recommend.Counter, error) {
	var doc counterDoc
	if err := repo.coll.FindOne(ctx, bson.M{"_id": recommend.CounterID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return recommend.Counter{}, recommend.ErrCounterNotFound
		}
		return recommend.Counter{}, errors.Wrap(err, "finding counter")
	}
	if doc.Counts == nil {
		doc.Counts = map[string]int64{}
	}
	return recommend.Counter{ID: doc.ID, Counts: doc.Counts, Total: doc.Total}, nil
}

func (repo *counterRepository) CreateCounter(ctx context.Context, counter recommend.Counter) (recommend.Counter, error) {
	_, err := repo.coll.InsertOne(ctx, counterDoc{ID: recommend.CounterID, Counts: counter.Counts, Total: counter.Total})
	if err != nil {
		if isDuplicateKey(err) {
			return recommend.Counter{}, recommend.ErrCounterExists
		}
		return recommend.Counter{}, errors.Wrap(err, "inserting counter")
	}
	counter.ID = recommend.CounterID
	return counter, nil
}

// IncrementCounter bumps the neighborhood count and the total in one atomic update.
func (repo *counterRepository) IncrementCounter(ctx context.Context, neighborhood string) error {
	res, err := repo.coll.UpdateOne(
		ctx,
		bson.M{"_id": recommend.CounterID},
		bson.M{"$inc": bson.M{"counts." + neighborhood: 1, "total": 1}},
	)
	if err != nil {
		return errors.Wrap(err, "incrementing counter")
	}
	if res.MatchedCount == 0 {
		return recommend.ErrCounterNotFound
	}
	return nil
}

func (repo *counterRepository) DeleteCounter(ctx context.Context) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": recommend.CounterID})
	if err != nil {
		return errors.Wrap(err, "deleting counter")
	}
	if res.DeletedCount == 0 {
		return recommend.ErrCounterNotFound
	}
	return nil
}
