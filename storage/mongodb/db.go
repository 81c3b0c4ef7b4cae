// Package mongodb stores the domain objects in MongoDB, one collection per object type.
package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/place"
)

// collection names
const (
	usersColl         = "users"
	neighborhoodsColl = "neighborhoods"
	commentsColl      = "comments"
	countersColl      = "counters"
)

func placesColl(kind place.Kind) string {
	return string(kind)
}

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the database and waits for it to answer.
func Open(ctx context.Context, conf *core.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, conf.Database.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting")
	}
	if err = ping(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &DB{client: client, db: client.Database(conf.Database.Name)}, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, client *mongo.Client) error {
	var err error
	for attempts := 1; ; attempts++ {
		if err = client.Ping(ctx, nil); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(err, "DB ping timeout")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
}

func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// Migrate creates the indexes the repositories rely on. It is safe to run on every start.
func (db *DB) Migrate(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		usersColl: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "nickname", Value: 1}}, Options: unique},
		},
		commentsColl: {
			{Keys: bson.D{{Key: "neighborhood", Value: 1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := db.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "creating %s indexes", coll)
		}
	}
	return nil
}

// Drop removes every collection. Used by tests.
func (db *DB) Drop(ctx context.Context) error {
	return db.db.Drop(ctx)
}

func (db *DB) collection(name string) *mongo.Collection {
	return db.db.Collection(name)
}

// objectID parses a hex id. Malformed ids are reported as `notFound`, since no document can carry them.
func objectID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, len(oids))
	for i, oid := range oids {
		out[i] = oid.Hex()
	}
	return out
}

// findOptions turns orderings into a sort document, keeping only the allowed fields.
// Documents are returned in insertion (_id) order otherwise.
func findOptions(orderings []core.DBOrdering, allowed map[string]string) *options.FindOptions {
	sort := bson.D{}
	for _, ord := range orderings {
		if field, ok := allowed[ord.Field]; ok {
			sort = append(sort, bson.E{Key: field, Value: ord.Direction()})
		}
	}
	sort = append(sort, bson.E{Key: "_id", Value: 1})
	return options.Find().SetSort(sort)
}

func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
