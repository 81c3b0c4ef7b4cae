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
	"github.com/vecindario/barrios/core/neighborhood"
)

var neighborhoodOrderings = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

type neighborhoodDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Streets     []string             `bson:"streets"`
	Description string               `bson:"description"`
	Comments    []primitive.ObjectID `bson:"comments"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func (d neighborhoodDoc) toNeighborhood() neighborhood.Neighborhood {
	streets := d.Streets
	if streets == nil {
		streets = []string{}
	}
	return neighborhood.Neighborhood{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Streets:     streets,
		Description: d.Description,
		Comments:    hexIDs(d.Comments),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type neighborhoodRepository struct {
	coll *mongo.Collection
}

var _ neighborhood.Repository = (*neighborhoodRepository)(nil)

func NewNeighborhoodRepository(db *DB) neighborhood.Repository {
	return &neighborhoodRepository{coll: db.collection(neighborhoodsColl)}
}

func (repo *neighborhoodRepository) CreateNeighborhood(ctx context.Context, nb neighborhood.Neighborhood) (neighborhood.Neighborhood, error) {
	res, err := repo.coll.InsertOne(ctx, neighborhoodDoc{
		Name:        nb.Name,
		Streets:     nb.Streets,
		Description: nb.Description,
		Comments:    objectIDs(nb.Comments),
		CreatedAt:   nb.CreatedAt,
		UpdatedAt:   nb.UpdatedAt,
	})
	if err != nil {
		return neighborhood.Neighborhood{}, errors.Wrap(err, "inserting neighborhood")
	}
	nb.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nb, nil
}

func (repo *neighborhoodRepository) QueryNeighborhoods(ctx context.Context, orderings ...core.DBOrdering) ([]neighborhood.Neighborhood, error) {
	cur, err := repo.coll.Find(ctx, bson.M{}, findOptions(orderings, neighborhoodOrderings))
	if err != nil {
		return nil, errors.Wrap(err, "finding neighborhoods")
	}
	var docs []neighborhoodDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding neighborhoods")
	}
	nbs := make([]neighborhood.Neighborhood, len(docs))
	for i, doc := range docs {
		nbs[i] = doc.toNeighborhood()
	}
	return nbs, nil
}

func (repo *neighborhoodRepository) GetNeighborhoodByID(ctx context.Context, id string) (neighborhood.Neighborhood, error) {
	oid, err := objectID(id, neighborhood.ErrNotFound)
	if err != nil {
		return neighborhood.Neighborhood{}, err
	}
	var doc neighborhoodDoc
	if err = repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return neighborhood.Neighborhood{}, neighborhood.ErrNotFound
		}
		return neighborhood.Neighborhood{}, errors.Wrap(err, "finding neighborhood")
	}
	return doc.toNeighborhood(), nil
}

func (repo *neighborhoodRepository) update(ctx context.Context, id string, update bson.M) (neighborhood.Neighborhood, error) {
	oid, err := objectID(id, neighborhood.ErrNotFound)
	if err != nil {
		return neighborhood.Neighborhood{}, err
	}
	var doc neighborhoodDoc
	err = repo.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return neighborhood.Neighborhood{}, neighborhood.ErrNotFound
		}
		return neighborhood.Neighborhood{}, errors.Wrap(err, "updating neighborhood")
	}
	return doc.toNeighborhood(), nil
}

func (repo *neighborhoodRepository) UpdateNeighborhood(ctx context.Context, nb neighborhood.Neighborhood) (neighborhood.Neighborhood, error) {
	return repo.update(ctx, nb.ID, bson.M{"$set": bson.M{
		"name":        nb.Name,
		"streets":     nb.Streets,
		"description": nb.Description,
		"updated_at":  nb.UpdatedAt,
	}})
}

func (repo *neighborhoodRepository) AddNeighborhoodComment(ctx context.Context, id, commentID string) (neighborhood.Neighborhood, error) {
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return neighborhood.Neighborhood{}, errors.Wrap(err, "parsing comment id")
	}
	return repo.update(ctx, id, bson.M{"$addToSet": bson.M{"comments": cid}})
}

func (repo *neighborhoodRepository) DeleteNeighborhood(ctx context.Context, id string) error {
	oid, err := objectID(id, neighborhood.ErrNotFound)
	if err != nil {
		return err
	}
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "deleting neighborhood")
	}
	if res.DeletedCount == 0 {
		return neighborhood.ErrNotFound
	}
	return nil
}

func (repo *neighborhoodRepository) DeleteAllNeighborhoods(ctx context.Context) (int64, error) {
	res, err := repo.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "deleting neighborhoods")
	}
	return res.DeletedCount, nil
}
