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

var placeOrderings = map[string]string{
	"name":       "name",
	"street":     "street",
	"created_at": "created_at",
}

type placeDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Street      string             `bson:"street"`
	Phone       string             `bson:"phone,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d placeDoc) toPlace(kind place.Kind) place.Place {
	return place.Place{
		ID:          d.ID.Hex(),
		Kind:        kind,
		Name:        d.Name,
		Description: d.Description,
		Street:      d.Street,
		Phone:       d.Phone,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type placeRepository struct {
	db *DB
}

var _ place.Repository = (*placeRepository)(nil)

func NewPlaceRepository(db *DB) place.Repository {
	return &placeRepository{db: db}
}

func (repo *placeRepository) coll(kind place.Kind) *mongo.Collection {
	return repo.db.collection(placesColl(kind))
}

func (repo *placeRepository) CreatePlace(ctx context.Context, p place.Place) (place.Place, error) {
	res, err := repo.coll(p.Kind).InsertOne(ctx, placeDoc{
		Name:        p.Name,
		Description: p.Description,
		Street:      p.Street,
		Phone:       p.Phone,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	})
	if err != nil {
		return place.Place{}, errors.Wrapf(err, "inserting %s", p.Kind)
	}
	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return p, nil
}

func (repo *placeRepository) QueryPlaces(ctx context.Context, kind place.Kind, orderings ...core.DBOrdering) ([]place.Place, error) {
	cur, err := repo.coll(kind).Find(ctx, bson.M{}, findOptions(orderings, placeOrderings))
	if err != nil {
		return nil, errors.Wrapf(err, "finding %s", kind)
	}
	var docs []placeDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", kind)
	}
	places := make([]place.Place, len(docs))
	for i, doc := range docs {
		places[i] = doc.toPlace(kind)
	}
	return places, nil
}

func (repo *placeRepository) GetPlaceByID(ctx context.Context, kind place.Kind, id string) (place.Place, error) {
	oid, err := objectID(id, place.ErrNotFound)
	if err != nil {
		return place.Place{}, err
	}
	var doc placeDoc
	if err = repo.coll(kind).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return place.Place{}, place.ErrNotFound
		}
		return place.Place{}, errors.Wrapf(err, "finding %s", kind)
	}
	return doc.toPlace(kind), nil
}

func (repo *placeRepository) UpdatePlace(ctx context.Context, p place.Place) (place.Place, error) {
	oid, err := objectID(p.ID, place.ErrNotFound)
	if err != nil {
		return place.Place{}, err
	}
	var doc placeDoc
	err = repo.coll(p.Kind).FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":        p.Name,
			"description": p.Description,
			"street":      p.Street,
			"phone":       p.Phone,
			"updated_at":  p.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return place.Place{}, place.ErrNotFound
		}
		return place.Place{}, errors.Wrapf(err, "updating %s", p.Kind)
	}
	return doc.toPlace(p.Kind), nil
}

func (repo *placeRepository) DeletePlace(ctx context.Context, kind place.Kind, id string) error {
	oid, err := objectID(id, place.ErrNotFound)
	if err != nil {
		return err
	}
	res, err := repo.coll(kind).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrapf(err, "deleting %s", kind)
	}
	if res.DeletedCount == 0 {
		return place.ErrNotFound
	}
	return nil
}
