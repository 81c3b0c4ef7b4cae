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
	"github.com/vecindario/barrios/core/comment"
)

var commentOrderings = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type commentDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Text         string             `bson:"text"`
	Neighborhood primitive.ObjectID `bson:"neighborhood"`
	Author       primitive.ObjectID `bson:"author"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d commentDoc) toComment() comment.Comment {
	return comment.Comment{
		ID:           d.ID.Hex(),
		Text:         d.Text,
		Neighborhood: d.Neighborhood.Hex(),
		Author:       d.Author.Hex(),
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

type commentRepository struct {
	coll *mongo.Collection
}

var _ comment.Repository = (*commentRepository)(nil)

func NewCommentRepository(db *DB) comment.Repository {
	return &commentRepository{coll: db.collection(commentsColl)}
}

func (repo *commentRepository) CreateComment(ctx context.Context, cmt comment.Comment) (comment.Comment, error) {
	nbID, err := primitive.ObjectIDFromHex(cmt.Neighborhood)
	if err != nil {
		return comment.Comment{}, errors.Wrap(err, "parsing neighborhood id")
	}
	authorID, err := primitive.ObjectIDFromHex(cmt.Author)
	if err != nil {
		return comment.Comment{}, errors.Wrap(err, "parsing author id")
	}

	res, err := repo.coll.InsertOne(ctx, commentDoc{
		Text:         cmt.Text,
		Neighborhood: nbID,
		Author:       authorID,
		CreatedAt:    cmt.CreatedAt,
		UpdatedAt:    cmt.UpdatedAt,
	})
	if err != nil {
		return comment.Comment{}, errors.Wrap(err, "inserting comment")
	}
	cmt.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return cmt, nil
}

func (repo *commentRepository) QueryComments(ctx context.Context, orderings ...core.DBOrdering) ([]comment.Comment, error) {
	cur, err := repo.coll.Find(ctx, bson.M{}, findOptions(orderings, commentOrderings))
	if err != nil {
		return nil, errors.Wrap(err, "finding comments")
	}
	var docs []commentDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding comments")
	}
	cmts := make([]comment.Comment, len(docs))
	for i, doc := range docs {
		cmts[i] = doc.toComment()
	}
	return cmts, nil
}

func (repo *commentRepository) GetCommentByID(ctx context.Context, id string) (comment.Comment, error) {
	oid, err := objectID(id, comment.ErrNotFound)
	if err != nil {
		return comment.Comment{}, err
	}
	var doc commentDoc
	if err = repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return comment.Comment{}, comment.ErrNotFound
		}
		return comment.Comment{}, errors.Wrap(err, "finding comment")
	}
	return doc.toComment(), nil
}

func (repo *commentRepository) UpdateComment(ctx context.Context, cmt comment.Comment) (comment.Comment, error) {
	oid, err := objectID(cmt.ID, comment.ErrNotFound)
	if err != nil {
		return comment.Comment{}, err
	}
	var doc commentDoc
	err = repo.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"text": cmt.Text, "updated_at": cmt.UpdatedAt}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return comment.Comment{}, comment.ErrNotFound
		}
		return comment.Comment{}, errors.Wrap(err, "updating comment")
	}
	return doc.toComment(), nil
}

func (repo *commentRepository) DeleteComment(ctx context.Context, id string) error {
	oid, err := objectID(id, comment.ErrNotFound)
	if err != nil {
		return err
	}
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "deleting comment")
	}
	if res.DeletedCount == 0 {
		return comment.ErrNotFound
	}
	return nil
}
