package mongodb

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/user"
)

var userOrderings = map[string]string{
	"email":      "email",
	"nickname":   "nickname",
	"name":       "name",
	"surname":    "surname",
	"created_at": "created_at",
	"last_login": "last_login",
}

type userDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Email        string               `bson:"email"`
	Name         string               `bson:"name"`
	Surname      string               `bson:"surname"`
	Phone        string               `bson:"phone"`
	Nickname     string               `bson:"nickname"`
	Neighborhood string               `bson:"neighborhood,omitempty"`
	Role         string               `bson:"role"`
	Blocked      bool                 `bson:"blocked"`
	Comments     []primitive.ObjectID `bson:"comments"`
	Leisure      []primitive.ObjectID `bson:"leisure"`
	Jobs         []primitive.ObjectID `bson:"jobs"`
	Schools      []primitive.ObjectID `bson:"schools"`
	PasswordHash []byte               `bson:"password_hash"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
	LastLogin    time.Time            `bson:"last_login"`
}

func newUserDoc(usr user.User) userDoc {
	return userDoc{
		Email:        usr.Email,
		Name:         usr.Name,
		Surname:      usr.Surname,
		Phone:        usr.Phone,
		Nickname:     usr.Nickname,
		Neighborhood: usr.Neighborhood,
		Role:         usr.Role,
		Blocked:      usr.Blocked,
		Comments:     objectIDs(usr.Comments),
		Leisure:      objectIDs(usr.Leisure),
		Jobs:         objectIDs(usr.Jobs),
		Schools:      objectIDs(usr.Schools),
		PasswordHash: usr.PasswordHash,
		CreatedAt:    usr.CreatedAt,
		UpdatedAt:    usr.UpdatedAt,
		LastLogin:    usr.LastLogin,
	}
}

func (d userDoc) toUser() user.User {
	return user.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		Name:         d.Name,
		Surname:      d.Surname,
		Phone:        d.Phone,
		Nickname:     d.Nickname,
		Neighborhood: d.Neighborhood,
		Role:         d.Role,
		Blocked:      d.Blocked,
		Comments:     hexIDs(d.Comments),
		Leisure:      hexIDs(d.Leisure),
		Jobs:         hexIDs(d.Jobs),
		Schools:      hexIDs(d.Schools),
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
		LastLogin:    d.LastLogin.UTC(),
	}
}

type userRepository struct {
	coll *mongo.Collection
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{coll: db.collection(usersColl)}
}

func (repo *userRepository) CheckUniqueness(ctx context.Context, email, nickname string, excludedIDs ...string) error {
	filter := bson.M{"$or": bson.A{bson.M{"email": email}, bson.M{"nickname": nickname}}}
	if len(excludedIDs) > 0 {
		filter["_id"] = bson.M{"$nin": objectIDs(excludedIDs)}
	}

	cur, err := repo.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"email": 1, "nickname": 1}))
	if err != nil {
		return errors.Wrap(err, "finding users")
	}
	var docs []userDoc
	if err = cur.All(ctx, &docs); err != nil {
		return errors.Wrap(err, "decoding users")
	}
	for _, doc := range docs {
		if doc.Email == email {
			return user.ErrEmailExists
		}
	}
	if len(docs) > 0 {
		return user.ErrNicknameExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.coll.InsertOne(ctx, newUserDoc(usr))
	if err != nil {
		if isDuplicateKey(err) {
			return user.User{}, duplicateUserErr(err)
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	usr.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return usr, nil
}

func (repo *userRepository) QueryUsers(ctx context.Context, orderings ...core.DBOrdering) ([]user.User, error) {
	cur, err := repo.coll.Find(ctx, bson.M{}, findOptions(orderings, userOrderings))
	if err != nil {
		return nil, errors.Wrap(err, "finding users")
	}
	var docs []userDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding users")
	}
	users := make([]user.User, len(docs))
	for i, doc := range docs {
		users[i] = doc.toUser()
	}
	return users, nil
}

func (repo *userRepository) findOne(ctx context.Context, filter bson.M) (user.User, error) {
	var doc userDoc
	if err := repo.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user")
	}
	return doc.toUser(), nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	oid, err := objectID(id, user.ErrNotFound)
	if err != nil {
		return user.User{}, err
	}
	return repo.findOne(ctx, bson.M{"_id": oid})
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return repo.findOne(ctx, bson.M{"email": email})
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	oid, err := objectID(usr.ID, user.ErrNotFound)
	if err != nil {
		return user.User{}, err
	}
	set := bson.M{
		"email":        usr.Email,
		"name":         usr.Name,
		"surname":      usr.Surname,
		"phone":        usr.Phone,
		"nickname":     usr.Nickname,
		"neighborhood": usr.Neighborhood,
		"role":         usr.Role,
		"blocked":      usr.Blocked,
		"updated_at":   usr.UpdatedAt,
		"last_login":   usr.LastLogin,
	}
	if usr.PasswordHash != nil {
		set["password_hash"] = usr.PasswordHash
	}

	var doc userDoc
	err = repo.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		if isDuplicateKey(err) {
			return user.User{}, duplicateUserErr(err)
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return doc.toUser(), nil
}

func (repo *userRepository) AddUserRef(ctx context.Context, id string, list user.RefList, ref string) (user.User, error) {
	oid, err := objectID(id, user.ErrNotFound)
	if err != nil {
		return user.User{}, err
	}
	refID, err := primitive.ObjectIDFromHex(ref)
	if err != nil {
		return user.User{}, errors.Wrap(err, "parsing ref")
	}

	var doc userDoc
	err = repo.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$addToSet": bson.M{string(list): refID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "adding user ref")
	}
	return doc.toUser(), nil
}

func (repo *userRepository) DeleteUser(ctx context.Context, id string) error {
	oid, err := objectID(id, user.ErrNotFound)
	if err != nil {
		return err
	}
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "deleting user")
	}
	if res.DeletedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}

// duplicateUserErr tells which unique index a write ran into.
func duplicateUserErr(err error) error {
	if strings.Contains(err.Error(), "nickname") {
		return user.ErrNicknameExists
	}
	return user.ErrEmailExists
}
