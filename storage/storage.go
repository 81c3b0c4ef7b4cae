// Package storage opens the configured backend and hands out its repositories.
package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/comment"
	"github.com/vecindario/barrios/core/neighborhood"
	"github.com/vecindario/barrios/core/place"
	"github.com/vecindario/barrios/core/recommend"
	"github.com/vecindario/barrios/core/user"
	inmemdb "github.com/vecindario/barrios/storage/inmem"
	"github.com/vecindario/barrios/storage/mongodb"
)

type Repositories struct {
	Users         user.Repository
	Neighborhoods neighborhood.Repository
	Comments      comment.Repository
	Places        place.Repository
	Counter       recommend.CounterRepository

	close func(ctx context.Context) error
}

// Open connects to the backend named by conf.Storage. MongoDB is migrated before use.
func Open(ctx context.Context, conf *core.Config) (*Repositories, error) {
	switch conf.Storage {
	case core.StorageMemory:
		db := inmemdb.Open()
		return &Repositories{
			Users:         inmemdb.NewUserRepository(db),
			Neighborhoods: inmemdb.NewNeighborhoodRepository(db),
			Comments:      inmemdb.NewCommentRepository(db),
			Places:        inmemdb.NewPlaceRepository(db),
			Counter:       inmemdb.NewCounterRepository(db),
			close:         func(context.Context) error { return nil },
		}, nil

	case core.StorageMongoDB, "":
		db, err := mongodb.Open(ctx, conf)
		if err != nil {
			return nil, errors.Wrap(err, "opening database")
		}
		if err = db.Migrate(ctx); err != nil {
			_ = db.Close(ctx)
			return nil, errors.Wrap(err, "migrating database")
		}
		return &Repositories{
			Users:         mongodb.NewUserRepository(db),
			Neighborhoods: mongodb.NewNeighborhoodRepository(db),
			Comments:      mongodb.NewCommentRepository(db),
			Places:        mongodb.NewPlaceRepository(db),
			Counter:       mongodb.NewCounterRepository(db),
			close:         db.Close,
		}, nil
	}
	return nil, errors.Errorf("unknown storage %q", conf.Storage)
}

func (r *Repositories) Close(ctx context.Context) error {
	return r.close(ctx)
}
