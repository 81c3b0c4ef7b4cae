package place

import (
	"context"
	"time"

	"github.com/vecindario/barrios/core"
)

var ErrNotFound = core.NewNotFoundError("place not found")

type (
	Repository interface {
		CreatePlace(ctx context.Context, p Place) (Place, error)
		QueryPlaces(ctx context.Context, kind Kind, orderings ...core.DBOrdering) ([]Place, error)
		GetPlaceByID(ctx context.Context, kind Kind, id string) (Place, error)
		UpdatePlace(ctx context.Context, p Place) (Place, error)
		DeletePlace(ctx context.Context, kind Kind, id string) error
	}

	// Service manages the places of a single Kind.
	Service interface {
		Kind() Kind
		Create(ctx context.Context, np NewPlace) (Place, error)
		Query(ctx context.Context, orderings ...core.DBOrdering) ([]Place, error)
		GetByID(ctx context.Context, id string) (Place, error)
		Update(ctx context.Context, id string, up UpdatePlace) (Place, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		kind Kind
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(kind Kind, repo Repository) Service {
	return &service{kind: kind, repo: repo}
}

func (svc *service) Kind() Kind {
	return svc.kind
}

func (svc *service) Create(ctx context.Context, np NewPlace) (Place, error) {
	now := time.Now().UTC()
	return svc.repo.CreatePlace(ctx, Place{
		Kind:        svc.kind,
		Name:        np.Name,
		Description: np.Description,
		Street:      np.Street,
		Phone:       np.Phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (svc *service) Query(ctx context.Context, orderings ...core.DBOrdering) ([]Place, error) {
	return svc.repo.QueryPlaces(ctx, svc.kind, orderings...)
}

func (svc *service) GetByID(ctx context.Context, id string) (Place, error) {
	return svc.repo.GetPlaceByID(ctx, svc.kind, core.CleanString(id, true /* lower */))
}

func (svc *service) Update(ctx context.Context, id string, up UpdatePlace) (Place, error) {
	p, err := svc.repo.GetPlaceByID(ctx, svc.kind, id)
	if err != nil {
		return Place{}, err
	}
	p.Name = up.Name
	p.Description = up.Description
	p.Street = up.Street
	p.Phone = up.Phone
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdatePlace(ctx, p)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeletePlace(ctx, svc.kind, id)
}
