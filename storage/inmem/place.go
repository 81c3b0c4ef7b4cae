package inmemdb

import (
	"context"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/place"
)

var placeOrderings = map[string]compareFunc[place.Place]{
	"name":       func(a, b place.Place) int { return compareStrings(a.Name, b.Name) },
	"street":     func(a, b place.Place) int { return compareStrings(a.Street, b.Street) },
	"created_at": func(a, b place.Place) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

type placeRepository struct {
	db *placeTable
}

var _ place.Repository = (*placeRepository)(nil)

func NewPlaceRepository(db *DB) place.Repository {
	return &placeRepository{db: db.place}
}

func (repo *placeRepository) CreatePlace(_ context.Context, p place.Place) (place.Place, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	table, ok := repo.db.table[p.Kind]
	if !ok {
		return place.Place{}, place.ErrNotFound
	}
	p.ID = newID()
	stored := p
	table[p.ID] = &stored
	return p, nil
}

func (repo *placeRepository) QueryPlaces(_ context.Context, kind place.Kind, orderings ...core.DBOrdering) ([]place.Place, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	table := repo.db.table[kind]
	places := make([]place.Place, 0, len(table))
	for _, p := range table {
		places = append(places, *p)
	}
	sortBy(places, orderings, placeOrderings, func(p place.Place) string { return p.ID })
	return places, nil
}

func (repo *placeRepository) GetPlaceByID(_ context.Context, kind place.Kind, id string) (place.Place, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[kind][id]; ok {
		return *p, nil
	}
	return place.Place{}, place.ErrNotFound
}

func (repo *placeRepository) UpdatePlace(_ context.Context, p place.Place) (place.Place, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[p.Kind][p.ID]
	if !ok {
		return place.Place{}, place.ErrNotFound
	}
	p.CreatedAt = orig.CreatedAt
	*orig = p
	return p, nil
}

func (repo *placeRepository) DeletePlace(_ context.Context, kind place.Kind, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[kind][id]; !ok {
		return place.ErrNotFound
	}
	delete(repo.db.table[kind], id)
	return nil
}
