package inmemdb

import (
	"context"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/neighborhood"
)

var neighborhoodOrderings = map[string]compareFunc[neighborhood.Neighborhood]{
	"name":       func(a, b neighborhood.Neighborhood) int { return compareStrings(a.Name, b.Name) },
	"created_at": func(a, b neighborhood.Neighborhood) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

type neighborhoodRepository struct {
	db *neighborhoodTable
}

var _ neighborhood.Repository = (*neighborhoodRepository)(nil)

func NewNeighborhoodRepository(db *DB) neighborhood.Repository {
	return &neighborhoodRepository{db: db.neighborhood}
}

func copyNeighborhood(nb neighborhood.Neighborhood) neighborhood.Neighborhood {
	nb.Streets = copyStrings(nb.Streets)
	nb.Comments = copyStrings(nb.Comments)
	return nb
}

func (repo *neighborhoodRepository) CreateNeighborhood(_ context.Context, nb neighborhood.Neighborhood) (neighborhood.Neighborhood, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	nb.ID = newID()
	stored := copyNeighborhood(nb)
	repo.db.table[nb.ID] = &stored
	return nb, nil
}

func (repo *neighborhoodRepository) QueryNeighborhoods(_ context.Context, orderings ...core.DBOrdering) ([]neighborhood.Neighborhood, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	nbs := make([]neighborhood.Neighborhood, 0, len(repo.db.table))
	for _, nb := range repo.db.table {
		nbs = append(nbs, copyNeighborhood(*nb))
	}
	sortBy(nbs, orderings, neighborhoodOrderings, func(nb neighborhood.Neighborhood) string { return nb.ID })
	return nbs, nil
}

func (repo *neighborhoodRepository) GetNeighborhoodByID(_ context.Context, id string) (neighborhood.Neighborhood, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if nb, ok := repo.db.table[id]; ok {
		return copyNeighborhood(*nb), nil
	}
	return neighborhood.Neighborhood{}, neighborhood.ErrNotFound
}

func (repo *neighborhoodRepository) UpdateNeighborhood(_ context.Context, nb neighborhood.Neighborhood) (neighborhood.Neighborhood, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[nb.ID]
	if !ok {
		return neighborhood.Neighborhood{}, neighborhood.ErrNotFound
	}
	nb.Comments = orig.Comments
	nb.CreatedAt = orig.CreatedAt
	stored := copyNeighborhood(nb)
	repo.db.table[nb.ID] = &stored
	return copyNeighborhood(stored), nil
}

func (repo *neighborhoodRepository) AddNeighborhoodComment(_ context.Context, id, commentID string) (neighborhood.Neighborhood, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	nb, ok := repo.db.table[id]
	if !ok {
		return neighborhood.Neighborhood{}, neighborhood.ErrNotFound
	}
	if !nb.HasComment(commentID) {
		nb.Comments = append(nb.Comments, commentID)
	}
	return copyNeighborhood(*nb), nil
}

func (repo *neighborhoodRepository) DeleteNeighborhood(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return neighborhood.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *neighborhoodRepository) DeleteAllNeighborhoods(_ context.Context) (int64, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n := int64(len(repo.db.table))
	repo.db.table = make(map[string]*neighborhood.Neighborhood)
	return n, nil
}
