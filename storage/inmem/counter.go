package inmemdb

import (
	"context"

	"github.com/vecindario/barrios/core/recommend"
)

type counterRepository struct {
	db *counterTable
}

var _ recommend.CounterRepository = (*counterRepository)(nil)

func NewCounterRepository(db *DB) recommend.CounterRepository {
	return &counterRepository{db: db.counter}
}

func copyCounter(c recommend.Counter) recommend.Counter {
	counts := make(map[string]int64, len(c.Counts))
	for id, n := range c.Counts {
		counts[id] = n
	}
	c.Counts = counts
	return c
}

func (repo *counterRepository) GetCounter(_ context.Context) (recommend.Counter, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.db.counter == nil {
		return recommend.Counter{}, recommend.ErrCounterNotFound
	}
	return copyCounter(*repo.db.counter), nil
}

func (repo *counterRepository) CreateCounter(_ context.Context, counter recommend.Counter) (recommend.Counter, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.db.counter != nil {
		return recommend.Counter{}, recommend.ErrCounterExists
	}
	stored := copyCounter(counter)
	repo.db.counter = &stored
	return copyCounter(stored), nil
}

func (repo *counterRepository) IncrementCounter(_ context.Context, neighborhood string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.db.counter == nil {
		return recommend.ErrCounterNotFound
	}
	repo.db.counter.Counts[neighborhood]++
	repo.db.counter.Total++
	return nil
}

func (repo *counterRepository) DeleteCounter(_ context.Context) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.db.counter == nil {
		return recommend.ErrCounterNotFound
	}
	repo.db.counter = nil
	return nil
}
