package recommend

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vecindario/barrios/core"
)

// CounterID identifies the single usage counter record.
const CounterID = "recommendations"

var (
	// errors
	ErrCounterNotFound     = core.NewNotFoundError("recommendation counter not found")
	ErrCounterExists       = errors.New("recommendation counter already exists")
	ErrUnknownNeighborhood = errors.New("unknown neighborhood")
)

// Counter records how many times each neighborhood was recommended.
type Counter struct {
	ID     string           `json:"id"`
	Counts map[string]int64 `json:"counts"`
	Total  int64            `json:"total"`
}

type (
	CounterRepository interface {
		GetCounter(ctx context.Context) (Counter, error)
		// CreateCounter returns ErrCounterExists if the record is already there.
		CreateCounter(ctx context.Context, counter Counter) (Counter, error)
		// IncrementCounter adds one to the neighborhood count and to the total,
		// returning ErrCounterNotFound when there is no record.
		IncrementCounter(ctx context.Context, neighborhood string) error
		DeleteCounter(ctx context.Context) error
	}

	Service interface {
		Recommend(answers []string) Result
		RecordRecommendation(ctx context.Context, neighborhood string) error
		GetCounter(ctx context.Context) (Counter, error)
		InitCounter(ctx context.Context) (Counter, error)
		DeleteCounter(ctx context.Context) error
	}

	service struct {
		repo CounterRepository
	}
)

var _ Service = (*service)(nil)

func NewService(repo CounterRepository) Service {
	return &service{repo: repo}
}

func (svc *service) Recommend(answers []string) Result {
	res := Recommend(answers)
	recommendationsTotal.WithLabelValues(res.Outcome.String()).Inc()
	return res
}

func (svc *service) RecordRecommendation(ctx context.Context, neighborhood string) error {
	if !IsKnownNeighborhood(neighborhood) {
		counterUpdateErrors.Inc()
		return ErrUnknownNeighborhood
	}
	if err := svc.repo.IncrementCounter(ctx, neighborhood); err != nil {
		counterUpdateErrors.Inc()
		return err
	}
	return nil
}

func (svc *service) GetCounter(ctx context.Context) (Counter, error) {
	return svc.repo.GetCounter(ctx)
}

func (svc *service) InitCounter(ctx context.Context) (Counter, error) {
	return svc.repo.CreateCounter(ctx, NewCounter())
}

func (svc *service) DeleteCounter(ctx context.Context) error {
	return svc.repo.DeleteCounter(ctx)
}

// NewCounter returns an empty counter with a zero entry for every neighborhood of the tree.
func NewCounter() Counter {
	counts := make(map[string]int64, len(defaultNeighborhoods))
	for _, id := range defaultNeighborhoods {
		counts[id] = 0
	}
	return Counter{ID: CounterID, Counts: counts}
}
