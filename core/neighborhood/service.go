package neighborhood

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vecindario/barrios/core"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("neighborhood not found")
	ErrUnknownComment = errors.New("comment does not exist")
)

type (
	Repository interface {
		CreateNeighborhood(ctx context.Context, nb Neighborhood) (Neighborhood, error)
		QueryNeighborhoods(ctx context.Context, orderings ...core.DBOrdering) ([]Neighborhood, error)
		GetNeighborhoodByID(ctx context.Context, id string) (Neighborhood, error)
		UpdateNeighborhood(ctx context.Context, nb Neighborhood) (Neighborhood, error)
		AddNeighborhoodComment(ctx context.Context, id, commentID string) (Neighborhood, error)
		DeleteNeighborhood(ctx context.Context, id string) error
		DeleteAllNeighborhoods(ctx context.Context) (int64, error)
	}

	// CommentFinder reports whether a comment exists.
	CommentFinder interface {
		Exists(ctx context.Context, id string) (bool, error)
	}

	Service interface {
		Create(ctx context.Context, nn NewNeighborhood) (Neighborhood, error)
		Query(ctx context.Context, orderings ...core.DBOrdering) ([]Neighborhood, error)
		GetByID(ctx context.Context, id string) (Neighborhood, error)
		Exists(ctx context.Context, id string) (bool, error)
		Update(ctx context.Context, id string, un UpdateNeighborhood) (Neighborhood, error)
		AddComment(ctx context.Context, id string, ac AddComment) (Neighborhood, error)
		Delete(ctx context.Context, id string) error
		DeleteAll(ctx context.Context) (int64, error)
	}

	service struct {
		repo     Repository
		comments CommentFinder
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, comments CommentFinder) Service {
	return &service{repo: repo, comments: comments}
}

func (svc *service) Create(ctx context.Context, nn NewNeighborhood) (Neighborhood, error) {
	now := time.Now().UTC()
	return svc.repo.CreateNeighborhood(ctx, Neighborhood{
		Name:        nn.Name,
		Streets:     nn.Streets,
		Description: nn.Description,
		Comments:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (svc *service) Query(ctx context.Context, orderings ...core.DBOrdering) ([]Neighborhood, error) {
	return svc.repo.QueryNeighborhoods(ctx, orderings...)
}

func (svc *service) GetByID(ctx context.Context, id string) (Neighborhood, error) {
	return svc.repo.GetNeighborhoodByID(ctx, core.CleanString(id, true /* lower */))
}

func (svc *service) Exists(ctx context.Context, id string) (bool, error) {
	return Finder{Repo: svc.repo}.Exists(ctx, id)
}

func (svc *service) Update(ctx context.Context, id string, un UpdateNeighborhood) (Neighborhood, error) {
	nb, err := svc.repo.GetNeighborhoodByID(ctx, id)
	if err != nil {
		return Neighborhood{}, err
	}
	nb.Name = un.Name
	nb.Streets = un.Streets
	nb.Description = un.Description
	nb.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateNeighborhood(ctx, nb)
}

func (svc *service) AddComment(ctx context.Context, id string, ac AddComment) (Neighborhood, error) {
	nb, err := svc.repo.GetNeighborhoodByID(ctx, id)
	if err != nil {
		return Neighborhood{}, err
	}
	if nb.HasComment(ac.CommentID) {
		return nb, nil
	}

	found, err := svc.comments.Exists(ctx, ac.CommentID)
	if err != nil {
		return Neighborhood{}, errors.Wrap(err, "checking comment")
	}
	if !found {
		return Neighborhood{}, core.NewValidationError(
			ErrUnknownComment,
			core.FieldError{Field: "comment_id", Error: ErrUnknownComment.Error()},
		)
	}
	return svc.repo.AddNeighborhoodComment(ctx, id, ac.CommentID)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteNeighborhood(ctx, id)
}

func (svc *service) DeleteAll(ctx context.Context) (int64, error) {
	return svc.repo.DeleteAllNeighborhoods(ctx)
}

// Finder checks that a neighborhood exists straight from the repository.
// Services that neighborhoods depend on use it to look neighborhoods up.
type Finder struct {
	Repo Repository
}

func (f Finder) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := f.Repo.GetNeighborhoodByID(ctx, core.CleanString(id, true /* lower */)); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
