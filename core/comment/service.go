package comment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vecindario/barrios/core"
)

var (
	// errors
	ErrNotFound            = core.NewNotFoundError("comment not found")
	ErrUnknownNeighborhood = errors.New("neighborhood does not exist")
	ErrUnknownAuthor       = errors.New("author does not exist")
)

type (
	Repository interface {
		CreateComment(ctx context.Context, cmt Comment) (Comment, error)
		QueryComments(ctx context.Context, orderings ...core.DBOrdering) ([]Comment, error)
		GetCommentByID(ctx context.Context, id string) (Comment, error)
		UpdateComment(ctx context.Context, cmt Comment) (Comment, error)
		DeleteComment(ctx context.Context, id string) error
	}

	// Finder reports whether an object exists. Neighborhoods and users are looked up through it.
	Finder interface {
		Exists(ctx context.Context, id string) (bool, error)
	}

	Service interface {
		Create(ctx context.Context, nc NewComment) (Comment, error)
		Query(ctx context.Context, orderings ...core.DBOrdering) ([]Comment, error)
		GetByID(ctx context.Context, id string) (Comment, error)
		Exists(ctx context.Context, id string) (bool, error)
		Update(ctx context.Context, id string, uc UpdateComment) (Comment, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo          Repository
		neighborhoods Finder
		users         Finder
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, neighborhoods, users Finder) Service {
	return &service{repo: repo, neighborhoods: neighborhoods, users: users}
}

func (svc *service) Create(ctx context.Context, nc NewComment) (Comment, error) {
	found, err := svc.neighborhoods.Exists(ctx, nc.Neighborhood)
	if err != nil {
		return Comment{}, errors.Wrap(err, "checking neighborhood")
	}
	if !found {
		return Comment{}, core.NewValidationError(
			ErrUnknownNeighborhood,
			core.FieldError{Field: "neighborhood", Error: ErrUnknownNeighborhood.Error()},
		)
	}

	if found, err = svc.users.Exists(ctx, nc.Author); err != nil {
		return Comment{}, errors.Wrap(err, "checking author")
	}
	if !found {
		return Comment{}, core.NewValidationError(
			ErrUnknownAuthor,
			core.FieldError{Field: "author", Error: ErrUnknownAuthor.Error()},
		)
	}

	now := time.Now().UTC()
	return svc.repo.CreateComment(ctx, Comment{
		Text:         nc.Text,
		Neighborhood: nc.Neighborhood,
		Author:       nc.Author,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (svc *service) Query(ctx context.Context, orderings ...core.DBOrdering) ([]Comment, error) {
	return svc.repo.QueryComments(ctx, orderings...)
}

func (svc *service) GetByID(ctx context.Context, id string) (Comment, error) {
	return svc.repo.GetCommentByID(ctx, core.CleanString(id, true /* lower */))
}

func (svc *service) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := svc.GetByID(ctx, id); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (svc *service) Update(ctx context.Context, id string, uc UpdateComment) (Comment, error) {
	cmt, err := svc.repo.GetCommentByID(ctx, id)
	if err != nil {
		return Comment{}, err
	}
	cmt.Text = uc.Text
	cmt.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateComment(ctx, cmt)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteComment(ctx, id)
}
