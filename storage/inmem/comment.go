package inmemdb

import (
	"context"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/comment"
)

var commentOrderings = map[string]compareFunc[comment.Comment]{
	"created_at": func(a, b comment.Comment) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"updated_at": func(a, b comment.Comment) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

type commentRepository struct {
	db *commentTable
}

var _ comment.Repository = (*commentRepository)(nil)

func NewCommentRepository(db *DB) comment.Repository {
	return &commentRepository{db: db.comment}
}

func (repo *commentRepository) CreateComment(_ context.Context, cmt comment.Comment) (comment.Comment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cmt.ID = newID()
	stored := cmt
	repo.db.table[cmt.ID] = &stored
	return cmt, nil
}

func (repo *commentRepository) QueryComments(_ context.Context, orderings ...core.DBOrdering) ([]comment.Comment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	cmts := make([]comment.Comment, 0, len(repo.db.table))
	for _, cmt := range repo.db.table {
		cmts = append(cmts, *cmt)
	}
	sortBy(cmts, orderings, commentOrderings, func(c comment.Comment) string { return c.ID })
	return cmts, nil
}

func (repo *commentRepository) GetCommentByID(_ context.Context, id string) (comment.Comment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cmt, ok := repo.db.table[id]; ok {
		return *cmt, nil
	}
	return comment.Comment{}, comment.ErrNotFound
}

func (repo *commentRepository) UpdateComment(_ context.Context, cmt comment.Comment) (comment.Comment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[cmt.ID]
	if !ok {
		return comment.Comment{}, comment.ErrNotFound
	}
	orig.Text = cmt.Text
	orig.UpdatedAt = cmt.UpdatedAt
	return *orig, nil
}

func (repo *commentRepository) DeleteComment(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return comment.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
