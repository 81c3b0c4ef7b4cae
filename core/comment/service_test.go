package comment_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/comment"
	inmemdb "github.com/vecindario/barrios/storage/inmem"
)

const (
	centroID = "66151d0bcc0535e96a0e7aed"
	authorID = "66151d0bcc0535e96a0e7ccc"
)

type finder map[string]bool

func (f finder) Exists(_ context.Context, id string) (bool, error) {
	return f[id], nil
}

func TestService(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())
	svc := comment.NewService(inmemdb.NewCommentRepository(inmemdb.Open()), finder{centroID: true}, finder{authorID: true})

	tests := []struct {
		name      string
		nc        comment.NewComment
		wantField string
	}{
		{name: "unknown neighborhood", nc: comment.NewComment{Text: "hola", Neighborhood: "66151d0bcc0535e96a0e7000", Author: authorID}, wantField: "neighborhood"},
		{name: "unknown author", nc: comment.NewComment{Text: "hola", Neighborhood: centroID, Author: "66151d0bcc0535e96a0e7000"}, wantField: "author"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.nc)
			vErr, ok := err.(*core.ValidationError)
			require.True(t, ok, err)
			assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
		})
	}

	nc := comment.NewComment{Text: "  tranquilo y con parques ", Neighborhood: centroID}
	require.NoError(t, nc.Validate(validate))
	nc.Author = authorID
	cmt, err := svc.Create(ctx, nc)
	require.NoError(t, err)
	assert.Equal(t, "tranquilo y con parques", cmt.Text)
	assert.Equal(t, authorID, cmt.Author)

	found, err := svc.Exists(ctx, cmt.ID)
	require.NoError(t, err)
	assert.True(t, found)

	uc := comment.UpdateComment{Text: "ahora hay obras"}
	require.NoError(t, uc.Validate(validate))
	cmt, err = svc.Update(ctx, cmt.ID, uc)
	require.NoError(t, err)
	assert.Equal(t, "ahora hay obras", cmt.Text)
	assert.Equal(t, centroID, cmt.Neighborhood)

	uc = comment.UpdateComment{Text: "   "}
	assert.Error(t, uc.Validate(validate))

	cmts, err := svc.Query(ctx)
	require.NoError(t, err)
	assert.Equal(t, []comment.Comment{cmt}, cmts)

	require.NoError(t, svc.Delete(ctx, cmt.ID))
	_, err = svc.GetByID(ctx, cmt.ID)
	assert.True(t, core.IsNotFound(err))
}
