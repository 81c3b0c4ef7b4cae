package neighborhood_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/comment"
	"github.com/vecindario/barrios/core/neighborhood"
	inmemdb "github.com/vecindario/barrios/storage/inmem"
)

type finder map[string]bool

func (f finder) Exists(_ context.Context, id string) (bool, error) {
	return f[id], nil
}

func setup() (neighborhood.Service, *validator.Validate) {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())
	return neighborhood.NewService(
		inmemdb.NewNeighborhoodRepository(inmemdb.Open()),
		finder{"66151d0bcc0535e96a0e7aaa": true},
	), validate
}

func TestNewNeighborhood_Validate(t *testing.T) {
	_, validate := setup()

	nn := neighborhood.NewNeighborhood{Name: " Centro ", Streets: []string{" Mayor ", "", "Arenal"}, Description: "casco antiguo"}
	require.NoError(t, nn.Validate(validate))
	assert.Equal(t, "Centro", nn.Name)
	assert.Equal(t, []string{"Mayor", "Arenal"}, nn.Streets)

	nn = neighborhood.NewNeighborhood{Name: "Centro", Streets: []string{" "}, Description: "casco antiguo"}
	assert.Error(t, nn.Validate(validate))
	nn = neighborhood.NewNeighborhood{Name: "Centro", Streets: []string{"Mayor"}}
	assert.Error(t, nn.Validate(validate))
}

func TestService(t *testing.T) {
	ctx := context.Background()
	svc, validate := setup()

	centro, err := svc.Create(ctx, neighborhood.NewNeighborhood{Name: "Centro", Streets: []string{"Mayor"}, Description: "casco antiguo"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, neighborhood.NewNeighborhood{Name: "Retiro", Streets: []string{"Alcalá"}, Description: "parque"})
	require.NoError(t, err)

	un := neighborhood.UpdateNeighborhood{Description: "el centro"}
	require.NoError(t, un.Validate(centro, validate))
	centro, err = svc.Update(ctx, centro.ID, un)
	require.NoError(t, err)
	assert.Equal(t, "Centro", centro.Name)
	assert.Equal(t, []string{"Mayor"}, centro.Streets)
	assert.Equal(t, "el centro", centro.Description)

	// comments must exist
	_, err = svc.AddComment(ctx, centro.ID, neighborhood.AddComment{CommentID: "66151d0bcc0535e96a0e7bbb"})
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok, err)
	assert.Equal(t, "comment_id", vErr.Fields[0].Field)

	centro, err = svc.AddComment(ctx, centro.ID, neighborhood.AddComment{CommentID: "66151d0bcc0535e96a0e7aaa"})
	require.NoError(t, err)
	centro, err = svc.AddComment(ctx, centro.ID, neighborhood.AddComment{CommentID: "66151d0bcc0535e96a0e7aaa"})
	require.NoError(t, err)
	assert.Equal(t, []string{"66151d0bcc0535e96a0e7aaa"}, centro.Comments)

	_, err = svc.AddComment(ctx, "000000000000000000000000", neighborhood.AddComment{CommentID: "66151d0bcc0535e96a0e7aaa"})
	assert.True(t, core.IsNotFound(err))

	nbs, err := svc.Query(ctx, core.DBOrdering{Field: "name"})
	require.NoError(t, err)
	require.Len(t, nbs, 2)
	assert.Equal(t, "Retiro", nbs[0].Name)

	require.NoError(t, svc.Delete(ctx, centro.ID))
	found, err := svc.Exists(ctx, centro.ID)
	require.NoError(t, err)
	assert.False(t, found)

	n, err := svc.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	nbs, err = svc.Query(ctx)
	require.NoError(t, err)
	assert.Empty(t, nbs)
}

func TestService_wiredWithComments(t *testing.T) {
	ctx := context.Background()
	db := inmemdb.Open()

	nbRepo := inmemdb.NewNeighborhoodRepository(db)
	cmtSvc := comment.NewService(
		inmemdb.NewCommentRepository(db),
		neighborhood.Finder{Repo: nbRepo},
		finder{"66151d0bcc0535e96a0e7ccc": true},
	)
	nbSvc := neighborhood.NewService(nbRepo, cmtSvc)

	nb, err := nbSvc.Create(ctx, neighborhood.NewNeighborhood{Name: "Centro", Streets: []string{"Mayor"}, Description: "casco antiguo"})
	require.NoError(t, err)
	cmt, err := cmtSvc.Create(ctx, comment.NewComment{Text: "muy ruidoso", Neighborhood: nb.ID, Author: "66151d0bcc0535e96a0e7ccc"})
	require.NoError(t, err)

	nb, err = nbSvc.AddComment(ctx, nb.ID, neighborhood.AddComment{CommentID: cmt.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{cmt.ID}, nb.Comments)
}
