package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecindario/barrios/core/comment"
	"github.com/vecindario/barrios/core/neighborhood"
	"github.com/vecindario/barrios/core/user"
)

func Test_neighborhoodApi(t *testing.T) {
	env := setup(t)
	ana := env.createUser(t, "ana", "ana@test.es", user.RoleUser)
	admin := env.createUser(t, "admin", "root@test.es", user.RoleAdmin)
	anaToken, adminToken := env.token(t, ana), env.token(t, admin)

	newNb := neighborhood.NewNeighborhood{Name: "Centro", Streets: []string{"Mayor", "Arenal"}, Description: "casco antiguo"}

	env.run(t, []httpTest{
		{name: "list auth required", path: "/v1/neighborhoods", wantCode: http.StatusUnauthorized, wantData: errMissingToken},
		{name: "list admin required", path: "/v1/neighborhoods", token: anaToken, wantCode: http.StatusForbidden},
		{name: "create admin required", method: http.MethodPost, path: "/v1/neighborhoods", token: anaToken, body: newNb,
			wantCode: http.StatusForbidden},
		{name: "create missing streets", method: http.MethodPost, path: "/v1/neighborhoods", token: adminToken,
			body: neighborhood.NewNeighborhood{Name: "Centro", Description: "casco antiguo"}, wantCode: http.StatusBadRequest},
		{name: "empty list", path: "/v1/neighborhoods", token: adminToken, wantCode: http.StatusOK, wantData: []interface{}{}},
	})

	rec := env.serve(t, http.MethodPost, "/v1/neighborhoods", adminToken, newNb)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var centro neighborhood.Neighborhood
	decode(t, rec, &centro)
	assert.Equal(t, []string{"Mayor", "Arenal"}, centro.Streets)
	assert.Equal(t, []string{}, centro.Comments)

	env.run(t, []httpTest{
		{name: "retrieve authed", path: "/v1/neighborhoods/" + centro.ID, token: anaToken, wantCode: http.StatusOK, wantData: centro},
		{name: "retrieve unknown", path: "/v1/neighborhoods/66151d0bcc0535e96a0e7aaa", token: anaToken, wantCode: http.StatusNotFound,
			wantData: httpErr{Error: "neighborhood not found"}},
		{name: "update admin required", method: http.MethodPut, path: "/v1/neighborhoods/" + centro.ID, token: anaToken,
			body: map[string]string{"name": "Sol"}, wantCode: http.StatusForbidden},
		{name: "update unknown", method: http.MethodPut, path: "/v1/neighborhoods/66151d0bcc0535e96a0e7aaa", token: adminToken,
			body: map[string]string{"name": "Sol"}, wantCode: http.StatusNotFound},
		{name: "delete admin required", method: http.MethodDelete, path: "/v1/neighborhoods/" + centro.ID, token: anaToken,
			wantCode: http.StatusForbidden},
	})

	t.Run("update", func(t *testing.T) {
		rec := env.serve(t, http.MethodPut, "/v1/neighborhoods/"+centro.ID, adminToken, map[string]string{"name": "Sol"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var nb neighborhood.Neighborhood
		decode(t, rec, &nb)
		assert.Equal(t, "Sol", nb.Name)
		assert.Equal(t, centro.Streets, nb.Streets)
		assert.Equal(t, centro.Description, nb.Description)
	})

	t.Run("add comment", func(t *testing.T) {
		path := "/v1/neighborhoods/" + centro.ID + "/comments"
		rec := env.serve(t, http.MethodPost, path, anaToken, neighborhood.AddComment{CommentID: "66151d0bcc0535e96a0e7aaa"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"comment_id": "comment does not exist"}`, rec.Body.String())

		rec = env.serve(t, http.MethodPost, "/v1/comments", anaToken, comment.NewComment{Text: "tranquilo", Neighborhood: centro.ID})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var cmt comment.Comment
		decode(t, rec, &cmt)

		rec = env.serve(t, http.MethodPost, "/v1/neighborhoods/66151d0bcc0535e96a0e7aaa/comments", anaToken, neighborhood.AddComment{CommentID: cmt.ID})
		assert.Equal(t, http.StatusNotFound, rec.Code)

		for i := 0; i < 2; i++ {
			rec = env.serve(t, http.MethodPost, path, anaToken, neighborhood.AddComment{CommentID: cmt.ID})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var nb neighborhood.Neighborhood
			decode(t, rec, &nb)
			assert.Equal(t, []string{cmt.ID}, nb.Comments)
		}
	})

	t.Run("delete all", func(t *testing.T) {
		rec := env.serve(t, http.MethodPost, "/v1/neighborhoods", adminToken, newNb)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = env.serve(t, http.MethodDelete, "/v1/neighborhoods/"+centro.ID, adminToken, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		rec = env.serve(t, http.MethodDelete, "/v1/neighborhoods/"+centro.ID, adminToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.serve(t, http.MethodDelete, "/v1/neighborhoods", adminToken, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		rec = env.serve(t, http.MethodGet, "/v1/neighborhoods", adminToken, nil)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}
