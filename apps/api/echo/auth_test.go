package echoapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/vecindario/barrios/apps/api/echo"
	"github.com/vecindario/barrios/core/user"
)

func Test_storedAccountState(t *testing.T) {
	env := setup(t)
	ana := env.createUser(t, "ana", "ana@test.es", user.RoleUser)
	admin := env.createUser(t, "admin", "root@test.es", user.RoleAdmin)
	demoted := env.createUser(t, "former", "former@test.es", user.RoleAdmin)
	gone := env.createUser(t, "gone", "gone@test.es", user.RoleAdmin)
	// tokens are issued before the accounts change
	anaToken, adminToken, demotedToken, goneToken := env.token(t, ana), env.token(t, admin), env.token(t, demoted), env.token(t, gone)

	ctx := context.Background()
	for _, usr := range []user.User{ana, admin} {
		usr.Blocked = true
		_, err := env.usrRepo.UpdateUser(ctx, usr)
		require.NoError(t, err)
	}
	demoted.Role = user.RoleUser
	_, err := env.usrRepo.UpdateUser(ctx, demoted)
	require.NoError(t, err)
	require.NoError(t, env.usrRepo.DeleteUser(ctx, gone.ID))

	blocked := httpErr{Error: "account blocked"}
	env.run(t, []httpTest{
		{name: "blocked admin cannot list users", path: "/v1/users", token: adminToken,
			wantCode: http.StatusForbidden, wantData: blocked},
		{name: "blocked admin cannot delete neighborhoods", method: http.MethodDelete, path: "/v1/neighborhoods", token: adminToken,
			wantCode: http.StatusForbidden, wantData: blocked},
		{name: "blocked admin cannot init stats", method: http.MethodPost, path: "/v1/recommendation/stats", token: adminToken,
			wantCode: http.StatusForbidden, wantData: blocked},
		{name: "blocked user cannot get recommendation", method: http.MethodPost, path: "/v1/recommendation", token: anaToken,
			body: RecommendationRequest{Responses: questionnaire("no")}, wantCode: http.StatusForbidden, wantData: blocked},
		{name: "blocked user cannot read self", path: "/v1/users/" + ana.ID, token: anaToken,
			wantCode: http.StatusForbidden, wantData: blocked},
		{name: "demoted admin token", path: "/v1/users", token: demotedToken,
			wantCode: http.StatusForbidden, wantData: httpErr{Error: "permission denied"}},
		{name: "demoted admin cannot read others", path: "/v1/users/" + ana.ID, token: demotedToken,
			wantCode: http.StatusNotFound},
		{name: "deleted admin token", path: "/v1/users", token: goneToken,
			wantCode: http.StatusUnauthorized},
	})
}
