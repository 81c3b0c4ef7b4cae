//go:build integration

package mongodb_test

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/comment"
	"github.com/vecindario/barrios/core/neighborhood"
	"github.com/vecindario/barrios/core/place"
	"github.com/vecindario/barrios/core/recommend"
	"github.com/vecindario/barrios/core/user"
	"github.com/vecindario/barrios/storage/mongodb"
)

func dockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

func openDB(t *testing.T) *mongodb.DB {
	t.Helper()
	if !dockerAvailable() {
		t.Skip("docker not available")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminating mongo container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	conf := &core.Config{Database: core.DatabaseConfig{
		URI:            fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
		Name:           "barrios_test",
		ConnectTimeout: 30 * time.Second,
	}}
	db, err := mongodb.Open(ctx, conf)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}

func TestMongoDB(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("users", func(t *testing.T) {
		repo := mongodb.NewUserRepository(db)
		usr, err := repo.CreateUser(ctx, user.User{
			Email:     "ana@example.com",
			Nickname:  "ana",
			Role:      user.RoleUser,
			Comments:  []string{},
			CreatedAt: now,
			UpdatedAt: now,
		})
		require.NoError(t, err)
		assert.Len(t, usr.ID, 24)

		_, err = repo.CreateUser(ctx, user.User{Email: "ana@example.com", Nickname: "other"})
		assert.Equal(t, user.ErrEmailExists, err)
		_, err = repo.CreateUser(ctx, user.User{Email: "other@example.com", Nickname: "ana"})
		assert.Equal(t, user.ErrNicknameExists, err)

		assert.Equal(t, user.ErrEmailExists, repo.CheckUniqueness(ctx, "ana@example.com", "x"))
		assert.Equal(t, user.ErrNicknameExists, repo.CheckUniqueness(ctx, "x@example.com", "ana"))
		assert.NoError(t, repo.CheckUniqueness(ctx, "ana@example.com", "ana", usr.ID))

		got, err := repo.GetUserByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, usr.ID, got.ID)

		ref := "5f5a4c7e9d3b2a1c0e8f7d6b"
		got, err = repo.AddUserRef(ctx, usr.ID, user.RefJobs, ref)
		require.NoError(t, err)
		got, err = repo.AddUserRef(ctx, usr.ID, user.RefJobs, ref)
		require.NoError(t, err)
		assert.Equal(t, []string{ref}, got.Jobs)

		got.Name = "Ana"
		got, err = repo.UpdateUser(ctx, got)
		require.NoError(t, err)
		assert.Equal(t, "Ana", got.Name)
		assert.Equal(t, []string{ref}, got.Jobs)

		_, err = repo.GetUserByID(ctx, "not-an-id")
		assert.Equal(t, user.ErrNotFound, err)
		require.NoError(t, repo.DeleteUser(ctx, usr.ID))
		assert.Equal(t, user.ErrNotFound, repo.DeleteUser(ctx, usr.ID))
	})

	t.Run("neighborhoods and comments", func(t *testing.T) {
		nbRepo := mongodb.NewNeighborhoodRepository(db)
		cmtRepo := mongodb.NewCommentRepository(db)

		nb, err := nbRepo.CreateNeighborhood(ctx, neighborhood.Neighborhood{
			Name: "Norte", Streets: []string{"Calle 1"}, Description: "quiet", CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)

		cmt, err := cmtRepo.CreateComment(ctx, comment.Comment{
			Text: "nice", Neighborhood: nb.ID, Author: "5f5a4c7e9d3b2a1c0e8f7d6b", CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)

		nb, err = nbRepo.AddNeighborhoodComment(ctx, nb.ID, cmt.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{cmt.ID}, nb.Comments)

		cmt.Text = "very nice"
		cmt, err = cmtRepo.UpdateComment(ctx, cmt)
		require.NoError(t, err)
		assert.Equal(t, "very nice", cmt.Text)

		nbs, err := nbRepo.QueryNeighborhoods(ctx, core.DBOrdering{Field: "name", Ascending: true})
		require.NoError(t, err)
		assert.Len(t, nbs, 1)

		n, err := nbRepo.DeleteAllNeighborhoods(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		_, err = nbRepo.GetNeighborhoodByID(ctx, nb.ID)
		assert.Equal(t, neighborhood.ErrNotFound, err)
	})

	t.Run("places", func(t *testing.T) {
		repo := mongodb.NewPlaceRepository(db)
		school, err := repo.CreatePlace(ctx, place.Place{Kind: place.KindSchool, Name: "Escuela", Street: "Calle 2", Phone: "555"})
		require.NoError(t, err)

		_, err = repo.GetPlaceByID(ctx, place.KindJob, school.ID)
		assert.Equal(t, place.ErrNotFound, err)

		got, err := repo.GetPlaceByID(ctx, place.KindSchool, school.ID)
		require.NoError(t, err)
		assert.Equal(t, place.KindSchool, got.Kind)
		assert.Equal(t, "555", got.Phone)
	})

	t.Run("counter", func(t *testing.T) {
		repo := mongodb.NewCounterRepository(db)
		assert.Equal(t, recommend.ErrCounterNotFound, repo.IncrementCounter(ctx, "5"))

		_, err := repo.CreateCounter(ctx, recommend.NewCounter())
		require.NoError(t, err)
		_, err = repo.CreateCounter(ctx, recommend.NewCounter())
		assert.Equal(t, recommend.ErrCounterExists, err)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, repo.IncrementCounter(ctx, "5"))
			}()
		}
		wg.Wait()

		counter, err := repo.GetCounter(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(20), counter.Counts["5"])
		assert.Equal(t, int64(20), counter.Total)

		require.NoError(t, repo.DeleteCounter(ctx))
		assert.Equal(t, recommend.ErrCounterNotFound, repo.DeleteCounter(ctx))
	})
}
