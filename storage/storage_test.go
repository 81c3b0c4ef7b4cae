package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/recommend"
)

func TestOpen_memory(t *testing.T) {
	ctx := context.Background()
	repos, err := Open(ctx, &core.Config{Storage: core.StorageMemory})
	require.NoError(t, err)
	defer func() { assert.NoError(t, repos.Close(ctx)) }()

	_, err = repos.Counter.CreateCounter(ctx, recommend.NewCounter())
	require.NoError(t, err)
	counter, err := repos.Counter.GetCounter(ctx)
	require.NoError(t, err)
	assert.Equal(t, recommend.CounterID, counter.ID)
}

func TestOpen_unknown(t *testing.T) {
	_, err := Open(context.Background(), &core.Config{Storage: "postgres"})
	assert.EqualError(t, err, `unknown storage "postgres"`)
}
