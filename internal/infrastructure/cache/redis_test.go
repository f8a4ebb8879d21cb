package cache

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_UnavailableIsMiss(t *testing.T) {
	r := NewRedisWithClient(nil, 0, log.New(io.Discard, "", 0))
	ctx := context.Background()

	var out []string
	hit, err := r.GetJSON(ctx, SearchKeyPrefix+"x", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, r.SetJSON(ctx, "k", []string{"a"}, time.Minute))
	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.InvalidateSearch(ctx))
	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)
	assert.NoError(t, r.Close())
}

func TestRedis_UnavailableGrantsLock(t *testing.T) {
	r := NewRedisWithClient(nil, 0, nil)
	ok, err := r.SetIfNotExists(context.Background(), FreshnessKeyPrefix+"go", "1", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, hit)
}
