package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, "cogtrain:"), mr
}

func TestRedisPutGet(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedis(t)

	require.NoError(t, r.Put(ctx, "/usuarios/1234/", doc{Name: "Ana", Age: 71}))
	raw, err := mr.Get("cogtrain:usuarios/1234")
	require.NoError(t, err)
	assert.JSONEq(t, `{"nombre":"Ana","edad":71}`, raw)

	var got doc
	found, err := r.Get(ctx, "usuarios/1234", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc{Name: "Ana", Age: 71}, got)

	found, err = r.Get(ctx, "usuarios/9999", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisGetAssemblesChildren(t *testing.T) {
	ctx := context.Background()
	r, _ := newRedis(t)

	require.NoError(t, r.Put(ctx, "usuarios/1234", doc{Name: "Ana", Age: 71}))
	require.NoError(t, r.Put(ctx, "usuarios/5678", doc{Name: "Beto", Age: 68}))
	require.NoError(t, r.Write(ctx, "calculo/1234/r1", map[string]int{"errores": 2}))
	require.NoError(t, r.Write(ctx, "calculo/1234/r2", map[string]int{"errores": 0}))

	var users map[string]doc
	found, err := r.Get(ctx, "usuarios", &users)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]doc{
		"1234": {Name: "Ana", Age: 71},
		"5678": {Name: "Beto", Age: 68},
	}, users)

	var results map[string]map[string]map[string]int
	found, err = r.Get(ctx, "calculo", &results)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, results["1234"]["r1"]["errores"])
	assert.Len(t, results["1234"], 2)

	// a sibling sharing the prefix is not a child
	require.NoError(t, r.Put(ctx, "usuarios2/1", doc{Name: "X"}))
	users = nil
	_, err = r.Get(ctx, "usuarios", &users)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	found, err = r.Get(ctx, "espacial", &results)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisUnavailable(t *testing.T) {
	r, mr := newRedis(t)
	mr.Close()

	_, err := r.Get(context.Background(), "usuarios/1234", &doc{})
	assert.ErrorContains(t, err, "redis store: get")
	assert.Error(t, r.Put(context.Background(), "usuarios/1234", doc{}))
}
