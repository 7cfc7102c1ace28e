package util

import (
	"context"
	"testing"
	"time"

	"widgetfactory/internal/app/store/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := NewRedisClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestRedisClient_SetGetRoundtrip(t *testing.T) {
	client, _ := setupRedis(t)
	ctx := context.Background()

	categories := []entity.ProductCategory{
		{ID: 1, Name: "Paint"},
		{ID: 2, Name: "Brushes", ParentID: ptrUint(1)},
	}

	require.NoError(t, client.SetCategories(ctx, categories, time.Hour))

	cached, err := client.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 2)
	assert.Equal(t, "Paint", cached[0].Name)
	require.NotNil(t, cached[1].ParentID)
	assert.Equal(t, uint(1), *cached[1].ParentID)
}

func TestRedisClient_GetCategories_Miss(t *testing.T) {
	client, _ := setupRedis(t)

	cached, err := client.GetCategories(context.Background())

	// Промах кеша не ошибка
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisClient_DeleteCategories(t *testing.T) {
	client, _ := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, client.SetCategories(ctx, []entity.ProductCategory{{ID: 1, Name: "Paint"}}, time.Hour))
	require.NoError(t, client.DeleteCategories(ctx))

	cached, err := client.GetCategories(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisClient_TTLExpires(t *testing.T) {
	client, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, client.SetCategories(ctx, []entity.ProductCategory{{ID: 1, Name: "Paint"}}, time.Minute))

	mr.FastForward(2 * time.Minute)

	cached, err := client.GetCategories(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestNewRedisClient_ConnectionFailure(t *testing.T) {
	_, err := NewRedisClient("127.0.0.1:1", "", 0)
	assert.Error(t, err)
}

func ptrUint(v uint) *uint {
	return &v
}
