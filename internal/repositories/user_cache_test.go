package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/anonto42/movieshare/backend/internal/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisUserCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cache := repositories.NewRedisUserCache(rdb, time.Minute)
	user := &models.User{
		ID:        7,
		Email:     "alice@example.com",
		Username:  "alice",
		Password:  "$2a$10$hash",
		Bio:       "x",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	t.Run("Miss", func(t *testing.T) {
		cached, err := cache.Get(ctx, user.Email)
		require.NoError(t, err)
		assert.Nil(t, cached)
	})

	t.Run("Hit keeps the password hash", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, user))
		assert.True(t, mr.Exists(repositories.UserCacheKey(user.Email)))

		cached, err := cache.Get(ctx, user.Email)
		require.NoError(t, err)
		require.NotNil(t, cached)
		assert.Equal(t, user.ID, cached.ID)
		assert.Equal(t, user.Password, cached.Password)
		assert.Equal(t, user.Bio, cached.Bio)
		assert.True(t, user.CreatedAt.Equal(cached.CreatedAt))
	})

	t.Run("Expires", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, user))
		mr.FastForward(2 * time.Minute)

		cached, err := cache.Get(ctx, user.Email)
		require.NoError(t, err)
		assert.Nil(t, cached)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, user))
		require.NoError(t, cache.Delete(ctx, user.Email))

		cached, err := cache.Get(ctx, user.Email)
		require.NoError(t, err)
		assert.Nil(t, cached)
	})
}

func TestNoopUserCache(t *testing.T) {
	var cache repositories.UserCache = repositories.NoopUserCache{}
	require.NoError(t, cache.Set(context.Background(), &models.User{Email: "a@example.com"}))

	cached, err := cache.Get(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Nil(t, cached)
}
