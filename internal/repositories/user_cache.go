package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const userCacheKey = "user-cache:%s" // <email>

func UserCacheKey(email string) string {
	return fmt.Sprintf(userCacheKey, email)
}

// UserCache caches users by email for the authentication path.
// Get returns (nil, nil) on a miss.
type UserCache interface {
	Get(ctx context.Context, email string) (*models.User, error)
	Set(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, email string) error
}

// RedisUserCache stores users as JSON in Redis.
type RedisUserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisUserCache(rdb *redis.Client, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{rdb: rdb, ttl: ttl}
}

// cachedUser mirrors models.User including the fields hidden from JSON responses.
type cachedUser struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Password      string    `json:"password"`
	Name          string    `json:"name"`
	Bio           string    `json:"bio"`
	FavoriteGenre string    `json:"favorite_genre"`
	AvatarURL     string    `json:"avatar_url"`
	CreatedAt     time.Time `json:"created_at"`
}

func (c *RedisUserCache) Get(ctx context.Context, email string) (*models.User, error) {
	value, err := c.rdb.Get(ctx, UserCacheKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cached cachedUser
	if err := json.Unmarshal([]byte(value), &cached); err != nil {
		return nil, err
	}
	user := models.User(cached)
	return &user, nil
}

func (c *RedisUserCache) Set(ctx context.Context, user *models.User) error {
	value, err := json.Marshal(cachedUser(*user))
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, UserCacheKey(user.Email), value, c.ttl).Err()
}

func (c *RedisUserCache) Delete(ctx context.Context, email string) error {
	return c.rdb.Del(ctx, UserCacheKey(email)).Err()
}

// NoopUserCache is used when Redis is not configured.
type NoopUserCache struct{}

func (NoopUserCache) Get(context.Context, string) (*models.User, error) { return nil, nil }
func (NoopUserCache) Set(context.Context, *models.User) error           { return nil }
func (NoopUserCache) Delete(context.Context, string) error              { return nil }
