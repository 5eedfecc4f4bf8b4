package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSessionRepository shares one session between every client pointed at
// the same Redis keys. Token and identity are written in one MULTI/EXEC and
// read with a single MGET.
type RedisSessionRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisSessionRepository(client *redis.Client, prefix string) *RedisSessionRepository {
	if prefix == "" {
		prefix = "storefront:session"
	}
	return &RedisSessionRepository{client: client, prefix: prefix}
}

func (r *RedisSessionRepository) TokenKey() string {
	return r.prefix + ":access_token"
}

func (r *RedisSessionRepository) UserKey() string {
	return r.prefix + ":user"
}

func (r *RedisSessionRepository) Load(ctx context.Context) (string, []byte, error) {
	values, err := r.client.MGet(ctx, r.TokenKey(), r.UserKey()).Result()
	if err != nil {
		return "", nil, fmt.Errorf("redis mget failed: %w", err)
	}

	token, _ := values[0].(string)
	var identity []byte
	if user, ok := values[1].(string); ok && user != "" {
		identity = []byte(user)
	}
	return token, identity, nil
}

func (r *RedisSessionRepository) Token(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.TokenKey()).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return token, nil
}

func (r *RedisSessionRepository) Save(ctx context.Context, token string, identity []byte) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.TokenKey(), token, 0)
		pipe.Set(ctx, r.UserKey(), string(identity), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session failed: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.TokenKey(), r.UserKey()).Err(); err != nil {
		return fmt.Errorf("redis delete session failed: %w", err)
	}
	return nil
}
