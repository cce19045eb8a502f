package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"janken/game"
)

// RedisStore keeps each tally as a JSON string value under its key.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	slog.Info("connected to Redis", "tag", "storage", "addr", addr)
	return &RedisStore{client: client}, nil
}

// Load returns the tally stored under key.
func (s *RedisStore) Load(ctx context.Context, key string) (game.Tally, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return game.Tally{}, false, nil
		}
		return game.Tally{}, false, err
	}
	t, err := decodeTally(data)
	if err != nil {
		return game.Tally{}, false, err
	}
	return t, true, nil
}

// Save stores tally under key without expiry.
func (s *RedisStore) Save(ctx context.Context, key string, tally game.Tally) error {
	data, err := encodeTally(tally)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

// Close closes the client.
func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
