package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore keeps counters in Redis. Each write refreshes the key's TTL so
// a counter lives as long as the session that owns it.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func visitKey(sessionID string) string {
	return fmt.Sprintf("session:%s:num_visits", sessionID)
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (int, error) {
	visits, err := s.client.Get(ctx, visitKey(sessionID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get visits: %w", err)
	}
	return visits, nil
}

func (s *redisStore) Set(ctx context.Context, sessionID string, visits int) error {
	if err := s.client.SetEx(ctx, visitKey(sessionID), visits, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set visits: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, visitKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete visits: %w", err)
	}
	return nil
}
