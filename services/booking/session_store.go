package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"washbook/models"
	"washbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	sessionKeyPrefix = "booking:session:"
	lockKeyPrefix    = "booking:lock:"

	// LockTTL bounds how long a crashed submission can hold a session.
	LockTTL = 30 * time.Second
)

// SessionStore persists booking sessions and their submit locks.
type SessionStore interface {
	Save(ctx context.Context, s *models.BookingSession) error
	// Get returns ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (*models.BookingSession, error)
	Delete(ctx context.Context, id string) error
	// Lock reports false when another submission holds the session.
	Lock(ctx context.Context, id string) (bool, error)
	Unlock(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions as JSON with a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl, logger: utils.GetLogger()}
}

func (r *RedisSessionStore) Save(ctx context.Context, s *models.BookingSession) error {
	s.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+s.ID, data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save booking session", zap.String("sessionId", s.ID), zap.Error(err))
		return fmt.Errorf("failed to save booking session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (*models.BookingSession, error) {
	key := sessionKeyPrefix + id
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}

	var s models.BookingSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking session: %w", err)
	}
	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		r.logger.Warn("Failed to refresh booking session TTL", zap.String("sessionId", id), zap.Error(err))
	}
	return &s, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKeyPrefix+id, lockKeyPrefix+id).Err()
}

func (r *RedisSessionStore) Lock(ctx context.Context, id string) (bool, error) {
	ok, err := r.client.SetNX(ctx, lockKeyPrefix+id, time.Now().UTC().Format(time.RFC3339), LockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to lock booking session: %w", err)
	}
	return ok, nil
}

func (r *RedisSessionStore) Unlock(ctx context.Context, id string) error {
	return r.client.Del(ctx, lockKeyPrefix+id).Err()
}
