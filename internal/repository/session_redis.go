package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"clubhouse/internal/model"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type redisSessionRepository struct {
	client redis.UniversalClient
}

// NewRedisSessionRepository creates a SessionRepository backed by Redis hashes.
// Keys expire on their own, so DeleteExpired has nothing to do.
func NewRedisSessionRepository(client redis.UniversalClient) SessionRepository {
	return &redisSessionRepository{client: client}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *redisSessionRepository) Create(ctx context.Context, s *model.Session) error {
	key := sessionKey(s.ID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"user_id", s.UserID,
			"created_at", s.CreatedAt.UnixMilli(),
			"expires_at", s.ExpiresAt.UnixMilli(),
		)
		pipe.ExpireAt(ctx, key, s.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) Find(ctx context.Context, id string) (*model.Session, error) {
	fields, err := r.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	userID, err := strconv.ParseInt(fields["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	createdMs, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	expiresMs, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}

	return &model.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: time.UnixMilli(createdMs),
		ExpiresAt: time.UnixMilli(expiresMs),
	}, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
