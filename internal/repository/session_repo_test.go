package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"clubhouse/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock)
	now := time.Now()
	s := &model.Session{ID: "sid", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sessions (id, user_id, created_at, expires_at)`)).
		WithArgs("sid", int64(1), s.CreatedAt, s.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Find(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM sessions WHERE id = $1`)).
		WithArgs("sid").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "created_at", "expires_at"}).
			AddRow("sid", int64(9), now, now.Add(time.Hour)))

	s, err := repo.Find(context.Background(), "sid")

	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(9), s.UserID)
}

func TestSessionRepository_Find_Unknown(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM sessions WHERE id = $1`)).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	s, err := repo.Find(context.Background(), "nope")

	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestSessionRepository_Delete_Idempotent(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE id = $1`)).
		WithArgs("gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), "gone"))
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE expires_at <= $1`)).
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := repo.DeleteExpired(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestSessionRepository_DeleteExpired_Error(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE expires_at <= $1`)).
		WithArgs(now).
		WillReturnError(errors.New("locked"))

	_, err := repo.DeleteExpired(context.Background(), now)

	assert.Error(t, err)
}

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisSessionRepository_KeyNamespace(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("abc"))
}

func TestRedisSessionRepository_WrapsErrors(t *testing.T) {
	repo := NewRedisSessionRepository(unreachableRedis(t))
	ctx := context.Background()
	now := time.Now()

	err := repo.Create(ctx, &model.Session{ID: "sid", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)})
	assert.ErrorContains(t, err, "failed to create session")

	_, err = repo.Find(ctx, "sid")
	assert.ErrorContains(t, err, "failed to find session")

	err = repo.Delete(ctx, "sid")
	assert.ErrorContains(t, err, "failed to delete session")
}

func TestRedisSessionRepository_DeleteExpiredIsNoop(t *testing.T) {
	repo := NewRedisSessionRepository(unreachableRedis(t))

	n, err := repo.DeleteExpired(context.Background(), time.Now())

	assert.NoError(t, err)
	assert.Zero(t, n)
}
