package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type countingAuth struct {
	AuthService
	calls atomic.Int32
	err   error
}

func (c *countingAuth) SweepExpiredSessions(context.Context) (int64, error) {
	c.calls.Add(1)
	return 1, c.err
}

func TestSessionSweeper_RunsUntilCancelled(t *testing.T) {
	logger, _ := test.NewNullLogger()
	auth := &countingAuth{}
	sweeper := NewSessionSweeper(auth, 5*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Run(ctx) }()

	assert.Eventually(t, func() bool { return auth.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestSessionSweeper_KeepsGoingAfterError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	auth := &countingAuth{err: errors.New("db down")}
	sweeper := NewSessionSweeper(auth, 5*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = sweeper.Run(ctx) }()

	assert.Eventually(t, func() bool { return auth.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.NotEmpty(t, hook.AllEntries())
}
