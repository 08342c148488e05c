package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// SessionSweeper periodically purges expired sessions until its context ends.
type SessionSweeper struct {
	auth     AuthService
	interval time.Duration
	log      logrus.FieldLogger
}

func NewSessionSweeper(auth AuthService, interval time.Duration, log logrus.FieldLogger) *SessionSweeper {
	return &SessionSweeper{auth: auth, interval: interval, log: log}
}

// Run blocks until ctx is cancelled. Sweep failures are logged and retried on
// the next tick.
func (s *SessionSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := s.auth.SweepExpiredSessions(ctx)
			if err != nil {
				s.log.WithError(err).Warn("session sweep failed")
				continue
			}
			if n > 0 {
				s.log.WithField("removed", n).Debug("expired sessions removed")
			}
		}
	}
}
