package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// RetryingUnitOfWork re-runs a whole transaction when SQLite reports the
// database as busy or locked. Other errors are returned on the first attempt.
// The callback must be safe to run more than once.
type RetryingUnitOfWork struct {
	inner    UnitOfWork
	attempts uint
	delay    time.Duration
	logger   *slog.Logger
}

// NewRetryingUnitOfWork wraps inner. A nil logger discards retry notices.
func NewRetryingUnitOfWork(inner UnitOfWork, attempts uint, delay time.Duration, logger *slog.Logger) *RetryingUnitOfWork {
	if attempts == 0 {
		attempts = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RetryingUnitOfWork{inner: inner, attempts: attempts, delay: delay, logger: logger}
}

func (u *RetryingUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return retry.Do(
		func() error {
			return u.inner.WithinTx(ctx, fn)
		},
		retry.Context(ctx),
		retry.Attempts(u.attempts),
		retry.Delay(u.delay),
		retry.MaxDelay(5*u.delay+time.Millisecond),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.RetryIf(IsBusy),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			u.logger.Debug("retrying busy transaction", "attempt", n+1, "error", err)
		}),
	)
}

// IsBusy reports whether err carries SQLite's busy or locked result code,
// including extended codes such as SQLITE_BUSY_SNAPSHOT.
func IsBusy(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}
