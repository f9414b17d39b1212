package db

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

// postgres error codes worth another attempt
var retryablePgCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
}

// IsLockBusy reports whether err is a transient lock conflict from the engine.
func IsLockBusy(err error) bool {
	if err == nil {
		return false
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return retryablePgCodes[pgErr.Code]
	}

	return false
}

func (d *DB) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = d.MaxRetryElapsed
	return backoff.WithContext(b, ctx)
}

func (d *DB) retry(ctx context.Context, op func() error) error {
	attempt := func() error {
		err := op()
		if err != nil && !IsLockBusy(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		log.Warnf("database busy, retrying in %s: %v", wait, err)
	}

	return backoff.RetryNotify(attempt, d.newBackOff(ctx), notify)
}
