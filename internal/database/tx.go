package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultAcquireTimeout = 2 * time.Second

var acquireTimeout atomic.Int64

// ErrAcquireTimeout is returned when no pooled connection frees up in time.
var ErrAcquireTimeout = errors.New("timed out waiting for a database connection")

// SetAcquireTimeout bounds how long Acquire waits for a free connection.
func SetAcquireTimeout(d time.Duration) {
	acquireTimeout.Store(int64(d))
}

func getAcquireTimeout() time.Duration {
	if d := time.Duration(acquireTimeout.Load()); d > 0 {
		return d
	}
	return defaultAcquireTimeout
}

// Acquire takes one connection out of the pool, queueing behind other
// requests until the acquisition timeout. Callers must Close the connection.
func Acquire(ctx context.Context, db *sql.DB) (*sql.Conn, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, getAcquireTimeout())
	defer cancel()

	conn, err := db.Conn(acquireCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, ErrAcquireTimeout
		}
		return nil, err
	}
	return conn, nil
}

// WithConn runs fn against a single pooled connection.
func WithConn(ctx context.Context, db *sql.DB, fn func(q Querier) error) error {
	conn, err := Acquire(ctx, db)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn)
}

// WithTransaction runs fn on a single connection inside a transaction. The
// transaction commits only if fn returns nil; any error or panic rolls it back.
func WithTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	conn, err := Acquire(ctx, db)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error().Err(rbErr).Msg("transaction rollback failed")
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
