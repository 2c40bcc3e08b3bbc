package postgres

import (
	"context"
	"database/sql"

	ierr "github.com/coachportal/portalproxy/internal/errors"
	"github.com/coachportal/portalproxy/internal/types"
	"github.com/jmoiron/sqlx"
)

type txKey struct{}

// Tx is an open transaction carried on the context
type Tx struct {
	*sqlx.Tx
	ID string
}

// GetTx returns the transaction opened by an enclosing WithTx
func GetTx(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*Tx)
	return tx, ok
}

// WithTx runs fn in a read committed transaction. A nested call joins the
// enclosing transaction instead of opening a new one.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := GetTx(ctx); ok {
		return fn(ctx)
	}

	sqlxTx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to reach the database").
			Mark(ierr.ErrDatabase)
	}

	tx := &Tx{Tx: sqlxTx, ID: types.GenerateUUID()}
	ctx = context.WithValue(ctx, txKey{}, tx)
	db.logger.Debugw("transaction started", "tx_id", tx.ID)

	defer func() {
		if r := recover(); r != nil {
			db.logger.Errorw("panic in transaction", "tx_id", tx.ID, "panic", r)
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx); err != nil {
		db.logger.Debugw("transaction rolled back", "tx_id", tx.ID, "error", err)
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Errorw("failed to roll back transaction", "tx_id", tx.ID, "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save changes").
			Mark(ierr.ErrDatabase)
	}
	db.logger.Debugw("transaction committed", "tx_id", tx.ID)

	return nil
}

// AdvisoryXactLock blocks until the transaction scoped advisory lock for key is
// held. It is released when the enclosing transaction ends.
func (db *DB) AdvisoryXactLock(ctx context.Context, key string) error {
	if _, ok := GetTx(ctx); !ok {
		return ierr.NewError("advisory lock requested outside a transaction").
			Mark(ierr.ErrInternal)
	}

	_, err := db.GetQuerier(ctx).ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key)
	return err
}
