package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/coachportal/portalproxy/internal/logger"
)

// slowQueryThreshold promotes query logs from debug to warn
const slowQueryThreshold = 500 * time.Millisecond

// tracedQuerier logs every statement with its duration and transaction id
type tracedQuerier struct {
	Querier
	logger *logger.Logger
	txID   string
}

func newTracedQuerier(q Querier, logger *logger.Logger, txID string) *tracedQuerier {
	return &tracedQuerier{Querier: q, logger: logger, txID: txID}
}

func (tq *tracedQuerier) done(query string, start time.Time, err error) {
	elapsed := time.Since(start)
	fields := []interface{}{
		"duration_ms", elapsed.Milliseconds(),
		"query", query,
	}
	if tq.txID != "" {
		fields = append(fields, "tx_id", tq.txID)
	}

	switch {
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		tq.logger.Errorw("database query failed", append(fields, "error", err)...)
	case elapsed >= slowQueryThreshold:
		tq.logger.Warnw("slow database query", fields...)
	default:
		tq.logger.Debugw("database query completed", fields...)
	}
}

func (tq *tracedQuerier) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := tq.Querier.ExecContext(ctx, query, args...)
	tq.done(query, start, err)
	return result, err
}

func (tq *tracedQuerier) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := tq.Querier.NamedExecContext(ctx, query, arg)
	tq.done(query, start, err)
	return result, err
}

func (tq *tracedQuerier) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := tq.Querier.GetContext(ctx, dest, query, args...)
	tq.done(query, start, err)
	return err
}

func (tq *tracedQuerier) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := tq.Querier.SelectContext(ctx, dest, query, args...)
	tq.done(query, start, err)
	return err
}
