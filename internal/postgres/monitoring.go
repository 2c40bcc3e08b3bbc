package postgres

import (
	"context"

	"github.com/coachportal/portalproxy/internal/logger"
	sentryService "github.com/coachportal/portalproxy/internal/sentry"
)

// SentryClient reports each transaction as a sentry span
type SentryClient struct {
	db     *DB
	sentry *sentryService.Service
	logger *logger.Logger
}

func NewSentryClient(db *DB, sentry *sentryService.Service, logger *logger.Logger) IClient {
	return &SentryClient{
		db:     db,
		sentry: sentry,
		logger: logger,
	}
}

func (c *SentryClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	span, spanCtx := c.sentry.StartDBSpan(ctx, "postgres.transaction", map[string]interface{}{
		"store": "vacation_requests",
	})

	err := c.db.WithTx(spanCtx, fn)
	if span != nil {
		span.SetData("failed", err != nil)
		span.Finish()
	}
	return err
}
