package postgres

import (
	"context"

	"go.uber.org/fx"
)

// IClient is the transaction boundary the admission service depends on
type IClient interface {
	// WithTx runs fn in one transaction. Calls nested inside fn join it.
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

var _ IClient = (*DB)(nil)

// Module provides the pool and the sentry instrumented client
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewDB,
			NewSentryClient,
		),
	)
}
