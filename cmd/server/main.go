package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coachportal/portalproxy/internal/api"
	v1 "github.com/coachportal/portalproxy/internal/api/v1"
	"github.com/coachportal/portalproxy/internal/cache"
	"github.com/coachportal/portalproxy/internal/config"
	"github.com/coachportal/portalproxy/internal/httpclient"
	"github.com/coachportal/portalproxy/internal/integration/seal"
	"github.com/coachportal/portalproxy/internal/logger"
	"github.com/coachportal/portalproxy/internal/postgres"
	"github.com/coachportal/portalproxy/internal/repository"
	"github.com/coachportal/portalproxy/internal/sentry"
	"github.com/coachportal/portalproxy/internal/service"
	"github.com/coachportal/portalproxy/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

const defaultShutdownTimeout = 15 * time.Second

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	opts = append(opts,
		fx.Provide(
			config.NewConfig,

			logger.NewLogger,

			cache.NewInMemoryCache,

			httpclient.NewDefaultClient,
			seal.NewClient,

			repository.NewVacationRepository,
		),
		sentry.Module(),
		postgres.Module(),
	)

	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewEnrollmentService,
			service.NewVacationService,
			service.NewBillingService,
		),
	)

	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			validator.NewValidator,
			closeDB,
			startAPIServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	enrollmentService service.EnrollmentService,
	vacationService service.VacationService,
	billingService service.BillingService,
) api.Handlers {
	return api.Handlers{
		Health:     v1.NewHealthHandler(),
		Enrollment: v1.NewEnrollmentHandler(enrollmentService, logger),
		Vacation:   v1.NewVacationHandler(vacationService, logger),
		Billing:    v1.NewBillingHandler(billingService, logger),
	}
}

func closeDB(lc fx.Lifecycle, db *postgres.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")

			timeout := cfg.Server.ShutdownTimeout
			if timeout <= 0 {
				timeout = defaultShutdownTimeout
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return srv.Shutdown(ctx)
		},
	})
}
