package api

import (
	v1 "github.com/coachportal/portalproxy/internal/api/v1"
	"github.com/coachportal/portalproxy/internal/config"
	"github.com/coachportal/portalproxy/internal/logger"
	"github.com/coachportal/portalproxy/internal/rest/middleware"
	"github.com/coachportal/portalproxy/internal/sentry"
	"github.com/coachportal/portalproxy/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health     *v1.HealthHandler
	Enrollment *v1.EnrollmentHandler
	Vacation   *v1.VacationHandler
	Billing    *v1.BillingHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, sentrySvc *sentry.Service) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.SecurityHeaders,
		middleware.CORSMiddleware(cfg),
		middleware.SentryMiddleware(cfg),
		middleware.SentryScope,
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(sentrySvc),
	)

	router.GET("/health", handlers.Health.Health)

	router.GET("/enrollments", handlers.Enrollment.ListEnrollments)

	router.GET("/vacations", handlers.Vacation.ListVacationRequests)
	router.POST("/vacation-request", handlers.Vacation.CreateVacationRequest)

	router.GET("/billing-schedule", handlers.Billing.GetBillingSchedule)
	router.PUT("/reschedule-billing-attempt", middleware.UpstreamStatusPassthrough, handlers.Billing.RescheduleBillingAttempt)

	return router
}
