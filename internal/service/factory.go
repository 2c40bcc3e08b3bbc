package service

import (
	"time"

	"github.com/coachportal/portalproxy/internal/cache"
	"github.com/coachportal/portalproxy/internal/config"
	"github.com/coachportal/portalproxy/internal/domain/vacation"
	"github.com/coachportal/portalproxy/internal/integration/seal"
	"github.com/coachportal/portalproxy/internal/logger"
	"github.com/coachportal/portalproxy/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	VacationRepo vacation.Repository

	SealClient seal.SealClient

	// Cache holds subscription details for the read-only views
	Cache cache.Cache

	// Locks serialises vacation admission per customer and child
	Locks *KeyedMutex

	// Now is overridden in tests; nil means time.Now
	Now func() time.Time
}

// NewServiceParams creates a new ServiceParams
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	vacationRepo vacation.Repository,
	sealClient seal.SealClient,
	cache cache.Cache,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		DB:           db,
		VacationRepo: vacationRepo,
		SealClient:   sealClient,
		Cache:        cache,
		Locks:        NewKeyedMutex(),
	}
}

func (p ServiceParams) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
