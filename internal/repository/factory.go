package repository

import (
	"github.com/coachportal/portalproxy/internal/domain/vacation"
	"github.com/coachportal/portalproxy/internal/logger"
	"github.com/coachportal/portalproxy/internal/postgres"
	postgresRepo "github.com/coachportal/portalproxy/internal/repository/postgres"
)

func NewVacationRepository(db *postgres.DB, logger *logger.Logger) vacation.Repository {
	return postgresRepo.NewVacationRepository(db, logger)
}
