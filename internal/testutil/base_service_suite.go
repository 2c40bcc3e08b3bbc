package testutil

import (
	"context"
	"time"

	"github.com/coachportal/portalproxy/internal/cache"
	"github.com/coachportal/portalproxy/internal/config"
	"github.com/coachportal/portalproxy/internal/integration/seal"
	"github.com/coachportal/portalproxy/internal/logger"
	"github.com/coachportal/portalproxy/internal/types"
	"github.com/coachportal/portalproxy/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository fakes for testing
type Stores struct {
	VacationRepo *InMemoryVacationStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	stores     Stores
	db         *MockPostgresClient
	httpClient *MockHTTPClient
	sealClient seal.SealClient
	cache      cache.Cache
	logger     *logger.Logger
	config     *config.Configuration
	now        time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	cfg.Seal.Token = "test-seal-token"
	cfg.Seal.RequestsPerSecond = 0
	cfg.CORS.AllowedOrigin = "https://shop.example.com"
	cfg.Cache.Enabled = true
	s.config = cfg

	s.logger = logger.NewNopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.now = time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

	s.stores = Stores{
		VacationRepo: NewInMemoryVacationStore(),
	}
	s.db = NewMockPostgresClient(s.logger)
	s.httpClient = NewMockHTTPClient()
	s.sealClient = seal.NewClient(s.config, s.httpClient, s.logger)
	s.cache = cache.NewInMemoryCache(s.config)
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.stores.VacationRepo.Clear()
	s.httpClient.Clear()
	s.cache.Flush(context.Background())
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetHTTPClient returns the mock transport behind the Seal client
func (s *BaseServiceTestSuite) GetHTTPClient() *MockHTTPClient {
	return s.httpClient
}

// GetSealClient returns a real Seal client wired to the mock transport
func (s *BaseServiceTestSuite) GetSealClient() seal.SealClient {
	return s.sealClient
}

// GetCache returns the subscription detail cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the fixed test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
