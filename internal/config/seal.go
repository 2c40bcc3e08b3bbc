package config

import "time"

const DefaultSealBaseURL = "https://app.sealsubscriptions.com/shopify/merchant/api"

// SealConfig holds the billing provider connection settings
type SealConfig struct {
	BaseURL              string        `mapstructure:"base_url" validate:"required,url"`
	Token                string        `mapstructure:"token" validate:"required"`
	Timeout              time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RequestsPerSecond    float64       `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst                int           `mapstructure:"burst" validate:"gte=0"`
	ProgramPrefix        string        `mapstructure:"program_prefix"`
	MaxConcurrentFetches int           `mapstructure:"max_concurrent_fetches" validate:"gte=1"`
}
