package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP API listens on
		Port int `env:"SERVER_PORT" envDefault:"8080"`
	}

	// Upstream data API configuration
	Upstream struct {
		// Base URL of the listings API
		BaseURL string `env:"UPSTREAM_BASE_URL" envDefault:"http://localhost:8000/api"`

		// Request timeout in seconds
		TimeoutSeconds int `env:"UPSTREAM_TIMEOUT" envDefault:"10"`
	}

	// Result set limits
	Listing struct {
		// Page size for the property list
		PageLimit int `env:"LISTING_PAGE_LIMIT" envDefault:"100"`

		// Maximum properties fetched for the map
		MapLimit int `env:"MAP_RESULT_LIMIT" envDefault:"1000"`

		// Page size for investment opportunities
		OpportunityLimit int `env:"OPPORTUNITY_PAGE_LIMIT" envDefault:"50"`

		// Default minimum investment score filter
		DefaultMinScore int `env:"DEFAULT_MIN_SCORE" envDefault:"50"`
	}

	// Map fallback configuration
	Map struct {
		// City whose center is used when no property has coordinates
		DefaultCity string `env:"MAP_DEFAULT_CITY" envDefault:"madrid"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
