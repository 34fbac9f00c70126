package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCityNames(t *testing.T) {
	names := GetCityNames()

	assert.Contains(t, names, "madrid")
	assert.Contains(t, names, "barcelona")
	assert.Len(t, names, len(SupportedCities))
}

func TestGetCityByName(t *testing.T) {
	tests := []struct {
		name         string
		lookup       string
		expectedName string
	}{
		{"Known city", "barcelona", "barcelona"},
		{"Default city", "madrid", "madrid"},
		{"Unknown city falls back to madrid", "atlantis", "madrid"},
		{"Empty name falls back to madrid", "", "madrid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city := GetCityByName(tt.lookup)
			require.NotNil(t, city)
			assert.Equal(t, tt.expectedName, city.Name)
			require.Len(t, city.Center, 2)
		})
	}
}

func TestMadridCenter(t *testing.T) {
	madrid := GetCityByName("madrid")

	assert.Equal(t, 40.416775, madrid.Center[0])
	assert.Equal(t, -3.703790, madrid.Center[1])
	assert.Equal(t, 7, madrid.ZoomLevel)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000/api", cfg.Upstream.BaseURL)
	assert.Equal(t, 10, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, 100, cfg.Listing.PageLimit)
	assert.Equal(t, 1000, cfg.Listing.MapLimit)
	assert.Equal(t, 50, cfg.Listing.OpportunityLimit)
	assert.Equal(t, 50, cfg.Listing.DefaultMinScore)
	assert.Equal(t, "madrid", cfg.Map.DefaultCity)
}
