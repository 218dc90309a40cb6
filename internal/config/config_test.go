package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/taskdeck/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, float64(5), cfg.API.RequestsPerSecond)
	assert.Equal(t, 10, cfg.PageLimit)
	assert.Equal(t, ":8080", cfg.Fake.Addr)
}

func TestLoadOverridesAndValidation(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		t.Setenv("TASKDECK_API_BASE_URL", "https://tasks.example.com/api")
		t.Setenv("TASKDECK_API_TIMEOUT", "3s")
		t.Setenv("TASKDECK_PAGE_LIMIT", "25")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "https://tasks.example.com/api", cfg.API.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.API.Timeout)
		assert.Equal(t, 25, cfg.PageLimit)
	})

	t.Run("bad_duration", func(t *testing.T) {
		t.Setenv("TASKDECK_API_TIMEOUT", "eventually")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("bad_base_url", func(t *testing.T) {
		t.Setenv("TASKDECK_API_BASE_URL", "not a url")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("page_limit_out_of_bounds", func(t *testing.T) {
		t.Setenv("TASKDECK_PAGE_LIMIT", "5000")

		_, err := config.Load()
		assert.Error(t, err)
	})
}
