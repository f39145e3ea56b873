package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"travelbook/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("MAX_PAGE_SIZE", "fifty")
	t.Setenv("WRITE_RETRIES", "5")
	t.Setenv("CACHE_TTL_SECONDS", "60")

	cfg := Load(logger.NewNop())
	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 100, cfg.MaxPageSize, "unparsable values fall back to the default")
	assert.Equal(t, 5, cfg.WriteRetries)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisAddr)
}

func TestGetEnvWithoutLogger(t *testing.T) {
	t.Setenv("TRAVELBOOK_TEST_FLOAT", "2.5")
	assert.Equal(t, 2.5, GetEnvAsFloat("TRAVELBOOK_TEST_FLOAT", 1, nil))
	assert.Equal(t, "x", GetEnv("TRAVELBOOK_TEST_MISSING", "x", nil))
	assert.Equal(t, 7, GetEnvAsInt("TRAVELBOOK_TEST_MISSING", 7, nil))
}
