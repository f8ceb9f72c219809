package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://db:27017")
		t.Setenv("MONGO_DB", "luxora_test")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("ACCESS_TOKEN_TTL", "30m")
		t.Setenv("REFRESH_TOKEN_TTL", "24h")
		t.Setenv("REFRESH_INTERVAL", "25m")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
		assert.Equal(t, "luxora_test", cfg.MongoDB)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
		assert.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
		assert.Equal(t, 25*time.Minute, cfg.RefreshInterval)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("MONGO_URI", "")
		t.Setenv("ACCESS_TOKEN_TTL", "")
		t.Setenv("REFRESH_INTERVAL", "")

		cfg := LoadConfig()

		assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
		assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
		assert.Equal(t, 55*time.Minute, cfg.RefreshInterval)
	})
}
