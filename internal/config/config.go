package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI        string
	MongoDB         string
	AppPort         string
	AppEnv          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	RefreshInterval time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "luxora"),
		AppPort:         getEnv("APP_PORT", "8080"),
		AppEnv:          getEnv("APP_ENV", "development"),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		RefreshInterval: getDuration("REFRESH_INTERVAL", 55*time.Minute),
	}

	// The client refreshes on this interval; a gap opens up if the
	// access token can expire between two ticks.
	if cfg.RefreshInterval >= cfg.AccessTokenTTL {
		log.Fatal("REFRESH_INTERVAL must be shorter than ACCESS_TOKEN_TTL")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("invalid duration for %s: %v", key, err)
	}
	return d
}
