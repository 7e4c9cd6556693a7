package config

import (
	"errors"
	"os"
)

// app config, loaded from environment variables
type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	PostgresDSN     string
	RedisAddr       string
	JWTSecret       string
	CleanupSchedule string // cron spec for the expired-token purge
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         getEnvOrDefault("MONGO_DB_NAME", "dsaprep"),
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		RedisAddr:       getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", "dev"),
		CleanupSchedule: getEnvOrDefault("TOKEN_CLEANUP_SCHEDULE", "0 2 * * *"),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.MongoURI == "" {
		return errors.New("MONGO_URI is empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
