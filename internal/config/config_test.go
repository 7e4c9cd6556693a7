package config

import "testing"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_DB_NAME", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_CLEANUP_SCHEDULE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.MongoDB != "dsaprep" {
		t.Errorf("expected default database dsaprep, got %s", cfg.MongoDB)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected default redis addr, got %s", cfg.RedisAddr)
	}
	if cfg.JWTSecret != "dev" {
		t.Errorf("expected default secret dev, got %s", cfg.JWTSecret)
	}
	if cfg.CleanupSchedule != "0 2 * * *" {
		t.Errorf("expected default cleanup schedule, got %s", cfg.CleanupSchedule)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "supersecret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://db:27017" {
		t.Errorf("unexpected mongo uri %s", cfg.MongoURI)
	}
	if cfg.JWTSecret != "supersecret" {
		t.Errorf("unexpected secret %s", cfg.JWTSecret)
	}
}

func TestLoadConfig_RequiresMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when MONGO_URI is empty")
	}
}
