package config

import (
	"os"
	"testing"
)

func TestLoadRequiresMongoURIAndSecret(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without mongo URI")
	}

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without jwt secret")
	}
}

func TestLoadAppliesEnvOverridesAndDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://app.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddress() != ":9090" {
		t.Errorf("HTTPAddress = %q, want :9090", cfg.HTTPAddress())
	}
	if !cfg.IsProduction() {
		t.Error("expected production mode")
	}
	if cfg.Mongo.Database != "chargemap" {
		t.Errorf("database default = %q, want chargemap", cfg.Mongo.Database)
	}
	if cfg.JWTExpiration().Minutes() != 60 {
		t.Errorf("expiry default = %v, want 60m", cfg.JWTExpiration())
	}

	want := []string{"http://localhost:5173", "https://app.example.com"}
	if len(cfg.CORS.AllowedOrigins) != len(want) {
		t.Fatalf("allowed origins = %v, want %v", cfg.CORS.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.CORS.AllowedOrigins[i] != want[i] {
			t.Errorf("origin[%d] = %q, want %q", i, cfg.CORS.AllowedOrigins[i], want[i])
		}
	}
}

func TestLoadYAMLFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	yaml := "http:\n  port: \"7070\"\nmongo:\n  uri: mongodb://file:27017\njwt:\n  secret: from-file\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_PORT", "8081") // env wins over file

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != "8081" {
		t.Errorf("port = %q, want env override 8081", cfg.HTTP.Port)
	}
	if cfg.Mongo.URI != "mongodb://file:27017" {
		t.Errorf("mongo uri = %q, want file value", cfg.Mongo.URI)
	}
}
