package config

import "testing"

func validConfig() *Config {
	return &Config{
		Port:              "8080",
		Env:               "development",
		DatabaseURL:       "postgres://localhost:5432/dentacare",
		JWTSecret:         "secret",
		AppwriteEndpoint:  "https://cloud.appwrite.io/v1",
		AppwriteProjectID: "proj",
		AppwriteAPIKey:    "key",
		AppwriteBucketID:  "bucket",
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestValidate_MissingJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestValidate_PartialAppwrite(t *testing.T) {
	cfg := validConfig()
	cfg.AppwriteAPIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for incomplete Appwrite configuration")
	}
}

func TestValidate_NoAppwrite(t *testing.T) {
	cfg := validConfig()
	cfg.AppwriteEndpoint = ""
	cfg.AppwriteProjectID = ""
	cfg.AppwriteAPIKey = ""
	cfg.AppwriteBucketID = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when Appwrite configuration is absent")
	}
}

func TestIsDev(t *testing.T) {
	cfg := validConfig()
	if !cfg.IsDev() {
		t.Error("expected development config to report IsDev")
	}
	cfg.Env = "production"
	if cfg.IsDev() {
		t.Error("expected production config to not report IsDev")
	}
}
