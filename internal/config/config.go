package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string   `mapstructure:"PORT"`
	Env               string   `mapstructure:"ENV"`
	DatabaseURL       string   `mapstructure:"DATABASE_URL"`
	DBMaxConns        int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns        int32    `mapstructure:"DB_MIN_CONNS"`
	JWTSecret         string   `mapstructure:"JWT_SECRET"`
	AppwriteEndpoint  string   `mapstructure:"APPWRITE_ENDPOINT"`
	AppwriteProjectID string   `mapstructure:"APPWRITE_PROJECT_ID"`
	AppwriteAPIKey    string   `mapstructure:"APPWRITE_API_KEY"`
	AppwriteBucketID  string   `mapstructure:"APPWRITE_BUCKET_ID"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`
	MigrationsDir     string   `mapstructure:"MIGRATIONS_DIR"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("MIGRATIONS_DIR", "migrations")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("APPWRITE_ENDPOINT")
	v.BindEnv("APPWRITE_PROJECT_ID")
	v.BindEnv("APPWRITE_API_KEY")
	v.BindEnv("APPWRITE_BUCKET_ID")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("MIGRATIONS_DIR")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. The database and the
// token secret are always required; the Appwrite settings must be supplied
// together since every blob operation needs all four.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	appwrite := []struct {
		name string
		val  string
	}{
		{"APPWRITE_ENDPOINT", c.AppwriteEndpoint},
		{"APPWRITE_PROJECT_ID", c.AppwriteProjectID},
		{"APPWRITE_API_KEY", c.AppwriteAPIKey},
		{"APPWRITE_BUCKET_ID", c.AppwriteBucketID},
	}
	var missing []string
	set := 0
	for _, kv := range appwrite {
		if kv.val == "" {
			missing = append(missing, kv.name)
		} else {
			set++
		}
	}
	if set > 0 && len(missing) > 0 {
		return fmt.Errorf("incomplete Appwrite configuration: missing %s", strings.Join(missing, ", "))
	}
	if set == 0 {
		return fmt.Errorf("Appwrite configuration is required: set APPWRITE_ENDPOINT, APPWRITE_PROJECT_ID, APPWRITE_API_KEY, APPWRITE_BUCKET_ID")
	}

	return nil
}
