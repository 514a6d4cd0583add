// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// AutoMigrate applies pending migrations at startup.
	AutoMigrate bool

	// MaxUploadBytes caps the size of any request body.
	MaxUploadBytes int64

	Session SessionConfig
	Blob    BlobConfig
}

// SessionConfig configures verification of admin access tokens.
type SessionConfig struct {
	// Secret is the HS256 key shared with the auth service. Required.
	Secret string
	// Cookie is checked when the request has no bearer token.
	Cookie string
	// LoginPath is where unauthenticated browser navigations are sent.
	LoginPath string
}

// BlobConfig points at the S3-compatible bucket holding uploaded images.
type BlobConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

var defaults = map[string]any{
	"PORT":             "8080",
	"LOG_LEVEL":        "info",
	"CORS_ORIGINS":     "http://localhost:3000",
	"AUTO_MIGRATE":     true,
	"MAX_UPLOAD_BYTES": int64(10 << 20),
	"SESSION_COOKIE":   "sb-access-token",
	"LOGIN_PATH":       "/admin/login",
	"BLOB_BUCKET":      "imagenes",
	"BLOB_REGION":      "us-east-1",
}

var keys = []string{
	"DATABASE_URL", "SESSION_SECRET",
	"BLOB_ENDPOINT", "BLOB_ACCESS_KEY_ID", "BLOB_SECRET_ACCESS_KEY", "BLOB_PUBLIC_BASE_URL",
}

// Load reads configuration from environment variables and returns a Config.
// Empty variables count as unset. Returns an error listing any required
// variables that are not set.
func Load() (Config, error) {
	v := viper.New()
	v.AllowEmptyEnv(false)
	for k, d := range defaults {
		v.SetDefault(k, d)
		_ = v.BindEnv(k)
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := Config{
		Port:           v.GetString("PORT"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		CORSOrigins:    splitCSV(v.GetString("CORS_ORIGINS")),
		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		Session: SessionConfig{
			Secret:    v.GetString("SESSION_SECRET"),
			Cookie:    v.GetString("SESSION_COOKIE"),
			LoginPath: v.GetString("LOGIN_PATH"),
		},
		Blob: BlobConfig{
			Bucket:          v.GetString("BLOB_BUCKET"),
			Region:          v.GetString("BLOB_REGION"),
			Endpoint:        v.GetString("BLOB_ENDPOINT"),
			AccessKeyID:     v.GetString("BLOB_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("BLOB_SECRET_ACCESS_KEY"),
			PublicBaseURL:   v.GetString("BLOB_PUBLIC_BASE_URL"),
		},
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.Session.Secret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	autoMigrate, err := cast.ToBoolE(v.Get("AUTO_MIGRATE"))
	if err != nil {
		return Config{}, fmt.Errorf("AUTO_MIGRATE must be a boolean, got %q", v.GetString("AUTO_MIGRATE"))
	}
	cfg.AutoMigrate = autoMigrate
	if cfg.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}

	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
