package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr      string
	DatabaseDSN   string
	LogLevel      string
	LogFormat     string
	JWTSecret     string
	UploadDir     string
	PublicBaseURL string

	EmailEnabled bool
	EmailFrom    string
	AWSRegion    string
}

// Load reads configuration from the environment. A .env file, if present,
// is expected to have been loaded by the caller (godotenv) beforehand.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("EMAIL_ENABLED", false)
	v.SetDefault("AWS_REGION", "ap-south-1")

	cfg := &Config{
		HTTPAddr:      v.GetString("HTTP_ADDR"),
		DatabaseDSN:   v.GetString("DATABASE_DSN"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		UploadDir:     v.GetString("UPLOAD_DIR"),
		PublicBaseURL: v.GetString("PUBLIC_BASE_URL"),
		EmailEnabled:  v.GetBool("EMAIL_ENABLED"),
		EmailFrom:     v.GetString("EMAIL_FROM"),
		AWSRegion:     v.GetString("AWS_REGION"),
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.EmailEnabled && cfg.EmailFrom == "" {
		return nil, fmt.Errorf("EMAIL_FROM is required when EMAIL_ENABLED is set")
	}
	return cfg, nil
}
