package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that set them.
// Every key that should be settable from the environment must appear here;
// viper's AutomaticEnv does not see keys that were never bound or defaulted.
var envBindings = map[string]string{
	"server.port":                  "SERVER_PORT",
	"server.log_level":             "LOG_LEVEL",
	"server.rate_limit_per_minute": "RATE_LIMIT_PER_MINUTE",
	"database.url":                 "DATABASE_URL",
	"auth.jwt_secret":              "JWT_SECRET",
	"auth.token_lifetime_minutes":  "TOKEN_LIFETIME_MINUTES",
	"smtp.host":                    "SMTP_HOST",
	"smtp.port":                    "SMTP_PORT",
	"smtp.username":                "SMTP_USERNAME",
	"smtp.password":                "SMTP_PASSWORD",
	"smtp.from":                    "SMTP_FROM",
	"notify.workers":               "NOTIFY_WORKERS",
	"notify.queue_size":            "NOTIFY_QUEUE_SIZE",
	"notify.api_base_url":          "API_BASE_URL",
	"notify.admin_email":           "ADMIN_EMAIL",
}

// Load reads configuration from environment variables, applies defaults,
// and validates the result. Returns a populated Config struct or an error
// if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.rate_limit_per_minute", 60)
	v.SetDefault("auth.token_lifetime_minutes", 1440)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "noreply@localhost")
	v.SetDefault("notify.workers", 2)
	v.SetDefault("notify.queue_size", 100)
	v.SetDefault("notify.api_base_url", "http://localhost:8080")
	v.SetDefault("notify.admin_email", "admin@localhost")
}
