package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// TASKBOARD_ prefix with underscores for nesting (e.g. TASKBOARD_SERVER_PORT,
// TASKBOARD_AUTH_JWT_SECRET) and take precedence over file values.
// Returns a populated Config struct or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TASKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults must be bound explicitly for AutomaticEnv to
	// surface them during Unmarshal.
	for _, key := range []string{
		"database.url",
		"auth.jwt_secret",
		"redis.url",
		"admin.email",
		"admin.password",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// A missing config file is fine; env vars and defaults still apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values for settings that are policy
// choices rather than required secrets. The rate-limit and cache TTL
// defaults come from the original deployment's policy.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("auth.token_lifetime_minutes", 15)
	v.SetDefault("auth.bcrypt_cost", 12)

	v.SetDefault("redis.cache_ttl_seconds", 60)

	v.SetDefault("rate_limit.per_hour", 50)
	v.SetDefault("rate_limit.per_day", 200)

	v.SetDefault("cors.allowed_origins", []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5500",
	})
}
