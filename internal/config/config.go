package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Admin     AdminConfig     `mapstructure:"admin"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=10080"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"required,gte=4,lte=31"`
}

// RedisConfig contains settings for the optional Redis-backed cache and
// rate-limit counters. An empty URL disables both; they are advisory and
// never required for correctness.
type RedisConfig struct {
	URL             string `mapstructure:"url"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// RateLimitConfig contains the fixed-window request limits applied per
// client IP. Zero values disable the corresponding window.
type RateLimitConfig struct {
	PerHour int `mapstructure:"per_hour" validate:"gte=0"`
	PerDay  int `mapstructure:"per_day"  validate:"gte=0"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AdminConfig optionally seeds a default admin account at startup.
// Seeding is skipped unless both fields are set.
type AdminConfig struct {
	Email    string `mapstructure:"email"    validate:"omitempty,email"`
	Password string `mapstructure:"password"`
}
