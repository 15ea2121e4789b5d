// Package config loads and validates application configuration from a YAML
// file and environment variables.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Study    StudyConfig    `yaml:"study"`
	SRS      SRSConfig      `yaml:"srs"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min" env:"SERVER_RATE_LIMIT_PER_MIN" env-default:"300"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds JWT and password settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"asvabprep"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"15m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl"  env:"AUTH_REFRESH_TOKEN_TTL"  env-default:"720h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"12"`
}

// StudyConfig holds study-level limits that sit above the scheduler.
type StudyConfig struct {
	MaxCardsPerUser   int           `yaml:"max_cards_per_user"  env:"STUDY_MAX_CARDS_PER_USER" env-default:"10000"`
	UndoWindow        time.Duration `yaml:"undo_window"         env:"STUDY_UNDO_WINDOW"        env-default:"24h"`
	DefaultQueueLimit int           `yaml:"default_queue_limit" env:"STUDY_DEFAULT_QUEUE_LIMIT" env-default:"20"`
}

// SRSConfig holds the spaced-repetition scheduler constants.
type SRSConfig struct {
	DefaultEaseFactor   float64 `yaml:"default_ease_factor"   env:"SRS_DEFAULT_EASE"          env-default:"2.5"`
	MinEaseFactor       float64 `yaml:"min_ease_factor"       env:"SRS_MIN_EASE"              env-default:"1.3"`
	MaxEaseFactor       float64 `yaml:"max_ease_factor"       env:"SRS_MAX_EASE"              env-default:"5.0"`
	GraduatingInterval  int     `yaml:"graduating_interval"   env:"SRS_GRADUATING_INTERVAL"   env-default:"4"`
	MasteryRepetitions  int     `yaml:"mastery_repetitions"   env:"SRS_MASTERY_REPETITIONS"   env-default:"8"`
	MasteryIntervalDays int     `yaml:"mastery_interval_days" env:"SRS_MASTERY_INTERVAL_DAYS" env-default:"30"`
	JitterSpread        float64 `yaml:"jitter_spread"         env:"SRS_JITTER_SPREAD"         env-default:"0.1"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
