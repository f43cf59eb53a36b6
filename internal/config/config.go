package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	MySQLDSN string `env:"MYSQL_DSN, default=user:password@tcp(localhost:3306)/usercenter?charset=utf8mb4&parseTime=True&loc=Local"`

	// PasswordSalt is appended to raw passwords before digesting. Changing it
	// invalidates every stored digest.
	PasswordSalt string `env:"PASSWORD_SALT, default=change-me"`

	Redis   RedisConfig
	Session SessionConfig
}

// RedisConfig configures the session store connection.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// SessionConfig configures cookie name and inactivity timeout.
type SessionConfig struct {
	CookieName string `env:"SESSION_COOKIE, default=usercenter_session"`
	TTLSeconds int    `env:"SESSION_TTL_SECONDS, default=1800"`
}

// Load reads configuration from the environment using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
