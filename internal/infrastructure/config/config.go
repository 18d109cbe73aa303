package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret       string        `env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=30m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=336h"`

	MySQL    MySQLConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
}

type MySQLConfig struct {
	User     string `env:"MYSQL_USER,     default=board"`
	Password string `env:"MYSQL_PASSWORD"`
	Host     string `env:"MYSQL_HOST,     default=localhost"`
	Port     string `env:"MYSQL_PORT,     default=3306"`
	Database string `env:"MYSQL_DB,       default=board"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ThrottleConfig bounds failed sign-in attempts per email.
type ThrottleConfig struct {
	MaxFailures int           `env:"SIGNIN_MAX_FAILURES, default=5"`
	Window      time.Duration `env:"SIGNIN_FAIL_WINDOW,  default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
