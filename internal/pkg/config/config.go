package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// insecureDevSecret signs tokens when JWT_SECRET is unset outside production.
// Production startup refuses to run without an explicit secret.
const insecureDevSecret = "dev-insecure-secret-do-not-use"

type Config struct {
	Port         string        `env:"PORT,          default=8080"`
	Env          string        `env:"ENV,           default=development"`
	JWTSecret    string        `env:"JWT_SECRET"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,     default=168h"`
	LogLevel     string        `env:"LOG_LEVEL,     default=info"`
	CORSOrigins  []string      `env:"CORS_ORIGINS,  default=*"`
	EventWorkers int           `env:"EVENT_WORKERS, default=8"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=agency_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ResolveJWTSecret returns the signing secret, substituting the insecure
// development default when none is configured. Production refuses to start
// without an explicit secret.
func (c *Config) ResolveJWTSecret() (secret string, insecure bool, err error) {
	if c.JWTSecret != "" {
		return c.JWTSecret, false, nil
	}
	if c.IsProduction() {
		return "", false, fmt.Errorf("config: JWT_SECRET is required in production")
	}
	return insecureDevSecret, true, nil
}
