// Package config loads runtime configuration from the environment. A .env
// file is honored in development; real environments set variables directly.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr string `env:"KADER_ADDR" envDefault:":8080"`

	// DatabaseURL empty means the in-memory stores are used. Fine for local
	// development, not for production.
	DatabaseURL string `env:"DATABASE_URL"`

	Redis RedisConfig `envPrefix:"REDIS_"`

	JWTSigningKey string        `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer     string        `env:"JWT_ISSUER" envDefault:"kader"`
	JWTAudience   string        `env:"JWT_AUDIENCE" envDefault:"kader-api"`
	TokenTTL      time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`

	BcryptCost         int  `env:"BCRYPT_COST" envDefault:"12"`
	AuditBuffer        int  `env:"AUDIT_BUFFER" envDefault:"256"`
	DeviceFingerprints bool `env:"DEVICE_FINGERPRINTS" envDefault:"true"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type RedisConfig struct {
	// URL empty means the in-memory revocation list is used.
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
}

// Load reads the optional .env file and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
