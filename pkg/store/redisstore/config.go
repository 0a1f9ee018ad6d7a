package redisstore

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config describes the Redis connection and key layout. Fields load from the
// environment through LoadConfig.
type Config struct {
	ConnectionURL  string        `env:"FORMSTATE_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	Prefix         string        `env:"FORMSTATE_REDIS_PREFIX" envDefault:"formstate:"`
	TTL            time.Duration `env:"FORMSTATE_REDIS_TTL" envDefault:"0s"`
	RetryAttempts  int           `env:"FORMSTATE_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"FORMSTATE_REDIS_RETRY_INTERVAL" envDefault:"1s"`
	ConnectTimeout time.Duration `env:"FORMSTATE_REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

// LoadConfig parses Config from environment variables.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("redisstore: parse env: %w", err)
	}
	return cfg, nil
}
