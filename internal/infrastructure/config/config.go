package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// CommissionRate is the platform's cut of a paid invoice, applied on read.
	// The legacy marketing pages quoted 10% while the aggregation code used
	// 13%; there is exactly one rate now, and this is it.
	CommissionRate float64 `env:"COMMISSION_RATE, default=0.13"`
	// ProfitMarginRate is the assumed margin applied to revenue for the
	// dashboard profit figure. It is not derived from cost data.
	ProfitMarginRate float64 `env:"PROFIT_MARGIN_RATE, default=0.75"`

	PaymentWorkers int           `env:"PAYMENT_WORKERS, default=4"`
	StatsCacheTTL  time.Duration `env:"STATS_CACHE_TTL, default=1m"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
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
