package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// RelayConfig describes how the cloud tier reaches the on-premise services.
type RelayConfig struct {
	BaseAddress    string        `env:"RELAY_BASE_ADDRESS,required" validate:"required"`
	Scheme         string        `env:"RELAY_SCHEME" envDefault:"https" validate:"oneof=http https"`
	IssuerName     string        `env:"RELAY_ISSUER_NAME" envDefault:"owner" validate:"required"`
	IssuerSecret   string        `env:"RELAY_ISSUER_SECRET" validate:"required_if=RequireAuth true"`
	RequireAuth    bool          `env:"RELAY_REQUIRE_AUTH" envDefault:"true"`
	TokenEndpoint  string        `env:"RELAY_TOKEN_ENDPOINT" envDefault:"https://{namespace}-sb.accesscontrol.windows.net/WRAPv0.9"`
	TokenScope     string        `env:"RELAY_TOKEN_SCOPE" envDefault:"http://{namespace}.servicebus.windows.net"`
	RequestTimeout time.Duration `env:"RELAY_REQUEST_TIMEOUT" envDefault:"30s" validate:"gte=0"`
	RateLimit      float64       `env:"RELAY_RATE_LIMIT" envDefault:"0" validate:"gte=0"` // requests per second, 0 disables
	RateBurst      int           `env:"RELAY_RATE_BURST" envDefault:"10" validate:"gte=1"`
}

// CloudConfig holds configuration for the cloud web application.
type CloudConfig struct {
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr     string        `env:"CLOUD_SERVER_ADDR" envDefault:":8080"`
	MetricsAddr    string        `env:"METRICS_ADDR" envDefault:":9091"`
	TokenCache     string        `env:"TOKEN_CACHE" envDefault:"none" validate:"oneof=none memory redis"`
	TokenCacheSkew time.Duration `env:"TOKEN_CACHE_SKEW" envDefault:"30s"`
	RedisAddr      string        `env:"REDIS_ADDR" validate:"required_if=TokenCache redis"`
	Relay          RelayConfig
}

// OnPremConfig holds configuration for the on-premise service hosts.
type OnPremConfig struct {
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	PostgresURL    string `env:"POSTGRES_URL,required" validate:"required"`
	ImageDir       string `env:"IMAGE_DIR,required" validate:"required"`
	PersonHostAddr string `env:"PERSON_HOST_ADDR" envDefault:":8081"`
	ImageHostAddr  string `env:"IMAGE_HOST_ADDR" envDefault:":8082"`
}

// GatewayConfig holds configuration for the development relay gateway.
type GatewayConfig struct {
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	ListenAddr     string        `env:"RELAY_LISTEN_ADDR" envDefault:":9000"`
	IssuerName     string        `env:"RELAY_ISSUER_NAME" envDefault:"owner" validate:"required"`
	IssuerSecret   string        `env:"RELAY_ISSUER_SECRET,required" validate:"required"`
	SigningKey     string        `env:"RELAY_SIGNING_KEY,required" validate:"required,min=16"`
	TokenTTL       time.Duration `env:"RELAY_TOKEN_TTL" envDefault:"20m" validate:"gt=0"`
	PersonUpstream string        `env:"PERSON_UPSTREAM" envDefault:"http://localhost:8081" validate:"url"`
	ImageUpstream  string        `env:"IMAGE_UPSTREAM" envDefault:"http://localhost:8082" validate:"url"`
}

// LoadCloud reads the cloud web application configuration from the environment.
func LoadCloud() (*CloudConfig, error) {
	cfg := &CloudConfig{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOnPrem reads the on-premise host configuration from the environment.
func LoadOnPrem() (*OnPremConfig, error) {
	cfg := &OnPremConfig{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadGateway reads the relay gateway configuration from the environment.
func LoadGateway() (*GatewayConfig, error) {
	cfg := &GatewayConfig{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(cfg any) error {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
