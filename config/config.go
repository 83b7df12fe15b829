package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kataras/golog"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// HTTP
	Port string `envconfig:"PORT" default:"8001"`
	Env  string `envconfig:"ENV" default:"dev"`

	// Storage
	DBDriver           string `envconfig:"DB_DRIVER" default:"postgres"` // postgres, sqlite
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	RedisURL           string `envconfig:"REDIS_URL"`

	// Tokens
	AccessTokenSecret  string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	RefreshTokenSecret string        `envconfig:"REFRESH_TOKEN_SECRET" required:"true"`
	AccessTokenTTL     time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"24h"`
	RefreshTokenTTL    time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"720h"`

	// Events
	RabbitURL      string `envconfig:"RABBIT_URL"`
	EventsExchange string `envconfig:"EVENTS_EXCHANGE" default:"realestate.events"`

	// KYC collaborators
	KYCTimeout  time.Duration `envconfig:"KYC_TIMEOUT" default:"10s"`
	KYCRetries  int           `envconfig:"KYC_RETRIES" default:"2"`
	MockLatency time.Duration `envconfig:"MOCK_LATENCY" default:"1s"`

	// Tracing
	OTELEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func Load() (Config, error) {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			golog.Debug("no .env file loaded")
		}
	}

	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

// Addr is the listen address built from Port.
func (c Config) Addr() string {
	return "0.0.0.0:" + c.Port
}
