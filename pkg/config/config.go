package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv        = "CINEWAVE_APP_ENV"
	EnvPort          = "CINEWAVE_APP_PORT"
	EnvCatalogAPIKey = "CINEWAVE_CATALOG_API_KEY"
	EnvGCPProjectID  = "CINEWAVE_GCP_PROJECT_ID"
	EnvRedisURL      = "CINEWAVE_REDIS_URL"
)

type Config struct {
	App      AppConfig
	Catalog  CatalogConfig
	Firebase FirebaseConfig
	Redis    RedisConfig
	Cart     CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"CINEWAVE_APP_ENV" required:"true"`
	Port         string   `envconfig:"CINEWAVE_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"CINEWAVE_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"CINEWAVE_LOG_WARN_STACK" default:"false"`
	LandingRoute string   `envconfig:"CINEWAVE_LANDING_ROUTE" default:"/"`
	CORSOrigins  []string `envconfig:"CINEWAVE_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	BaseURL     string        `envconfig:"CINEWAVE_CATALOG_BASE_URL" default:"https://api.themoviedb.org/3"`
	APIKey      string        `envconfig:"CINEWAVE_CATALOG_API_KEY" required:"true"`
	Language    string        `envconfig:"CINEWAVE_CATALOG_LANGUAGE" default:"en-US"`
	Timeout     time.Duration `envconfig:"CINEWAVE_CATALOG_TIMEOUT" default:"10s"`
	SearchLimit int           `envconfig:"CINEWAVE_CATALOG_SEARCH_LIMIT" default:"8"`
}

type FirebaseConfig struct {
	ProjectID       string `envconfig:"CINEWAVE_GCP_PROJECT_ID" required:"true"`
	CredentialsFile string `envconfig:"CINEWAVE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CINEWAVE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CINEWAVE_REDIS_ADDR"`
	Password     string        `envconfig:"CINEWAVE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CINEWAVE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CINEWAVE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CINEWAVE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CINEWAVE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CINEWAVE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CINEWAVE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	TTL              time.Duration `envconfig:"CINEWAVE_CART_TTL" default:"720h"`
	PurchaseCacheTTL time.Duration `envconfig:"CINEWAVE_PURCHASE_CACHE_TTL" default:"1h"`
}
