package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Redis   RedisConfig
	Form    FormConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STITCHFOLD_APP_ENV" required:"true"`
	Port         string `envconfig:"STITCHFOLD_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STITCHFOLD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STITCHFOLD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig points the gateway at the upstream catalog API.
type CatalogConfig struct {
	BaseURL        string        `envconfig:"STITCHFOLD_CATALOG_BASE_URL" required:"true"`
	RequestTimeout time.Duration `envconfig:"STITCHFOLD_CATALOG_REQUEST_TIMEOUT" default:"100s"`
}

func (c CatalogConfig) validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("catalog base url must be an http(s) url, got %q", c.BaseURL)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"STITCHFOLD_REDIS_URL"`
	Address      string        `envconfig:"STITCHFOLD_REDIS_ADDR"`
	Password     string        `envconfig:"STITCHFOLD_REDIS_PASSWORD"`
	DB           int           `envconfig:"STITCHFOLD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STITCHFOLD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STITCHFOLD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STITCHFOLD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STITCHFOLD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STITCHFOLD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// FormConfig bounds the product form sessions the gateway owns.
type FormConfig struct {
	SessionTTL  time.Duration `envconfig:"STITCHFOLD_FORM_SESSION_TTL" default:"24h"`
	MaxUploadMB int           `envconfig:"STITCHFOLD_FORM_MAX_UPLOAD_MB" default:"10"`
	MaxImages   int           `envconfig:"STITCHFOLD_FORM_MAX_IMAGES" default:"8"`
}

// MaxUploadBytes returns the per-file upload cap in bytes.
func (f FormConfig) MaxUploadBytes() int64 {
	return int64(f.MaxUploadMB) << 20
}
