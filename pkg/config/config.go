package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Sessions     SessionsConfig
	RateLimit    RateLimitConfig
	Handoff      HandoffConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Sessions.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("%s=%s requires %s or %s", EnvSessionStore, SessionStoreRedis, EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("%s must be one of %s, %s", EnvSessionStore, SessionStoreMemory, SessionStoreRedis)
	}
	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionTTL)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"QUOTES_APP_ENV" required:"true"`
	Port         string `envconfig:"QUOTES_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"QUOTES_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUOTES_LOG_WARN_STACK" default:"false"`

	// CORSOrigins is a comma separated allow list for the marketing site.
	CORSOrigins     []string      `envconfig:"QUOTES_CORS_ORIGINS" default:"http://localhost:5173,https://xpertech.mx,https://www.xpertech.mx"`
	ShutdownTimeout time.Duration `envconfig:"QUOTES_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig points at the optional catalog price override table.
type DBConfig struct {
	DSN             string        `envconfig:"QUOTES_DB_DSN"`
	MaxOpenConns    int           `envconfig:"QUOTES_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"QUOTES_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"QUOTES_DB_CONN_MAX_LIFETIME" default:"1h"`
}

func (d DBConfig) Enabled() bool {
	return strings.TrimSpace(d.DSN) != ""
}

type RedisConfig struct {
	URL          string        `envconfig:"QUOTES_REDIS_URL"`
	Address      string        `envconfig:"QUOTES_REDIS_ADDR"`
	Password     string        `envconfig:"QUOTES_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUOTES_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUOTES_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUOTES_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUOTES_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUOTES_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"QUOTES_REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type SessionsConfig struct {
	Store string        `envconfig:"QUOTES_SESSION_STORE" default:"memory"`
	TTL   time.Duration `envconfig:"QUOTES_SESSION_TTL" default:"2h"`
}

// RateLimitConfig throttles wizard session creation per client IP.
type RateLimitConfig struct {
	SessionWindow  time.Duration `envconfig:"QUOTES_RATE_LIMIT_SESSION_WINDOW" default:"1m"`
	SessionIPLimit int           `envconfig:"QUOTES_RATE_LIMIT_SESSION_IP_LIMIT" default:"30"`
}

type HandoffConfig struct {
	BaseURL        string `envconfig:"QUOTES_HANDOFF_BASE_URL" default:"https://wa.me"`
	Phone          string `envconfig:"QUOTES_HANDOFF_PHONE" default:"529621765599"`
	CurrencySymbol string `envconfig:"QUOTES_CURRENCY_SYMBOL" default:"$"`
}

type FeatureFlagsConfig struct {
	UseSQLite bool `envconfig:"QUOTES_USE_SQLITE" default:"false"`
}
