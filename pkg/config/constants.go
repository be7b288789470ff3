package config

const (
	EnvPrefix = "QUOTES"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	EnvAppEnv       = "QUOTES_APP_ENV"
	EnvPort         = "QUOTES_APP_PORT"
	EnvDBDSN        = "QUOTES_DB_DSN"
	EnvRedisURL     = "QUOTES_REDIS_URL"
	EnvRedisAddr    = "QUOTES_REDIS_ADDR"
	EnvSessionStore = "QUOTES_SESSION_STORE"
	EnvSessionTTL   = "QUOTES_SESSION_TTL"
	EnvUseSQLite    = "QUOTES_USE_SQLITE"
	EnvHandoffPhone = "QUOTES_HANDOFF_PHONE"
	EnvCORSOrigins  = "QUOTES_CORS_ORIGINS"
)
