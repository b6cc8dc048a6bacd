package config

const EnvPrefix = "RECEIPTS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"

	DefaultPort   = "8080"
	DefaultDBPath = "receipts.db"
)

const (
	EnvAppEnv          = "RECEIPTS_APP_ENV"
	EnvPort            = "RECEIPTS_APP_PORT"
	EnvLogLevel        = "RECEIPTS_LOG_LEVEL"
	EnvLogFormat       = "RECEIPTS_LOG_FORMAT"
	EnvStoreDriver     = "RECEIPTS_STORE_DRIVER"
	EnvDBDSN           = "RECEIPTS_DB_DSN"
	EnvDBPath          = "RECEIPTS_DB_PATH"
	EnvAutoMigrate     = "RECEIPTS_AUTO_MIGRATE"
	EnvRedisURL        = "RECEIPTS_REDIS_URL"
	EnvRateLimitWindow = "RECEIPTS_RATE_LIMIT_WINDOW"
	EnvRateLimitLimit  = "RECEIPTS_RATE_LIMIT_LIMIT"

	EnvLegacyPort   = "PORT"
	EnvLegacyDBPath = "DB_PATH"
)
