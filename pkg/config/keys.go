package config

const EnvPrefix = "SHOPFLOW"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv                 = "SHOPFLOW_APP_ENV"
	EnvPort                   = "SHOPFLOW_APP_PORT"
	EnvDBDSN                  = "SHOPFLOW_DB_DSN"
	EnvDBHost                 = "SHOPFLOW_DB_HOST"
	EnvDBPort                 = "SHOPFLOW_DB_PORT"
	EnvDBUser                 = "SHOPFLOW_DB_USER"
	EnvDBPassword             = "SHOPFLOW_DB_PASSWORD"
	EnvDBName                 = "SHOPFLOW_DB_NAME"
	EnvRedisURL               = "SHOPFLOW_REDIS_URL"
	EnvPricingConfigCacheTTL  = "SHOPFLOW_PRICING_CONFIG_CACHE_TTL"
	EnvPricingDefaultCurrency = "SHOPFLOW_PRICING_DEFAULT_CURRENCY"
	EnvCORSAllowedOrigins     = "SHOPFLOW_CORS_ALLOWED_ORIGINS"
	EnvAutoMigrate            = "SHOPFLOW_AUTO_MIGRATE"
	EnvFeaturePricingCache    = "SHOPFLOW_FEATURE_PRICING_CACHE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
