package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/enums"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Pricing      PricingConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"SHOPFLOW_APP_ENV" required:"true"`
	Port            string        `envconfig:"SHOPFLOW_APP_PORT" required:"true"`
	LogLevel        string        `envconfig:"SHOPFLOW_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"SHOPFLOW_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"SHOPFLOW_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPFLOW_DB_DSN"`
	Driver string `envconfig:"SHOPFLOW_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOPFLOW_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPFLOW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPFLOW_DB_USER"`
	LegacyPassword string `envconfig:"SHOPFLOW_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPFLOW_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPFLOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPFLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPFLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPFLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPFLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPFLOW_REDIS_URL"`
	Address      string        `envconfig:"SHOPFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPFLOW_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"SHOPFLOW_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// PricingConfig tunes how store pricing configurations are served.
type PricingConfig struct {
	ConfigCacheTTL  time.Duration `envconfig:"SHOPFLOW_PRICING_CONFIG_CACHE_TTL" default:"5m"`
	DefaultCurrency string        `envconfig:"SHOPFLOW_PRICING_DEFAULT_CURRENCY" default:"BRL"`
}

// Currency returns the configured default currency.
func (p PricingConfig) Currency() enums.Currency {
	return enums.Currency(strings.ToUpper(strings.TrimSpace(p.DefaultCurrency)))
}

func (p PricingConfig) validate() error {
	if _, err := enums.ParseCurrency(string(p.Currency())); err != nil {
		return fmt.Errorf("%s: %w", EnvPricingDefaultCurrency, err)
	}
	if p.ConfigCacheTTL < 0 {
		return fmt.Errorf("%s must not be negative", EnvPricingConfigCacheTTL)
	}
	return nil
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHOPFLOW_CORS_ALLOWED_ORIGINS" default:"*"`
	MaxAgeSeconds  int      `envconfig:"SHOPFLOW_CORS_MAX_AGE" default:"300"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"SHOPFLOW_AUTO_MIGRATE" default:"false"`
	PricingCache bool `envconfig:"SHOPFLOW_FEATURE_PRICING_CACHE" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
