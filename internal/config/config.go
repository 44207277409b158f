package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server       Server       `mapstructure:"server"`
	Logger       Logger       `mapstructure:"logger"`
	Database     Database     `mapstructure:"database"`
	Providers    Providers    `mapstructure:"providers"`
	Polling      Polling      `mapstructure:"polling"`
	Subscription Subscription `mapstructure:"subscription"`
	Auth         Auth         `mapstructure:"auth"`
	Trader       Trader       `mapstructure:"trader"`
}

// Server holds the configuration for the HTTP API.
type Server struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// Database holds the configuration for the database.
type Database struct {
	Driver string `mapstructure:"driver"` // "sqlite" or "postgres"
	DSN    string `mapstructure:"dsn"`
}

// Providers holds the configuration for upstream market data APIs.
type Providers struct {
	CoinGeckoURL   string        `mapstructure:"coingecko_url"`
	YahooURL       string        `mapstructure:"yahoo_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	MaxRetries     int           `mapstructure:"max_retries"`
	Concurrency    int           `mapstructure:"concurrency"`
}

// Polling holds the refresh intervals of the live feeds.
type Polling struct {
	Prices   time.Duration `mapstructure:"prices"`
	Category time.Duration `mapstructure:"category"`
	News     time.Duration `mapstructure:"news"`
}

// Subscription holds plan lifecycle settings.
type Subscription struct {
	PlanPeriod  time.Duration `mapstructure:"plan_period"`
	ExpirySweep time.Duration `mapstructure:"expiry_sweep"`
}

// Auth holds session and credential settings.
type Auth struct {
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	ResetCodeTTL time.Duration `mapstructure:"reset_code_ttl"`
	BcryptCost   int           `mapstructure:"bcrypt_cost"`
}

// Trader holds the configuration for the paper trading panel.
type Trader struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
	FeeRate      float64       `mapstructure:"fee_rate"`
	MinBudget    float64       `mapstructure:"min_budget"`
	MaxBudget    float64       `mapstructure:"max_budget"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in the working directory, when present, is loaded first.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Allow environment variables to override config file
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "dashboard.db")

	v.SetDefault("providers.coingecko_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("providers.yahoo_url", "https://query1.finance.yahoo.com")
	v.SetDefault("providers.timeout", "12s")
	v.SetDefault("providers.rate_limit", 5) // requests per second
	v.SetDefault("providers.rate_limit_burst", 5)
	v.SetDefault("providers.max_retries", 3)
	v.SetDefault("providers.concurrency", 4)

	v.SetDefault("polling.prices", "10s")
	v.SetDefault("polling.category", "60s")
	v.SetDefault("polling.news", "5m")

	v.SetDefault("subscription.plan_period", "720h")
	v.SetDefault("subscription.expiry_sweep", "1h")

	v.SetDefault("auth.session_ttl", "720h")
	v.SetDefault("auth.reset_code_ttl", "15m")
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("trader.tick_interval", "30s")
	v.SetDefault("trader.fee_rate", 0.001)
	v.SetDefault("trader.min_budget", 100)
	v.SetDefault("trader.max_budget", 100000)
}
