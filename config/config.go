package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig             `mapstructure:"server"`
	Database  DatabaseConfig           `mapstructure:"database"`
	Redis     RedisConfig              `mapstructure:"redis"`
	Providers ProvidersConfig          `mapstructure:"providers"`
	Email     EmailConfig              `mapstructure:"email"`
	Products  map[string]ProductConfig `mapstructure:"products"`
	Operator  OperatorConfig           `mapstructure:"operator"`
	Log       LogConfig                `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ProvidersConfig holds per-provider authenticity settings.
type ProvidersConfig struct {
	Monobank MonobankConfig `mapstructure:"monobank"`
	Whitepay WhitepayConfig `mapstructure:"whitepay"`
}

// MonobankConfig configures the asymmetric-signature provider.
type MonobankConfig struct {
	Token     string        `mapstructure:"token"`      // merchant API token, sent as X-Token on key fetch
	PubkeyURL string        `mapstructure:"pubkey_url"` // endpoint returning base64-encoded PEM
	KeyTTL    time.Duration `mapstructure:"key_ttl"`
}

// WhitepayConfig configures the shared-secret provider.
type WhitepayConfig struct {
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// EmailConfig configures the external send collaborator.
type EmailConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	From    string        `mapstructure:"from"`
	Subject string        `mapstructure:"subject"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ProductConfig maps a product id to the variables resolved at dispatch time.
type ProductConfig struct {
	Title      string `mapstructure:"title"`
	AccessLink string `mapstructure:"access_link"`
	Template   string `mapstructure:"template"`
}

// OperatorConfig guards the manual operator endpoints.
type OperatorConfig struct {
	Secret string `mapstructure:"secret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: ORC (Order ReConciler).
// Nested keys use underscore: ORC_DATABASE_HOST, ORC_OPERATOR_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "order_reconciler")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("providers.monobank.token", "")
	v.SetDefault("providers.monobank.pubkey_url", "https://api.monobank.ua/api/merchant/pubkey")
	v.SetDefault("providers.monobank.key_ttl", "6h")
	v.SetDefault("providers.whitepay.webhook_secret", "")
	v.SetDefault("email.api_key", "")
	v.SetDefault("email.base_url", "https://api.resend.com")
	v.SetDefault("email.from", "")
	v.SetDefault("email.subject", "Access activated")
	v.SetDefault("email.timeout", "10s")
	v.SetDefault("operator.secret", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: ORC_DATABASE_HOST -> database.host
	v.SetEnvPrefix("ORC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
