// Package config loads the site configuration with Viper. Values come from
// built-in defaults, an optional YAML file and DIAMANTE_ prefixed environment
// variables (DIAMANTE_SERVER_PORT, DIAMANTE_STORAGE_CART_BACKEND, ...), in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pinturas-diamante/catalog-site/internal/seo"
	"github.com/spf13/viper"
)

const EnvPrefix = "DIAMANTE"

// DevSessionSecret signs session cookies when no secret is configured.
const DevSessionSecret = "diamante-dev-secret"

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
	Storage StorageConfig `mapstructure:"storage"`
	Order   OrderConfig   `mapstructure:"order"`
	Log     LogConfig     `mapstructure:"log"`
	Site    seo.Site      `mapstructure:"site"`
}

type ServerConfig struct {
	Host            string          `mapstructure:"host"`
	Port            int             `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration   `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
	// TrustProxy keys clients on forwarded headers instead of the peer address.
	TrustProxy      bool            `mapstructure:"trust_proxy"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type SessionConfig struct {
	Secret     string        `mapstructure:"secret"`
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
	Secure     bool          `mapstructure:"secure"`
}

type StorageConfig struct {
	CartBackend    string        `mapstructure:"cart_backend"`
	RedisAddr      string        `mapstructure:"redis_addr"`
	RedisPassword  string        `mapstructure:"redis_password"`
	RedisDB        int           `mapstructure:"redis_db"`
	CartTTL        time.Duration `mapstructure:"cart_ttl"`
	ReceiptTTL     time.Duration `mapstructure:"receipt_ttl"`
	CatalogBackend string        `mapstructure:"catalog_backend"`
	DatabaseURL    string        `mapstructure:"database_url"`
}

type OrderConfig struct {
	Latency time.Duration `mapstructure:"latency"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       RateLimitConfig{RPS: 5, Burst: 10},
		},
		Session: SessionConfig{
			Secret:     DevSessionSecret,
			CookieName: "diamante_session",
			TTL:        30 * 24 * time.Hour,
		},
		Storage: StorageConfig{
			CartBackend:    BackendMemory,
			RedisAddr:      "localhost:6379",
			CartTTL:        30 * 24 * time.Hour,
			ReceiptTTL:     10 * time.Minute,
			CatalogBackend: BackendMemory,
		},
		Order: OrderConfig{Latency: 1500 * time.Millisecond},
		Log:   LogConfig{Level: "info", Format: "json"},
		Site:  seo.DefaultSite(),
	}
}

// SetDefaults registers every scalar key with v so that environment variables
// can override keys that appear in no config file.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.rate_limit.rps", d.Server.RateLimit.RPS)
	v.SetDefault("server.rate_limit.burst", d.Server.RateLimit.Burst)
	v.SetDefault("server.trust_proxy", d.Server.TrustProxy)

	v.SetDefault("session.secret", d.Session.Secret)
	v.SetDefault("session.cookie_name", d.Session.CookieName)
	v.SetDefault("session.ttl", d.Session.TTL)
	v.SetDefault("session.secure", d.Session.Secure)

	v.SetDefault("storage.cart_backend", d.Storage.CartBackend)
	v.SetDefault("storage.redis_addr", d.Storage.RedisAddr)
	v.SetDefault("storage.redis_password", d.Storage.RedisPassword)
	v.SetDefault("storage.redis_db", d.Storage.RedisDB)
	v.SetDefault("storage.cart_ttl", d.Storage.CartTTL)
	v.SetDefault("storage.receipt_ttl", d.Storage.ReceiptTTL)
	v.SetDefault("storage.catalog_backend", d.Storage.CatalogBackend)
	v.SetDefault("storage.database_url", d.Storage.DatabaseURL)

	v.SetDefault("order.latency", d.Order.Latency)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("site.domain", d.Site.Domain)
	v.SetDefault("site.site_name", d.Site.SiteName)
	v.SetDefault("site.default_image", d.Site.DefaultImage)
}

// Load reads configFile (if not empty) and the environment into a Config and
// validates it.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Storage.CartBackend = strings.ToLower(strings.TrimSpace(cfg.Storage.CartBackend))
	cfg.Storage.CatalogBackend = strings.ToLower(strings.TrimSpace(cfg.Storage.CatalogBackend))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port %d out of range", c.Server.Port))
	}
	if c.Server.RateLimit.RPS <= 0 {
		errs = append(errs, errors.New("rate limit rps must be greater than zero"))
	}
	if c.Server.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("rate limit burst must be greater than zero"))
	}

	if strings.TrimSpace(c.Session.Secret) == "" {
		errs = append(errs, errors.New("session secret is required"))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("session cookie name is required"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session ttl must be positive"))
	}

	switch c.Storage.CartBackend {
	case BackendMemory:
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			errs = append(errs, errors.New("redis address is required for the redis cart backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cart backend %q", c.Storage.CartBackend))
	}

	switch c.Storage.CatalogBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.Storage.DatabaseURL == "" {
			errs = append(errs, errors.New("database url is required for the postgres catalog backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown catalog backend %q", c.Storage.CatalogBackend))
	}

	if c.Storage.ReceiptTTL <= 0 {
		errs = append(errs, errors.New("receipt ttl must be positive"))
	}

	if c.Order.Latency < 0 {
		errs = append(errs, errors.New("order latency cannot be negative"))
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	if err := c.Site.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("site: %w", err))
	}
	return errors.Join(errs...)
}
