package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"flipvault-web/apperrors"
)

// Config is the full application configuration.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Backend BackendConfig `mapstructure:"backend"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name       string `mapstructure:"name"`
	ListenAddr string `mapstructure:"listen_addr"`
}

// BackendConfig points at the API service that owns all business logic.
// ServiceToken is the bearer credential for privileged calls; it lives in
// the environment, never in source.
type BackendConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ServiceToken string        `mapstructure:"service_token"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// StoreConfig selects where per-session client state lives. sqlite is the
// single-instance default; redis is for multi-replica deployments.
type StoreConfig struct {
	Driver     string      `mapstructure:"driver"` // sqlite | redis | memory
	SQLitePath string      `mapstructure:"sqlite_path"`
	Redis      RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads config.yaml (if present) with env overrides like
// BACKEND_BASE_URL. A .env file is honored for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Backend.BaseURL == "" {
		return nil, apperrors.New(apperrors.CodeNotConfigured, "backend base URL is not set (BACKEND_BASE_URL)")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, apperrors.New(apperrors.CodeNotConfigured, "session JWT secret is not set (AUTH_JWT_SECRET)")
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "flipvault-web")
	viper.SetDefault("app.listen_addr", ":8080")
	viper.SetDefault("backend.base_url", "")
	viper.SetDefault("backend.timeout", 10*time.Second)
	viper.SetDefault("auth.token_ttl", 24*time.Hour)
	viper.SetDefault("store.driver", "sqlite")
	viper.SetDefault("store.sqlite_path", "flipvault.db")
	viper.SetDefault("store.redis.address", "localhost:6379")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}
