// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	LockNone  = "none"
	LockLocal = "local"
	LockRedis = "redis"
)

type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	MongoURI      string `mapstructure:"MONGODB_URI"`
	MongoDatabase string `mapstructure:"MONGODB_DATABASE"`
	StoreDriver   string `mapstructure:"STORE_DRIVER"`

	// SecretKey signs session tokens. JWT_SECRET is read when SECRET_KEY is unset.
	SecretKey  string `mapstructure:"SECRET_KEY"`
	BcryptCost int    `mapstructure:"BCRYPT_COST"`

	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogFormat      string `mapstructure:"LOG_FORMAT"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	DocumentLock  string `mapstructure:"DOCUMENT_LOCK"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	TokenTTL       time.Duration `mapstructure:"-"`
	RequestTimeout time.Duration `mapstructure:"-"`
	LockTTL        time.Duration `mapstructure:"-"`
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("MONGODB_URI", "mongodb://127.0.0.1:27017")
	v.SetDefault("MONGODB_DATABASE", "devconnect")
	v.SetDefault("STORE_DRIVER", StoreMongo)
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("DOCUMENT_LOCK", LockNone)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")

	// seconds
	v.SetDefault("TOKEN_TTL", 3600)
	v.SetDefault("REQUEST_TIMEOUT", 10)
	v.SetDefault("LOCK_TTL", 5)

	v.AutomaticEnv()
	if err := v.BindEnv("SECRET_KEY", "SECRET_KEY", "JWT_SECRET"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	cfg.TokenTTL = time.Duration(v.GetInt("TOKEN_TTL")) * time.Second
	cfg.RequestTimeout = time.Duration(v.GetInt("REQUEST_TIMEOUT")) * time.Second
	cfg.LockTTL = time.Duration(v.GetInt("LOCK_TTL")) * time.Second
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.DocumentLock = strings.ToLower(strings.TrimSpace(cfg.DocumentLock))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}

	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required for the mongo store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.DocumentLock {
	case LockNone, LockLocal:
	case LockRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis lock")
		}
	default:
		return fmt.Errorf("unknown DOCUMENT_LOCK %q", c.DocumentLock)
	}
	return nil
}

func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
