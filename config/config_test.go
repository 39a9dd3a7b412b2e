package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, LockNone, cfg.DocumentLock)
}

func TestLoadReadsJWTSecretAlias(t *testing.T) {
	t.Setenv("JWT_SECRET", "legacy")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.SecretKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("TOKEN_TTL", "60")
	t.Setenv("STORE_DRIVER", " Memory ")
	t.Setenv("DOCUMENT_LOCK", "local")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.TokenTTL)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, LockLocal, cfg.DocumentLock)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:           "5000",
			SecretKey:      "s",
			TokenTTL:       time.Hour,
			RequestTimeout: time.Second,
			StoreDriver:    StoreMemory,
			DocumentLock:   LockNone,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"missing secret", func(c *Config) { c.SecretKey = "" }, false},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }, false},
		{"unknown store", func(c *Config) { c.StoreDriver = "sqlite" }, false},
		{"mongo without uri", func(c *Config) { c.StoreDriver = StoreMongo }, false},
		{"unknown lock", func(c *Config) { c.DocumentLock = "etcd" }, false},
		{"redis lock without addr", func(c *Config) { c.DocumentLock = LockRedis }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			if tt.ok {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}
}

func TestOrigins(t *testing.T) {
	c := &Config{AllowedOrigins: "http://a.test, http://b.test ,"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.Origins())
}
