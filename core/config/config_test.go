package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/platform/core/config"
)

type sessionTestConfig struct {
	TTL      time.Duration `env:"TEST_SESSION_TTL" envDefault:"24h"`
	FilePath string        `env:"TEST_SESSION_FILE" envDefault:"freshmart_session.json"`
}

type requiredTestConfig struct {
	Secret string `env:"TEST_REQUIRED_SECRET_MISSING,required"`
}

type overrideTestConfig struct {
	Limit int `env:"TEST_OVERRIDE_LIMIT" envDefault:"10"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg sessionTestConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 24*time.Hour, cfg.TTL)
	assert.Equal(t, "freshmart_session.json", cfg.FilePath)
}

func TestLoad_NilTarget(t *testing.T) {
	var cfg *sessionTestConfig
	err := config.Load(cfg)
	assert.ErrorIs(t, err, config.ErrNilConfig)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg requiredTestConfig
	err := config.Load(&cfg)
	require.Error(t, err)
}

func TestLoad_EnvOverrideAndCache(t *testing.T) {
	t.Setenv("TEST_OVERRIDE_LIMIT", "42")

	var first overrideTestConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, 42, first.Limit)

	// Cached value wins even after the variable changes.
	t.Setenv("TEST_OVERRIDE_LIMIT", "7")
	var second overrideTestConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first, second)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		var cfg *sessionTestConfig
		config.MustLoad(cfg)
	})
}
