package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idir-jpg/study-success-matching/pkg/config"
)

type transitConfig struct {
	APIKey   string        `env:"TEST_TRANSIT_API_KEY"`
	CacheTTL time.Duration `env:"TEST_TRANSIT_CACHE_TTL" envDefault:"24h"`
	Workers  int           `env:"TEST_TRANSIT_WORKERS" envDefault:"4"`
}

type senderConfig struct {
	Senders []string `env:"TEST_SENDERS" envSeparator:","`
}

type requiredConfig struct {
	Site string `env:"TEST_REQUIRED_SITE,required"`
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_TRANSIT_API_KEY", "maps-key")
	t.Setenv("TEST_TRANSIT_CACHE_TTL", "2h")

	var cfg transitConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "maps-key", cfg.APIKey)
	assert.Equal(t, 2*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoad_Slices(t *testing.T) {
	t.Setenv("TEST_SENDERS", "a@example.com,b@example.com")

	var cfg senderConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Senders)
}

func TestLoad_MissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	t.Parallel()

	var cfg *transitConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}
