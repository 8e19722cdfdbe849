package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idir-jpg/study-success-matching/internal/config"
	"github.com/idir-jpg/study-success-matching/internal/drive"
	"github.com/idir-jpg/study-success-matching/internal/mail"
	"github.com/idir-jpg/study-success-matching/internal/transit"
	"github.com/idir-jpg/study-success-matching/pkg/redis"
)

func TestLoad(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "dev")
	t.Setenv("DRIVE_BACKEND", "local")
	t.Setenv("AUTH_USERS", "manon:$2a$10$abc,idir:$2a$10$def")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("TRANSIT_CACHE_TTL", "1h")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.ProviderDev, cfg.Mail.Provider)
	assert.Equal(t, drive.BackendLocal, cfg.Drive.Backend)
	assert.Equal(t, map[string]string{"manon": "$2a$10$abc", "idir": "$2a$10$def"}, cfg.Auth.Users)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, time.Hour, cfg.Transit.CacheTTL)

	assert.Equal(t, 20, cfg.App.HistoryLimit)
	assert.Equal(t, "GESTION QUOTIDIENNE/Parent_Eleve_Prof.xlsx", cfg.Drive.Paths.FollowUp)
	assert.Equal(t, "GESTION QUOTIDIENNE/TEST DE MEMOIRE", cfg.Drive.Paths.ProfileResults)
	assert.Equal(t, "desk_schema_migrations", cfg.Postgres.MigrationsTable)
	assert.Equal(t, 5, cfg.SendLimit.Capacity)
	assert.Equal(t, 10*time.Second, cfg.SendLimit.RefillInterval)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "carrier-pigeon")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() config.Config {
		return config.Config{
			Mail:    config.Mail{Provider: config.ProviderGraph},
			Drive:   drive.Config{Backend: drive.BackendGraph},
			Transit: transit.Config{Cache: config.CacheMemory},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "postmark without token",
			mutate: func(c *config.Config) { c.Mail.Provider = config.ProviderPostmark },
			want:   "POSTMARK_SERVER_TOKEN",
		},
		{
			name:   "redis cache without url",
			mutate: func(c *config.Config) { c.Transit.Cache = config.CacheRedis },
			want:   "REDIS_URL",
		},
		{
			name:   "unknown cache",
			mutate: func(c *config.Config) { c.Transit.Cache = "disk" },
			want:   "TRANSIT_CACHE",
		},
		{
			name:   "unknown backend",
			mutate: func(c *config.Config) { c.Drive.Backend = "ftp" },
			want:   "DRIVE_BACKEND",
		},
		{
			name:   "bad log level",
			mutate: func(c *config.Config) { c.App.LogLevel = "loud" },
			want:   "LOG_LEVEL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	ok := valid()
	ok.Mail.Provider = config.ProviderPostmark
	ok.Mail.Postmark = mail.PostmarkConfig{ServerToken: "server-token"}
	ok.Transit.Cache = config.CacheRedis
	ok.Redis = redis.Config{ConnectionURL: "redis://localhost:6379/0"}
	assert.NoError(t, ok.Validate())
}

func TestLevel(t *testing.T) {
	t.Parallel()

	var cfg config.Config
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Nil(t, lvl)

	cfg.App.LogLevel = "warn"
	lvl, err = cfg.Level()
	require.NoError(t, err)
	require.NotNil(t, lvl)
	assert.Equal(t, slog.LevelWarn, *lvl)
}

func TestProduction(t *testing.T) {
	t.Parallel()

	for env, want := range map[string]bool{"production": true, "prod": true, "PROD": true, "staging": false, "": false} {
		cfg := config.Config{App: config.App{Env: env}}
		assert.Equal(t, want, cfg.Production(), env)
	}
}
