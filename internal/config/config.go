// Package config aggregates the environment configuration of every desk
// subsystem into one struct loaded at startup.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/idir-jpg/study-success-matching/internal/drive"
	"github.com/idir-jpg/study-success-matching/internal/graph"
	"github.com/idir-jpg/study-success-matching/internal/mail"
	"github.com/idir-jpg/study-success-matching/internal/transit"
	envconfig "github.com/idir-jpg/study-success-matching/pkg/config"
	"github.com/idir-jpg/study-success-matching/pkg/httpserver"
	"github.com/idir-jpg/study-success-matching/pkg/pg"
	"github.com/idir-jpg/study-success-matching/pkg/ratelimiter"
	"github.com/idir-jpg/study-success-matching/pkg/redis"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// MailProvider names the Sender the dispatcher uses.
type MailProvider string

const (
	ProviderGraph    MailProvider = "graph"
	ProviderPostmark MailProvider = "postmark"
	ProviderDev      MailProvider = "dev"
)

// Transit cache kinds.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

type App struct {
	Env             string `env:"APP_ENV" envDefault:"development"`
	Name            string `env:"APP_NAME" envDefault:"study-success-desk"`
	LogLevel        string `env:"LOG_LEVEL"` // overrides the level implied by APP_ENV
	AssetsDir       string `env:"ASSETS_DIR" envDefault:"./assets"`
	HistoryLimit    int    `env:"HISTORY_LIMIT" envDefault:"20"`
	JournalCapacity int    `env:"JOURNAL_MEMORY_CAPACITY" envDefault:"200"`
}

// Mail selects the provider. DirectoryPath points at a YAML sender list;
// empty keeps the built-in staff directory.
type Mail struct {
	Provider      MailProvider `env:"MAIL_PROVIDER" envDefault:"graph"`
	TestAddress   string       `env:"MAIL_TEST_ADDRESS"`
	DirectoryPath string       `env:"MAIL_DIRECTORY_PATH"`
	DevDir        string       `env:"MAIL_DEV_DIR" envDefault:"./outbox"`
	Postmark      mail.PostmarkConfig
}

// Auth maps staff logins to bcrypt hashes, as AUTH_USERS=login:hash,login:hash.
type Auth struct {
	Users map[string]string `env:"AUTH_USERS"`
}

type Config struct {
	App       App
	Auth      Auth
	Mail      Mail
	SendLimit ratelimiter.Config
	Graph     graph.Config
	Drive     drive.Config
	Transit   transit.Config
	Redis     redis.Config
	Postgres  pg.Config
	HTTP      httpserver.Config
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the combinations env parsing cannot.
func (c Config) Validate() error {
	var errs []error
	switch c.Mail.Provider {
	case ProviderGraph, ProviderDev:
	case ProviderPostmark:
		if c.Mail.Postmark.ServerToken == "" {
			errs = append(errs, errors.New("MAIL_PROVIDER=postmark needs POSTMARK_SERVER_TOKEN"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_PROVIDER %q", c.Mail.Provider))
	}

	switch c.Transit.Cache {
	case CacheMemory, CacheNone, "":
	case CacheRedis:
		if !c.Redis.Enabled() {
			errs = append(errs, errors.New("TRANSIT_CACHE=redis needs REDIS_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown TRANSIT_CACHE %q", c.Transit.Cache))
	}

	switch c.Drive.Backend {
	case drive.BackendGraph, drive.BackendS3, drive.BackendLocal:
	default:
		errs = append(errs, fmt.Errorf("unknown DRIVE_BACKEND %q", c.Drive.Backend))
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// Level parses LOG_LEVEL; nil means the APP_ENV default applies.
func (c Config) Level() (*slog.Level, error) {
	s := strings.TrimSpace(c.App.LogLevel)
	if s == "" {
		return nil, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return &l, nil
}

// Production reports whether APP_ENV names a production deployment.
func (c Config) Production() bool {
	switch strings.ToLower(c.App.Env) {
	case "production", "prod":
		return true
	}
	return false
}
