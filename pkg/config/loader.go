package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	envMu     sync.Mutex
	envLoaded bool
	envFiles  []string
	envErr    error
)

// UseEnvFiles registers env files read before the first Load.
// Must be called before Load; later calls have no effect once files are read.
func UseEnvFiles(paths ...string) {
	envMu.Lock()
	defer envMu.Unlock()
	if envLoaded {
		return
	}
	envFiles = append(envFiles, paths...)
}

// loadEnvFiles reads the default .env (if present) and the registered files once.
func loadEnvFiles() error {
	envMu.Lock()
	defer envMu.Unlock()
	if envLoaded {
		return envErr
	}
	envLoaded = true

	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil {
			envErr = errors.Join(ErrEnvFile, fmt.Errorf("%s: %w", path, err))
			return envErr
		}
	}
	return nil
}

// Load parses environment variables into v based on its `env` struct tags.
//
// Example:
//
//	type DriveConfig struct {
//		Backend string `env:"DRIVE_BACKEND" envDefault:"graph"`
//		SiteID  string `env:"GRAPH_SITE_ID"`
//	}
//
//	var cfg DriveConfig
//	err := config.Load(&cfg)
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := loadEnvFiles(); err != nil {
		return err
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
