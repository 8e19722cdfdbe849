// Package config loads the desk's configuration from environment variables.
//
// Values come from the process environment, optionally seeded from one or
// more `.env` files through github.com/joho/godotenv, and are parsed into
// tagged structs with github.com/caarlos0/env/v11. Each subsystem declares
// its own Config struct (mail, drive, transit, journal, http server) and the
// application aggregates them.
//
// # Usage
//
//	type MailConfig struct {
//		Provider string `env:"MAIL_PROVIDER" envDefault:"graph"`
//		TestTo   string `env:"MAIL_TEST_RECIPIENT"`
//	}
//
//	var cfg MailConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// # Env files
//
// The default `.env` in the working directory is read once, before the first
// Load. Additional files can be registered with UseEnvFiles; variables already
// present in the environment are never overwritten.
package config
