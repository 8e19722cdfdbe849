// Package pg opens the PostgreSQL pool behind the send journal and applies
// its schema.
//
// Connect retries with a growing delay so the desk can start alongside its
// database container. Migrate runs goose migrations read from an fs.FS, which
// lets each store embed its own SQL files:
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	pool, err := pg.Connect(ctx, cfg)
//	err = pg.Migrate(ctx, pool, migrations, "migrations", cfg.MigrationsTable, log)
//
// Healthcheck returns a check usable by the readiness endpoint.
package pg
