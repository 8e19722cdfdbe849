package pg

import "errors"

var (
	ErrEmptyConnectionString    = errors.New("pg: empty connection string, set PG_CONN_URL")
	ErrFailedToParseDBConfig    = errors.New("pg: failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("pg: failed to open db connection")
	ErrFailedToApplyMigrations  = errors.New("pg: failed to apply migrations")
	ErrHealthcheckFailed        = errors.New("pg: healthcheck failed")
)
