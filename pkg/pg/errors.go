package pg

import "errors"

var (
	// ErrFailedToParseDBConfig is returned when the connection string is invalid.
	ErrFailedToParseDBConfig = errors.New("pg: failed to parse connection config")

	// ErrFailedToOpenDBConnection is returned when all connection attempts fail.
	ErrFailedToOpenDBConnection = errors.New("pg: failed to open connection")

	// ErrFailedToApplyMigrations is returned when schema migration fails.
	ErrFailedToApplyMigrations = errors.New("pg: failed to apply migrations")

	// ErrMigrationsDirNotFound is returned when the migrations directory does not exist.
	ErrMigrationsDirNotFound = errors.New("pg: migrations directory not found")

	// ErrHealthcheckFailed is returned when the database ping fails.
	ErrHealthcheckFailed = errors.New("pg: healthcheck failed")
)
