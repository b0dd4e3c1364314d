package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the registered migration set for the engine schema.
var Migrations = migrate.NewMigrations() //nolint:gochecknoglobals // - bun migration registry
