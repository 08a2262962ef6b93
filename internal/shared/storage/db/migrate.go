package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// Direction selects what Migrate does with the embedded users/resumes schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Redo Direction = "redo"
)

// ParseDirection accepts up, down or redo.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Up, Down, Redo:
		return d, nil
	default:
		return "", fmt.Errorf("unknown migration direction %q", s)
	}
}

// Migrate applies pending migrations (Up), reverts the latest (Down), or
// reapplies the latest (Redo). A nil database is the memory store: no-op.
func Migrate(ctx context.Context, database *sql.DB, dir Direction) error {
	if database == nil {
		return nil
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	switch dir {
	case Up:
		return goose.UpContext(ctx, database, migrationsDir)
	case Down:
		return goose.DownContext(ctx, database, migrationsDir)
	case Redo:
		return goose.RedoContext(ctx, database, migrationsDir)
	default:
		return fmt.Errorf("unknown migration direction %q", dir)
	}
}

// SchemaVersion reports the currently applied schema version.
func SchemaVersion(database *sql.DB) (int64, error) {
	if err := prepareGoose(); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(database)
}

func prepareGoose() error {
	goose.SetBaseFS(migrationFiles)
	return goose.SetDialect("postgres")
}
