package main

// Manage the users/resumes schema:
//   go run ./cmd/migrate                apply pending migrations
//   go run ./cmd/migrate -dir down      roll back the latest migration
//   go run ./cmd/migrate -dir redo      roll back and reapply the latest migration
//   go run ./cmd/migrate -version       print the current version

import (
	"context"
	"flag"
	"fmt"
	"os"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
)

func main() {
	dirFlag := flag.String("dir", string(db.Up), "migration direction: up, down or redo")
	version := flag.Bool("version", false, "print the current schema version and exit")
	flag.Parse()

	if err := run(*dirFlag, *version); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(dirFlag string, printVersion bool) error {
	dir, err := db.ParseDirection(dirFlag)
	if err != nil {
		return err
	}
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()

	if printVersion {
		v, err := db.SchemaVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		fmt.Println(v)
		return nil
	}
	if err := db.Migrate(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	telemetry.Info("migrate.done", map[string]any{"direction": string(dir)})
	return nil
}
