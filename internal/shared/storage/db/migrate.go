package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"elevate-backend/internal/shared/telemetry"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies the embedded users/resumes/analyses migrations.
// A nil database is a no-op so in-memory dev runs can call it unconditionally.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, database, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, database)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	telemetry.Info("db.migrated", map[string]any{"version": version})
	return nil
}

// gooseLogger routes goose output through telemetry instead of the std logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	telemetry.Info("db.goose", map[string]any{"msg": strings.TrimSpace(fmt.Sprintf(format, v...))})
}

// Fatalf must not exit the API process; goose only calls it from its CLI paths.
func (gooseLogger) Fatalf(format string, v ...interface{}) {
	telemetry.Error("db.goose", map[string]any{"msg": strings.TrimSpace(fmt.Sprintf(format, v...))})
}
