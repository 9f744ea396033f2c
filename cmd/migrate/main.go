package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"elevate-backend/internal/shared/config"
	"elevate-backend/internal/shared/storage/db"
	"elevate-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.LogFormat, cfg.LogLevel); err == nil {
		defer telemetry.Sync()
	}
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"err": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"err": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", nil)
}
