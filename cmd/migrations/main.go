package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/dailyvote/api/internal/adapters/repository/postgres"
	"github.com/dailyvote/api/internal/config"
)

// Runs a single migration file by name, e.g. `migrations init.up`, or every
// up migration with `migrations up`.
func main() {
	var dsn string
	flag.StringVar(&dsn, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL or POSTGRES_*)")
	flag.Parse()

	if flag.NArg() < 1 {
		slog.Error("a migration name is required")
		os.Exit(1)
	}
	migrationName := flag.Arg(0)

	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load environment", "error", err)
		os.Exit(1)
	}
	if dsn == "" {
		dsn = config.DatabaseURL(os.Getenv)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if migrationName == "up" {
		if err := postgres.MigrateUp(ctx, db); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("all up migrations executed successfully")
		return
	}

	file, content, err := postgres.MigrationContent(migrationName)
	if err != nil {
		slog.Error("failed to find migration", "name", migrationName, "error", err)
		os.Exit(1)
	}

	if _, err := db.ExecContext(ctx, content); err != nil {
		slog.Error("failed to execute migration", "file", file, "error", err)
		os.Exit(1)
	}

	slog.Info("migration file executed successfully", "file", file)
}
