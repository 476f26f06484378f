package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/dailyvote/api/internal/config"
)

type rootOptions struct {
	databaseURL string
	timeout     time.Duration
	verbose     bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "voteadmin",
		Short:        "Administration jobs for the daily vote database",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return config.LoadDotEnv()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL or POSTGRES_*)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Maximum duration of the job")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newSeedCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	return cmd
}

// openDB connects to the configured database and checks the connection.
func (o *rootOptions) openDB(ctx context.Context) (*sql.DB, error) {
	dsn := o.databaseURL
	if dsn == "" {
		dsn = config.DatabaseURL(os.Getenv)
	}
	if dsn == "" {
		return nil, fmt.Errorf("database is not configured (use --database-url, DATABASE_URL or POSTGRES_*)")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
