package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dailyvote/api/internal/adapters/repository/postgres"
	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

var january2026Dates = []string{
	"2026-01-02", "2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08",
	"2026-01-09", "2026-01-10", "2026-01-12", "2026-01-13", "2026-01-15",
	"2026-01-16", "2026-01-19", "2026-01-20", "2026-01-21", "2026-01-22",
	"2026-01-24", "2026-01-27", "2026-01-28", "2026-01-29", "2026-01-30",
	"2026-01-31",
}

type seedOptions struct {
	adminName     string
	adminUsername string
	adminPassword string
	dates         []string
}

type seedResult struct {
	datesCreated int
	adminCreated bool
}

func newSeedCommand(root *rootOptions) *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the voting dates and the initial admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), root.timeout)
			defer cancel()

			db, err := root.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := seed(ctx, postgres.NewDateRepository(db), postgres.NewUserRepository(db), *opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Voting dates: %d total, %d new\n", len(opts.dates), res.datesCreated)
			if res.adminCreated {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin created: %s\n", opts.adminUsername)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin %s already exists\n", opts.adminUsername)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.adminName, "admin-name", "Admin", "Display name of the initial admin")
	cmd.Flags().StringVar(&opts.adminUsername, "admin-username", "admin", "Username of the initial admin")
	cmd.Flags().StringVar(&opts.adminPassword, "admin-password", "admin123", "Password of the initial admin")
	cmd.Flags().StringSliceVar(&opts.dates, "dates", january2026Dates, "Voting dates to create (YYYY-MM-DD)")
	return cmd
}

// seed is idempotent: existing dates and an existing admin are left alone.
func seed(ctx context.Context, dates ports.DateRepository, users ports.UserRepository, opts seedOptions) (seedResult, error) {
	var res seedResult

	for _, raw := range opts.dates {
		date, err := domain.ParseDate(raw)
		if err != nil {
			return res, fmt.Errorf("invalid seed date %q: %w", raw, err)
		}
		created, err := dates.Ensure(ctx, domain.VotingDate{Date: date, IsActive: true})
		if err != nil {
			return res, err
		}
		if created {
			res.datesCreated++
			slog.Debug("voting date created", "date", date)
		}
	}

	username := ports.NormalizeUsername(opts.adminUsername)
	if _, err := users.GetByUsername(ctx, username); err == nil {
		return res, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return res, fmt.Errorf("failed to look up admin: %w", err)
	}

	admin := &domain.User{
		Name:     opts.adminName,
		Username: username,
		Password: opts.adminPassword,
		IsAdmin:  true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return res, fmt.Errorf("failed to create admin: %w", err)
	}
	res.adminCreated = true
	slog.Info("admin created", "user_id", admin.ID, "username", admin.Username)
	return res, nil
}
