package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dailyvote/api/internal/adapters/repository/postgres"
	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/services"
)

type exportOptions struct {
	outDir     string
	format     string
	exportedBy string
}

func newExportCommand(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a full backup of the voting data to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "json" && opts.format != "yaml" {
				return fmt.Errorf("unsupported format %q (use json or yaml)", opts.format)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), root.timeout)
			defer cancel()

			db, err := root.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := services.NewExportService(
				postgres.NewDateRepository(db),
				postgres.NewUserRepository(db),
				postgres.NewVoteRepository(db),
				postgres.NewTieRepository(db),
				nil,
			)
			export, err := svc.Export(ctx, opts.exportedBy)
			if err != nil {
				return err
			}

			path, size, err := writeExport(opts.outDir, opts.format, export, time.Now())
			if err != nil {
				return err
			}
			printExportSummary(cmd.OutOrStdout(), export, path, size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "Directory to write the backup into")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Backup format: json or yaml")
	cmd.Flags().StringVar(&opts.exportedBy, "exported-by", "voteadmin", "Name recorded in the backup metadata")
	return cmd
}

// writeExport stores export as vote-backup-YYYY-MM-DD.<format> in dir and
// returns the file path and size.
func writeExport(dir, format string, export *domain.Export, now time.Time) (string, int64, error) {
	var (
		body []byte
		err  error
	)
	switch format {
	case "yaml":
		body, err = yaml.Marshal(export)
	default:
		body, err = json.MarshalIndent(export, "", "  ")
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode export: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("vote-backup-%s.%s", now.Format(domain.DateLayout), format))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, int64(len(body)), nil
}

func printExportSummary(w io.Writer, export *domain.Export, path string, size int64) {
	s := export.Summary
	fmt.Fprintf(w, "Backup written to %s (%s)\n", path, humanize.Bytes(uint64(size)))
	fmt.Fprintf(w, "  Users:           %d (%d employees)\n", s.TotalUsers, s.TotalEmployees)
	fmt.Fprintf(w, "  Votes:           %s\n", humanize.Comma(int64(s.TotalVotes)))
	fmt.Fprintf(w, "  Tie resolutions: %d\n", s.TotalTieResolutions)
	fmt.Fprintf(w, "  Voting dates:    %d", s.TotalVotingDates)
	if s.DateRange.Earliest != "" {
		fmt.Fprintf(w, " (%s to %s)", s.DateRange.Earliest, s.DateRange.Latest)
	}
	fmt.Fprintln(w)
}
