package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationContent returns the SQL of the first migration file whose name
// ends with name + ".sql", e.g. "init.up" or "0001_init.down".
func MigrationContent(name string) (string, string, error) {
	pattern, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(name)))
	if err != nil {
		return "", "", fmt.Errorf("invalid migration name: %w", err)
	}

	files, err := migrationNames()
	if err != nil {
		return "", "", err
	}
	for _, f := range files {
		if !pattern.MatchString(f) {
			continue
		}
		content, err := fs.ReadFile(migrationFiles, "migrations/"+f)
		if err != nil {
			return "", "", fmt.Errorf("failed to read migration %s: %w", f, err)
		}
		return f, string(content), nil
	}
	return "", "", fmt.Errorf("migration file not found: %s", name)
}

// MigrateUp applies every *.up.sql file in lexical order.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	files, err := migrationNames()
	if err != nil {
		return err
	}
	for _, f := range files {
		if !strings.HasSuffix(f, ".up.sql") {
			continue
		}
		content, err := fs.ReadFile(migrationFiles, "migrations/"+f)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", f, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", f, err)
		}
	}
	return nil
}

func migrationNames() ([]string, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
