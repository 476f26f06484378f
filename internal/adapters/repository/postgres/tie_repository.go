package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

const tieColumns = `id, to_char(date, 'YYYY-MM-DD'), winner_id, resolved_at, resolved_by`

type tieRepository struct {
	db *sql.DB
}

func NewTieRepository(db *sql.DB) ports.TieRepository {
	return &tieRepository{
		db: db,
	}
}

// Create records a resolution. tie_resolutions_date_key makes a second
// resolution for the same date fail with ErrTieAlreadyResolved.
func (r *tieRepository) Create(ctx context.Context, resolution *domain.TieResolution) error {
	query := `
		INSERT INTO tie_resolutions (id, date, winner_id, resolved_by)
		VALUES ($1, $2::date, $3, $4)
		RETURNING resolved_at
	`
	err := r.db.QueryRowContext(ctx, query, resolution.ID, resolution.Date, resolution.WinnerID, resolution.ResolvedBy).
		Scan(&resolution.ResolvedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrTieAlreadyResolved
		case isForeignKeyViolation(err):
			if violatedConstraint(err) == "tie_resolutions_date_fkey" {
				return domain.ErrDateNotFound
			}
			return domain.ErrWinnerNotTied
		}
		return fmt.Errorf("failed to save tie resolution: %w", err)
	}
	return nil
}

func (r *tieRepository) GetByDate(ctx context.Context, date string) (*domain.TieResolution, error) {
	query := `SELECT ` + tieColumns + ` FROM tie_resolutions WHERE date = $1::date`
	var t domain.TieResolution
	if err := scanTie(r.db.QueryRowContext(ctx, query, date), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *tieRepository) List(ctx context.Context) ([]domain.TieResolution, error) {
	query := `SELECT ` + tieColumns + ` FROM tie_resolutions ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tie resolutions: %w", err)
	}
	defer rows.Close()

	resolutions := []domain.TieResolution{}
	for rows.Next() {
		var t domain.TieResolution
		if err := scanTie(rows, &t); err != nil {
			return nil, err
		}
		resolutions = append(resolutions, t)
	}
	return resolutions, rows.Err()
}

func scanTie(row rowScanner, t *domain.TieResolution) error {
	var resolvedBy uuid.NullUUID
	if err := row.Scan(&t.ID, &t.Date, &t.WinnerID, &t.ResolvedAt, &resolvedBy); err != nil {
		return fmt.Errorf("failed to scan tie resolution: %w", err)
	}
	if resolvedBy.Valid {
		id := resolvedBy.UUID
		t.ResolvedBy = &id
	}
	return nil
}
