package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

type dateRepository struct {
	db *sql.DB
}

func NewDateRepository(db *sql.DB) ports.DateRepository {
	return &dateRepository{
		db: db,
	}
}

func (r *dateRepository) List(ctx context.Context) ([]domain.VotingDate, error) {
	query := `SELECT to_char(date, 'YYYY-MM-DD'), is_active FROM voting_dates ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query voting dates: %w", err)
	}
	defer rows.Close()

	dates := []domain.VotingDate{}
	for rows.Next() {
		var d domain.VotingDate
		if err := rows.Scan(&d.Date, &d.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan voting date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *dateRepository) Get(ctx context.Context, date string) (*domain.VotingDate, error) {
	query := `SELECT to_char(date, 'YYYY-MM-DD'), is_active FROM voting_dates WHERE date = $1::date`
	var d domain.VotingDate
	err := r.db.QueryRowContext(ctx, query, date).Scan(&d.Date, &d.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDateNotFound
		}
		return nil, fmt.Errorf("failed to get voting date: %w", err)
	}
	return &d, nil
}

// Ensure inserts date unless it already exists and reports whether it did.
func (r *dateRepository) Ensure(ctx context.Context, date domain.VotingDate) (bool, error) {
	query := `
		INSERT INTO voting_dates (date, is_active)
		VALUES ($1::date, $2)
		ON CONFLICT (date) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, date.Date, date.IsActive)
	if err != nil {
		return false, fmt.Errorf("failed to insert voting date: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
