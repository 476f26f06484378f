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

const voteColumns = `id, voter_id, to_char(date, 'YYYY-MM-DD'), voted_for_id, is_null_vote, voted_at`

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// Save inserts vote. A second vote by the same voter on the same date
// violates votes_voter_date_key and is reported as ErrAlreadyVoted.
func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, voter_id, date, voted_for_id, is_null_vote)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING voted_at
	`
	err := r.db.QueryRowContext(ctx, query, vote.ID, vote.VoterID, vote.Date, vote.VotedForID, vote.IsNullVote).
		Scan(&vote.VotedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrAlreadyVoted
		case isForeignKeyViolation(err):
			switch violatedConstraint(err) {
			case "votes_date_fkey":
				return domain.ErrDateNotFound
			case "votes_voter_id_fkey":
				return domain.ErrUserNotFound
			}
			return domain.ErrInvalidCandidate
		case isCheckViolation(err):
			return fmt.Errorf("%w: must provide votedForId or set isNullVote to true", domain.ErrInvalidInput)
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) GetByVoterAndDate(ctx context.Context, voterID uuid.UUID, date string) (*domain.Vote, error) {
	query := `SELECT ` + voteColumns + ` FROM votes WHERE voter_id = $1 AND date = $2::date`
	var v domain.Vote
	err := scanVote(r.db.QueryRowContext(ctx, query, voterID, date), &v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *voteRepository) ListByVoter(ctx context.Context, voterID uuid.UUID) ([]domain.Vote, error) {
	query := `SELECT ` + voteColumns + ` FROM votes WHERE voter_id = $1 ORDER BY date DESC`
	return r.list(ctx, query, voterID)
}

func (r *voteRepository) ListByDate(ctx context.Context, date string) ([]domain.Vote, error) {
	query := `SELECT ` + voteColumns + ` FROM votes WHERE date = $1::date ORDER BY voted_at, id`
	return r.list(ctx, query, date)
}

func (r *voteRepository) ListAll(ctx context.Context) ([]domain.Vote, error) {
	query := `SELECT ` + voteColumns + ` FROM votes ORDER BY date, voted_at, id`
	return r.list(ctx, query)
}

func (r *voteRepository) list(ctx context.Context, query string, args ...any) ([]domain.Vote, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []domain.Vote{}
	for rows.Next() {
		var v domain.Vote
		if err := scanVote(rows, &v); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

func scanVote(row rowScanner, v *domain.Vote) error {
	var votedFor uuid.NullUUID
	if err := row.Scan(&v.ID, &v.VoterID, &v.Date, &votedFor, &v.IsNullVote, &v.VotedAt); err != nil {
		return fmt.Errorf("failed to scan vote: %w", err)
	}
	if votedFor.Valid {
		id := votedFor.UUID
		v.VotedForID = &id
	}
	return nil
}
