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

const userColumns = `id, name, username, password, is_admin, created_at, updated_at`

const tieWinnerConstraint = "tie_resolutions_winner_id_fkey"

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	query := `SELECT id, name, username FROM users WHERE is_admin = FALSE ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Username); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`
	return r.getOne(ctx, query, username)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, username, password, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, user.Name, user.Username, user.Password, user.IsAdmin).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Update applies only the non-nil fields of update. An employee who has
// received votes is never promoted to admin.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, update ports.UserUpdate) (*domain.User, error) {
	query := `
		UPDATE users SET
			name = COALESCE($2::text, name),
			username = COALESCE($3::text, username),
			password = COALESCE($4::text, password),
			is_admin = COALESCE($5::boolean, is_admin),
			updated_at = NOW()
		WHERE id = $1
			AND NOT (
				COALESCE($5::boolean, FALSE)
				AND NOT is_admin
				AND EXISTS (SELECT 1 FROM votes WHERE voted_for_id = $1)
			)
		RETURNING ` + userColumns

	var user domain.User
	err := scanUser(r.db.QueryRowContext(ctx, query, id, update.Name, update.Username, update.Password, update.IsAdmin), &user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.missingOrGuarded(ctx, id)
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}

// missingOrGuarded explains an update that matched no row.
func (r *UserRepository) missingOrGuarded(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if exists {
		return domain.ErrHasVotes
	}
	return domain.ErrUserNotFound
}

// Delete removes the user with their votes. Recorded tie winners cannot be
// deleted.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns
	user, err := r.getOne(ctx, query, id)
	if err != nil && isForeignKeyViolation(err) && violatedConstraint(err) == tieWinnerConstraint {
		return nil, domain.ErrUserIsWinner
	}
	return user, err
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, args...), &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, u *domain.User) error {
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Password, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to scan user: %w", err)
	}
	return nil
}
