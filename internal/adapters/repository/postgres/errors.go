package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

func pqError(err error) (*pq.Error, bool) {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	pgErr, ok := pqError(err)
	return ok && pgErr.Code == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	pgErr, ok := pqError(err)
	return ok && pgErr.Code == foreignKeyViolation
}

func isCheckViolation(err error) bool {
	pgErr, ok := pqError(err)
	return ok && pgErr.Code == checkViolation
}

// violatedConstraint names the constraint behind a pq error, if any.
func violatedConstraint(err error) string {
	pgErr, ok := pqError(err)
	if !ok {
		return ""
	}
	return pgErr.Constraint
}
