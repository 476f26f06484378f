package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsEmployee reports whether the user can be voted for.
func (u User) IsEmployee() bool {
	return !u.IsAdmin
}

// Candidate is the public projection of an employee.
type Candidate struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
}

// Identity is the authenticated caller of a request.
type Identity struct {
	ID       uuid.UUID
	Name     string
	Username string
	IsAdmin  bool
}

func (i Identity) Role() string {
	if i.IsAdmin {
		return RoleAdmin
	}
	return RoleEmployee
}

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)
