package domain

import (
	"time"

	"github.com/google/uuid"
)

type VotingDate struct {
	Date     string `json:"date"`
	IsActive bool   `json:"isActive"`
}

type Vote struct {
	ID         uuid.UUID  `json:"id"`
	VoterID    uuid.UUID  `json:"voterId"`
	Date       string     `json:"date"`
	VotedForID *uuid.UUID `json:"votedForId"`
	IsNullVote bool       `json:"isNullVote"`
	VotedAt    time.Time  `json:"votedAt"`
}

// Valid reports whether exactly one of VotedForID and IsNullVote is set.
func (v Vote) Valid() bool {
	return (v.VotedForID == nil) == v.IsNullVote
}

type TieResolution struct {
	ID         uuid.UUID  `json:"id"`
	Date       string     `json:"date"`
	WinnerID   uuid.UUID  `json:"winnerId"`
	ResolvedAt time.Time  `json:"resolvedAt"`
	ResolvedBy *uuid.UUID `json:"resolvedBy,omitempty"`
}

// VoteRecord is a vote as shown back to its voter.
type VoteRecord struct {
	Date       string    `json:"date"`
	VotedFor   *UserRef  `json:"votedFor"`
	IsNullVote bool      `json:"isNullVote"`
	VotedAt    time.Time `json:"votedAt"`
}
