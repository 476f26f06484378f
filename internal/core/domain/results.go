package domain

import (
	"time"

	"github.com/google/uuid"
)

// TieState describes a voting date with respect to ties.
type TieState string

const (
	TieStateNone       TieState = "no_tie"
	TieStateUnresolved TieState = "tie_unresolved"
	TieStateResolved   TieState = "tie_resolved"
)

type CandidateVotes struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Votes int       `json:"votes"`
}

type UserRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ResolutionSummary struct {
	WinnerID   uuid.UUID `json:"winnerId"`
	WinnerName string    `json:"winnerName,omitempty"`
	ResolvedAt time.Time `json:"resolvedAt"`
}

type DateResults struct {
	Date           string             `json:"date"`
	Results        []CandidateVotes   `json:"results"`
	NullVotes      int                `json:"nullVotes"`
	TotalVotes     int                `json:"totalVotes"`
	TotalEmployees int                `json:"totalEmployees"`
	NotVoted       []UserRef          `json:"notVoted"`
	State          TieState           `json:"state"`
	TieResolution  *ResolutionSummary `json:"tieResolution"`
}

type Standing struct {
	Rank int       `json:"rank"`
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Wins int       `json:"wins"`
}

type DailyWinner struct {
	Date       string    `json:"date"`
	WinnerID   uuid.UUID `json:"winnerId"`
	WinnerName string    `json:"winnerName"`
	Resolved   bool      `json:"resolved"`
}

type VotesReceived struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TotalVotes int       `json:"totalVotes"`
}

type StandingsReport struct {
	Standings    []Standing      `json:"standings"`
	DailyWinners []DailyWinner   `json:"dailyWinners"`
	TotalVotes   []VotesReceived `json:"totalVotes"`
}

type UnresolvedTie struct {
	Date       string           `json:"date"`
	Candidates []CandidateVotes `json:"candidates"`
}

type Progress struct {
	Date       string    `json:"date"`
	Voted      int       `json:"voted"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	NotVoted   []UserRef `json:"notVoted"`
}

type ProgressSummary struct {
	Voted      int `json:"voted"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type ResolvedTie struct {
	ID         uuid.UUID `json:"id"`
	Date       string    `json:"date"`
	WinnerID   uuid.UUID `json:"winnerId"`
	WinnerName string    `json:"winnerName"`
	ResolvedAt time.Time `json:"resolvedAt"`
}
