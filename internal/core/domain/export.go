package domain

import (
	"time"

	"github.com/google/uuid"
)

type Export struct {
	Metadata            ExportMetadata       `json:"metadata" yaml:"metadata"`
	Summary             ExportSummary        `json:"summary" yaml:"summary"`
	Users               []ExportUser         `json:"users" yaml:"users"`
	VotingDates         []VotingDate         `json:"votingDates" yaml:"votingDates"`
	Votes               []ExportVote         `json:"votes" yaml:"votes"`
	TieResolutions      []ExportResolution   `json:"tieResolutions" yaml:"tieResolutions"`
	VoteSummaryByDate   []DateVoteSummary    `json:"voteSummaryByDate" yaml:"voteSummaryByDate"`
	CandidateStatistics []CandidateStatistic `json:"candidateStatistics" yaml:"candidateStatistics"`
}

type ExportMetadata struct {
	ExportedAt time.Time `json:"exportedAt" yaml:"exportedAt"`
	ExportedBy string    `json:"exportedBy" yaml:"exportedBy"`
	Version    string    `json:"version" yaml:"version"`
}

type DateRange struct {
	Earliest string `json:"earliest,omitempty" yaml:"earliest,omitempty"`
	Latest   string `json:"latest,omitempty" yaml:"latest,omitempty"`
}

type ExportSummary struct {
	TotalUsers          int       `json:"totalUsers" yaml:"totalUsers"`
	TotalEmployees      int       `json:"totalEmployees" yaml:"totalEmployees"`
	TotalVotes          int       `json:"totalVotes" yaml:"totalVotes"`
	TotalTieResolutions int       `json:"totalTieResolutions" yaml:"totalTieResolutions"`
	TotalVotingDates    int       `json:"totalVotingDates" yaml:"totalVotingDates"`
	DateRange           DateRange `json:"dateRange" yaml:"dateRange"`
}

type ExportUser struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Username  string    `json:"username" yaml:"username"`
	IsAdmin   bool      `json:"isAdmin" yaml:"isAdmin"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

type ExportVote struct {
	ID            uuid.UUID  `json:"id" yaml:"id"`
	VoterID       uuid.UUID  `json:"voterId" yaml:"voterId"`
	VoterName     string     `json:"voterName" yaml:"voterName"`
	VoterUsername string     `json:"voterUsername" yaml:"voterUsername"`
	Date          string     `json:"date" yaml:"date"`
	VotedForID    *uuid.UUID `json:"votedForId" yaml:"votedForId"`
	VotedForName  string     `json:"votedForName" yaml:"votedForName"`
	IsNullVote    bool       `json:"isNullVote" yaml:"isNullVote"`
	VotedAt       time.Time  `json:"votedAt" yaml:"votedAt"`
}

type ExportResolution struct {
	ID             uuid.UUID  `json:"id" yaml:"id"`
	Date           string     `json:"date" yaml:"date"`
	WinnerID       uuid.UUID  `json:"winnerId" yaml:"winnerId"`
	WinnerName     string     `json:"winnerName" yaml:"winnerName"`
	ResolvedAt     time.Time  `json:"resolvedAt" yaml:"resolvedAt"`
	ResolvedBy     *uuid.UUID `json:"resolvedBy" yaml:"resolvedBy"`
	ResolvedByName string     `json:"resolvedByName,omitempty" yaml:"resolvedByName,omitempty"`
}

type DateVoteSummary struct {
	Date         string `json:"date" yaml:"date"`
	TotalVotes   int    `json:"totalVotes" yaml:"totalVotes"`
	NullVotes    int    `json:"nullVotes" yaml:"nullVotes"`
	RegularVotes int    `json:"regularVotes" yaml:"regularVotes"`
	UniqueVoters int    `json:"uniqueVoters" yaml:"uniqueVoters"`
}

type CandidateStatistic struct {
	CandidateID        uuid.UUID `json:"candidateId" yaml:"candidateId"`
	CandidateName      string    `json:"candidateName" yaml:"candidateName"`
	TotalVotesReceived int       `json:"totalVotesReceived" yaml:"totalVotesReceived"`
	DatesReceivedVotes int       `json:"datesReceivedVotes" yaml:"datesReceivedVotes"`
}
