package tally

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
)

// Results builds the per-candidate breakdown of one voting date. Every
// employee is listed, including those without votes; a candidate who is no
// longer an employee is still listed when they received votes so that the
// candidate counts and null votes always add up to the total.
func Results(date string, users []domain.User, votes []domain.Vote, resolution *domain.TieResolution) domain.DateResults {
	dir := newDirectory(users)
	day := Count(date, votes)
	staff := employees(users)

	results := make([]domain.CandidateVotes, 0, len(staff))
	listed := make(map[uuid.UUID]struct{}, len(staff))
	for _, e := range staff {
		results = append(results, domain.CandidateVotes{ID: e.ID, Name: e.Name, Votes: day.Counts[e.ID]})
		listed[e.ID] = struct{}{}
	}
	for id, n := range day.Counts {
		if _, ok := listed[id]; !ok {
			results = append(results, domain.CandidateVotes{ID: id, Name: dir.name(id), Votes: n})
		}
	}
	slices.SortFunc(results, byVotesThenName)

	outcome := Decide(day, resolution)
	res := domain.DateResults{
		Date:           date,
		Results:        results,
		NullVotes:      day.NullVotes,
		TotalVotes:     day.Total,
		TotalEmployees: len(staff),
		NotVoted:       notVoted(staff, day),
		State:          outcome.State,
	}
	if resolution != nil {
		res.TieResolution = &domain.ResolutionSummary{
			WinnerID:   resolution.WinnerID,
			WinnerName: dir.name(resolution.WinnerID),
			ResolvedAt: resolution.ResolvedAt,
		}
	}
	return res
}

func notVoted(staff []domain.User, day DayCount) []domain.UserRef {
	out := make([]domain.UserRef, 0)
	for _, e := range staff {
		if _, ok := day.Voters[e.ID]; !ok {
			out = append(out, domain.UserRef{ID: e.ID, Name: e.Name})
		}
	}
	return out
}
