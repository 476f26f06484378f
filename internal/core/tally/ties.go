package tally

import (
	"cmp"
	"slices"

	"github.com/dailyvote/api/internal/core/domain"
)

// UnresolvedTies lists the dates whose top count is shared by two or more
// candidates and that have no recorded resolution, newest date first.
func UnresolvedTies(users []domain.User, votes []domain.Vote, resolutions []domain.TieResolution) []domain.UnresolvedTie {
	dir := newDirectory(users)
	ties := make([]domain.UnresolvedTie, 0)
	for date, o := range Outcomes(votes, resolutions) {
		if o.State != domain.TieStateUnresolved {
			continue
		}
		candidates := make([]domain.CandidateVotes, 0, len(o.Tied))
		for _, id := range o.Tied {
			candidates = append(candidates, domain.CandidateVotes{ID: id, Name: dir.name(id), Votes: o.Max})
		}
		slices.SortFunc(candidates, byVotesThenName)
		ties = append(ties, domain.UnresolvedTie{Date: date, Candidates: candidates})
	}
	slices.SortFunc(ties, func(a, b domain.UnresolvedTie) int {
		return cmp.Compare(b.Date, a.Date)
	})
	return ties
}
