package tally

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
)

// Standings ranks every employee by the number of dates they won.
func Standings(users []domain.User, votes []domain.Vote, resolutions []domain.TieResolution) domain.StandingsReport {
	dir := newDirectory(users)
	staff := employees(users)
	outcomes := Outcomes(votes, resolutions)

	var winners []domain.DailyWinner
	wins := make(map[uuid.UUID]int)
	for date, o := range outcomes {
		if !o.HasWinner {
			continue
		}
		wins[o.WinnerID]++
		winners = append(winners, domain.DailyWinner{
			Date:       date,
			WinnerID:   o.WinnerID,
			WinnerName: dir.name(o.WinnerID),
			Resolved:   o.Resolved,
		})
	}
	slices.SortFunc(winners, func(a, b domain.DailyWinner) int {
		return cmp.Compare(b.Date, a.Date)
	})

	standings := make([]domain.Standing, 0, len(staff))
	for _, e := range staff {
		standings = append(standings, domain.Standing{ID: e.ID, Name: e.Name, Wins: wins[e.ID]})
	}
	slices.SortFunc(standings, func(a, b domain.Standing) int {
		return cmp.Or(cmp.Compare(b.Wins, a.Wins), cmp.Compare(a.Name, b.Name), compareIDs(a.ID, b.ID))
	})
	DenseRank(standings)

	received := make(map[uuid.UUID]int)
	for _, v := range votes {
		if !v.IsNullVote && v.VotedForID != nil {
			received[*v.VotedForID]++
		}
	}
	totals := make([]domain.VotesReceived, 0, len(staff))
	for _, e := range staff {
		totals = append(totals, domain.VotesReceived{ID: e.ID, Name: e.Name, TotalVotes: received[e.ID]})
	}
	slices.SortFunc(totals, func(a, b domain.VotesReceived) int {
		return cmp.Or(cmp.Compare(b.TotalVotes, a.TotalVotes), cmp.Compare(a.Name, b.Name), compareIDs(a.ID, b.ID))
	})

	if winners == nil {
		winners = []domain.DailyWinner{}
	}
	return domain.StandingsReport{
		Standings:    standings,
		DailyWinners: winners,
		TotalVotes:   totals,
	}
}

// DenseRank assigns ranks to standings already sorted by wins descending.
// Equal wins share a rank and the next distinct value gets the next integer.
func DenseRank(standings []domain.Standing) {
	rank := 0
	for i := range standings {
		if i == 0 || standings[i].Wins != standings[i-1].Wins {
			rank++
		}
		standings[i].Rank = rank
	}
}
