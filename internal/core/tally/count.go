package tally

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
)

// DayCount is the tally of a single voting date.
type DayCount struct {
	Date      string
	Counts    map[uuid.UUID]int
	NullVotes int
	Total     int
	Voters    map[uuid.UUID]struct{}
}

func newDayCount(date string) *DayCount {
	return &DayCount{
		Date:   date,
		Counts: make(map[uuid.UUID]int),
		Voters: make(map[uuid.UUID]struct{}),
	}
}

func (d *DayCount) add(v domain.Vote) {
	d.Total++
	d.Voters[v.VoterID] = struct{}{}
	if v.IsNullVote || v.VotedForID == nil {
		d.NullVotes++
		return
	}
	d.Counts[*v.VotedForID]++
}

// Count tallies the votes cast on date. Votes for other dates are ignored.
func Count(date string, votes []domain.Vote) DayCount {
	d := newDayCount(date)
	for _, v := range votes {
		if v.Date == date {
			d.add(v)
		}
	}
	return *d
}

// CountByDate tallies every date that has at least one vote.
func CountByDate(votes []domain.Vote) map[string]*DayCount {
	days := make(map[string]*DayCount)
	for _, v := range votes {
		d, ok := days[v.Date]
		if !ok {
			d = newDayCount(v.Date)
			days[v.Date] = d
		}
		d.add(v)
	}
	return days
}

// Top returns the highest non-null vote count and the candidates holding it,
// sorted by id. It returns 0 and nil when nobody received a vote.
func (d DayCount) Top() (int, []uuid.UUID) {
	best := 0
	var top []uuid.UUID
	for id, n := range d.Counts {
		switch {
		case n > best:
			best = n
			top = append(top[:0], id)
		case n == best && n > 0:
			top = append(top, id)
		}
	}
	slices.SortFunc(top, compareIDs)
	return best, top
}

func compareIDs(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}
