package tally

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
)

type directory map[uuid.UUID]domain.User

func newDirectory(users []domain.User) directory {
	d := make(directory, len(users))
	for _, u := range users {
		d[u.ID] = u
	}
	return d
}

func (d directory) name(id uuid.UUID) string {
	return d[id].Name
}

// employees returns the non-admin users ordered by name, then id.
func employees(users []domain.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.IsEmployee() {
			out = append(out, u)
		}
	}
	slices.SortFunc(out, func(a, b domain.User) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), compareIDs(a.ID, b.ID))
	})
	return out
}

func byVotesThenName(a, b domain.CandidateVotes) int {
	return cmp.Or(cmp.Compare(b.Votes, a.Votes), cmp.Compare(a.Name, b.Name), compareIDs(a.ID, b.ID))
}
