package tally

import "github.com/dailyvote/api/internal/core/domain"

// Percentage returns 100*voted/total rounded half up, or 0 when total is 0.
func Percentage(voted, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*voted + total) / (2 * total)
}

// DateProgress reports which employees have voted on date. Only employees are
// counted, so Voted plus the length of NotVoted always equals Total.
func DateProgress(date string, users []domain.User, votes []domain.Vote) domain.Progress {
	staff := employees(users)
	day := Count(date, votes)
	missing := notVoted(staff, day)
	voted := len(staff) - len(missing)
	return domain.Progress{
		Date:       date,
		Voted:      voted,
		Total:      len(staff),
		Percentage: Percentage(voted, len(staff)),
		NotVoted:   missing,
	}
}

// ProgressByDate summarizes DateProgress for every voting date.
func ProgressByDate(dates []domain.VotingDate, users []domain.User, votes []domain.Vote) map[string]domain.ProgressSummary {
	staff := employees(users)
	days := CountByDate(votes)
	out := make(map[string]domain.ProgressSummary, len(dates))
	for _, d := range dates {
		voted := 0
		if day, ok := days[d.Date]; ok {
			for _, e := range staff {
				if _, ok := day.Voters[e.ID]; ok {
					voted++
				}
			}
		}
		out[d.Date] = domain.ProgressSummary{
			Voted:      voted,
			Total:      len(staff),
			Percentage: Percentage(voted, len(staff)),
		}
	}
	return out
}
