package tally

import (
	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
)

// Outcome is the decision for one voting date.
type Outcome struct {
	Date      string
	State     domain.TieState
	Max       int
	Tied      []uuid.UUID
	WinnerID  uuid.UUID
	HasWinner bool
	Resolved  bool
}

// Decide applies the winner rules to a day's tally. A recorded resolution is
// the winner of record for its date and is never overridden by the counts.
func Decide(d DayCount, resolution *domain.TieResolution) Outcome {
	best, top := d.Top()
	out := Outcome{Date: d.Date, State: domain.TieStateNone, Max: best}
	if len(top) > 1 {
		out.Tied = top
		out.State = domain.TieStateUnresolved
	}

	if resolution != nil {
		out.State = domain.TieStateResolved
		out.WinnerID = resolution.WinnerID
		out.HasWinner = true
		out.Resolved = true
		return out
	}

	if len(top) == 1 {
		out.WinnerID = top[0]
		out.HasWinner = true
	}
	return out
}

// IsTied reports whether id is one of the candidates sharing the top count.
func (o Outcome) IsTied(id uuid.UUID) bool {
	for _, t := range o.Tied {
		if t == id {
			return true
		}
	}
	return false
}

// Outcomes decides every date that received votes or has a resolution.
func Outcomes(votes []domain.Vote, resolutions []domain.TieResolution) map[string]Outcome {
	days := CountByDate(votes)
	byDate := resolutionsByDate(resolutions)
	for date := range byDate {
		if _, ok := days[date]; !ok {
			days[date] = newDayCount(date)
		}
	}

	out := make(map[string]Outcome, len(days))
	for date, d := range days {
		out[date] = Decide(*d, byDate[date])
	}
	return out
}

func resolutionsByDate(resolutions []domain.TieResolution) map[string]*domain.TieResolution {
	m := make(map[string]*domain.TieResolution, len(resolutions))
	for i := range resolutions {
		m[resolutions[i].Date] = &resolutions[i]
	}
	return m
}
