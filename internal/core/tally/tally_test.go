package tally

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyvote/api/internal/core/domain"
)

const day = "2026-01-05"

type fixture struct {
	users []domain.User
	votes []domain.Vote
}

func (f *fixture) employee(name string) uuid.UUID {
	u := domain.User{ID: uuid.New(), Name: name, Username: name}
	f.users = append(f.users, u)
	return u.ID
}

func (f *fixture) admin(name string) uuid.UUID {
	u := domain.User{ID: uuid.New(), Name: name, Username: name, IsAdmin: true}
	f.users = append(f.users, u)
	return u.ID
}

func (f *fixture) voteFor(date string, candidate uuid.UUID, n int) {
	for range n {
		c := candidate
		f.votes = append(f.votes, domain.Vote{ID: uuid.New(), VoterID: f.employee("voter"), Date: date, VotedForID: &c})
	}
}

func (f *fixture) castBy(voter uuid.UUID, date string, candidate *uuid.UUID) {
	f.votes = append(f.votes, domain.Vote{
		ID:         uuid.New(),
		VoterID:    voter,
		Date:       date,
		VotedForID: candidate,
		IsNullVote: candidate == nil,
	})
}

func (f *fixture) nullVote(date string) {
	f.castBy(f.employee("abstainer"), date, nil)
}

func TestTop(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name    string
		counts  map[uuid.UUID]int
		wantMax int
		wantLen int
	}{
		{name: "no votes", counts: map[uuid.UUID]int{}, wantMax: 0, wantLen: 0},
		{name: "single leader", counts: map[uuid.UUID]int{a: 3, b: 1}, wantMax: 3, wantLen: 1},
		{name: "two way tie", counts: map[uuid.UUID]int{a: 2, b: 2, c: 1}, wantMax: 2, wantLen: 2},
		{name: "three way tie", counts: map[uuid.UUID]int{a: 1, b: 1, c: 1}, wantMax: 1, wantLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, top := DayCount{Counts: tt.counts}.Top()
			assert.Equal(t, tt.wantMax, best)
			assert.Len(t, top, tt.wantLen)
		})
	}
}

func TestDecide(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	t.Run("no votes has no winner", func(t *testing.T) {
		o := Decide(DayCount{Date: day, Counts: map[uuid.UUID]int{}}, nil)
		assert.Equal(t, domain.TieStateNone, o.State)
		assert.False(t, o.HasWinner)
	})

	t.Run("single leader is the natural winner", func(t *testing.T) {
		o := Decide(DayCount{Date: day, Counts: map[uuid.UUID]int{a: 2, b: 1}}, nil)
		assert.Equal(t, domain.TieStateNone, o.State)
		require.True(t, o.HasWinner)
		assert.Equal(t, a, o.WinnerID)
	})

	t.Run("tie without resolution has no winner", func(t *testing.T) {
		o := Decide(DayCount{Date: day, Counts: map[uuid.UUID]int{a: 2, b: 2}}, nil)
		assert.Equal(t, domain.TieStateUnresolved, o.State)
		assert.False(t, o.HasWinner)
		assert.True(t, o.IsTied(a))
		assert.True(t, o.IsTied(b))
	})

	t.Run("resolution overrides a tie", func(t *testing.T) {
		res := &domain.TieResolution{Date: day, WinnerID: b}
		o := Decide(DayCount{Date: day, Counts: map[uuid.UUID]int{a: 2, b: 2}}, res)
		assert.Equal(t, domain.TieStateResolved, o.State)
		require.True(t, o.HasWinner)
		assert.Equal(t, b, o.WinnerID)
		assert.True(t, o.Resolved)
	})
}

func TestResults_ExampleScenario(t *testing.T) {
	var f fixture
	a := f.employee("A")
	b := f.employee("B")
	c := f.employee("C")
	f.voteFor(day, a, 5)
	f.voteFor(day, b, 5)
	f.voteFor(day, c, 2)
	f.nullVote(day)

	res := Results(day, f.users, f.votes, nil)

	require.GreaterOrEqual(t, len(res.Results), 3)
	assert.Equal(t, domain.CandidateVotes{ID: a, Name: "A", Votes: 5}, res.Results[0])
	assert.Equal(t, domain.CandidateVotes{ID: b, Name: "B", Votes: 5}, res.Results[1])
	assert.Equal(t, domain.CandidateVotes{ID: c, Name: "C", Votes: 2}, res.Results[2])
	assert.Equal(t, 1, res.NullVotes)
	assert.Equal(t, 13, res.TotalVotes)
	assert.Equal(t, domain.TieStateUnresolved, res.State)
	assert.Nil(t, res.TieResolution)

	ties := UnresolvedTies(f.users, f.votes, nil)
	require.Len(t, ties, 1)
	assert.Equal(t, day, ties[0].Date)
	require.Len(t, ties[0].Candidates, 2)
	assert.Equal(t, a, ties[0].Candidates[0].ID)
	assert.Equal(t, b, ties[0].Candidates[1].ID)
	assert.Equal(t, 5, ties[0].Candidates[0].Votes)

	resolutions := []domain.TieResolution{{ID: uuid.New(), Date: day, WinnerID: a, ResolvedAt: time.Now()}}
	report := Standings(f.users, f.votes, resolutions)

	wins := map[uuid.UUID]int{}
	for _, s := range report.Standings {
		wins[s.ID] = s.Wins
	}
	assert.Equal(t, 1, wins[a])
	assert.Equal(t, 0, wins[b])
	assert.Empty(t, UnresolvedTies(f.users, f.votes, resolutions))

	res = Results(day, f.users, f.votes, &resolutions[0])
	assert.Equal(t, domain.TieStateResolved, res.State)
	require.NotNil(t, res.TieResolution)
	assert.Equal(t, "A", res.TieResolution.WinnerName)
}

func TestResults_CountsAddUp(t *testing.T) {
	var f fixture
	a := f.employee("Ana")
	b := f.employee("Bruno")
	promoted := f.employee("Carla")
	f.voteFor(day, a, 3)
	f.voteFor(day, b, 1)
	f.voteFor(day, promoted, 2)
	f.nullVote(day)
	f.nullVote(day)
	f.voteFor("2026-01-06", a, 4)

	for i := range f.users {
		if f.users[i].ID == promoted {
			f.users[i].IsAdmin = true
		}
	}

	res := Results(day, f.users, f.votes, nil)
	sum := 0
	for _, r := range res.Results {
		sum += r.Votes
	}
	assert.Equal(t, res.TotalVotes, sum+res.NullVotes)
	assert.Equal(t, 8, res.TotalVotes)
}

func TestResults_NotVotedListsEmployeesWithoutAVote(t *testing.T) {
	var f fixture
	x := f.employee("Xavier")
	y := f.employee("Yara")
	f.admin("Root")
	f.castBy(y, day, &x)
	f.castBy(x, "2026-01-06", &y)

	res := Results(day, f.users, f.votes, nil)
	assert.Equal(t, 2, res.TotalEmployees)
	assert.Equal(t, []domain.UserRef{{ID: x, Name: "Xavier"}}, res.NotVoted)
}

func TestUnresolvedTies_SingleTopIsNeverATie(t *testing.T) {
	var f fixture
	a := f.employee("A")
	b := f.employee("B")
	f.voteFor("2026-01-02", a, 2)
	f.voteFor("2026-01-02", b, 1)
	f.voteFor("2026-01-05", a, 1)
	f.voteFor("2026-01-05", b, 1)
	f.voteFor("2026-01-06", a, 3)
	f.voteFor("2026-01-06", b, 3)
	f.nullVote("2026-01-07")

	ties := UnresolvedTies(f.users, f.votes, nil)
	require.Len(t, ties, 2)
	assert.Equal(t, "2026-01-06", ties[0].Date)
	assert.Equal(t, "2026-01-05", ties[1].Date)
}

func TestStandings_OrderingAndDenseRank(t *testing.T) {
	var f fixture
	zoe := f.employee("Zoe")
	amy := f.employee("Amy")
	bob := f.employee("Bob")
	f.employee("Dan")
	f.admin("Admin")

	f.voteFor("2026-01-02", zoe, 2)
	f.voteFor("2026-01-05", zoe, 1)
	f.voteFor("2026-01-06", amy, 1)
	f.voteFor("2026-01-07", amy, 4)
	f.voteFor("2026-01-08", bob, 1)
	f.voteFor("2026-01-09", bob, 2)
	f.voteFor("2026-01-09", zoe, 2)

	report := Standings(f.users, f.votes, nil)

	names := make([]string, 0)
	for _, s := range report.Standings {
		if s.Name == "voter" {
			continue
		}
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Amy", "Zoe", "Bob", "Dan"}, names)

	ranks := map[string]int{}
	for _, s := range report.Standings {
		ranks[s.Name] = s.Rank
	}
	assert.Equal(t, 1, ranks["Amy"])
	assert.Equal(t, 1, ranks["Zoe"])
	assert.Equal(t, 2, ranks["Bob"])
	assert.Equal(t, 3, ranks["Dan"])

	require.Len(t, report.DailyWinners, 5)
	assert.Equal(t, "2026-01-08", report.DailyWinners[0].Date)
	assert.Equal(t, "2026-01-02", report.DailyWinners[4].Date)

	totals := map[string]int{}
	for _, v := range report.TotalVotes {
		totals[v.Name] = v.TotalVotes
	}
	assert.Equal(t, 5, totals["Amy"])
	assert.Equal(t, 5, totals["Zoe"])
	assert.Equal(t, 3, totals["Bob"])
	assert.Equal(t, 0, totals["Dan"])
}

func TestDenseRank(t *testing.T) {
	standings := []domain.Standing{{Wins: 4}, {Wins: 2}, {Wins: 2}, {Wins: 1}, {Wins: 0}, {Wins: 0}}
	DenseRank(standings)

	got := make([]int, len(standings))
	for i, s := range standings {
		got[i] = s.Rank
	}
	assert.Equal(t, []int{1, 2, 2, 3, 4, 4}, got)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(0, 0))
	assert.Equal(t, 0, Percentage(0, 7))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 13, Percentage(1, 8))
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 100, Percentage(5, 5))
}

func TestDateProgress(t *testing.T) {
	var f fixture
	a := f.employee("Ana")
	b := f.employee("Bea")
	f.employee("Caio")
	root := f.admin("Root")
	f.castBy(a, day, &b)
	f.castBy(b, day, nil)
	f.castBy(root, day, &a)

	p := DateProgress(day, f.users, f.votes)
	assert.Equal(t, 2, p.Voted)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 67, p.Percentage)
	require.Len(t, p.NotVoted, 1)
	assert.Equal(t, "Caio", p.NotVoted[0].Name)
	assert.Equal(t, p.Total, p.Voted+len(p.NotVoted))

	all := ProgressByDate([]domain.VotingDate{{Date: day, IsActive: true}, {Date: "2026-01-06", IsActive: true}}, f.users, f.votes)
	assert.Equal(t, domain.ProgressSummary{Voted: 2, Total: 3, Percentage: 67}, all[day])
	assert.Equal(t, domain.ProgressSummary{Voted: 0, Total: 3, Percentage: 0}, all["2026-01-06"])
}
