package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
	"github.com/dailyvote/api/internal/core/tally"
)

const (
	ExportVersion = "1.0"
	nullVoteLabel = "NULL VOTE"
)

type exportService struct {
	dateRepo ports.DateRepository
	userRepo ports.UserRepository
	voteRepo ports.VoteRepository
	tieRepo  ports.TieRepository
	logger   *slog.Logger
	now      func() time.Time
}

func NewExportService(dateRepo ports.DateRepository, userRepo ports.UserRepository, voteRepo ports.VoteRepository, tieRepo ports.TieRepository, logger *slog.Logger) ports.ExportService {
	return &exportService{
		dateRepo: dateRepo,
		userRepo: userRepo,
		voteRepo: voteRepo,
		tieRepo:  tieRepo,
		logger:   resolveLogger(logger),
		now:      time.Now,
	}
}

func (s *exportService) Export(ctx context.Context, exportedBy string) (*domain.Export, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	dates, err := s.dateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list voting dates: %w", err)
	}
	votes, err := s.voteRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	resolutions, err := s.tieRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tie resolutions: %w", err)
	}

	byID := make(map[uuid.UUID]domain.User, len(users))
	exportUsers := make([]domain.ExportUser, 0, len(users))
	employees := 0
	for _, u := range users {
		byID[u.ID] = u
		if u.IsEmployee() {
			employees++
		}
		exportUsers = append(exportUsers, domain.ExportUser{
			ID:        u.ID,
			Name:      u.Name,
			Username:  u.Username,
			IsAdmin:   u.IsAdmin,
			CreatedAt: u.CreatedAt,
		})
	}

	exportVotes := make([]domain.ExportVote, 0, len(votes))
	for _, v := range votes {
		voter := byID[v.VoterID]
		ev := domain.ExportVote{
			ID:            v.ID,
			VoterID:       v.VoterID,
			VoterName:     voter.Name,
			VoterUsername: voter.Username,
			Date:          v.Date,
			VotedForID:    v.VotedForID,
			VotedForName:  nullVoteLabel,
			IsNullVote:    v.IsNullVote,
			VotedAt:       v.VotedAt,
		}
		if !v.IsNullVote && v.VotedForID != nil {
			ev.VotedForName = byID[*v.VotedForID].Name
		}
		exportVotes = append(exportVotes, ev)
	}

	exportResolutions := make([]domain.ExportResolution, 0, len(resolutions))
	for _, r := range resolutions {
		er := domain.ExportResolution{
			ID:         r.ID,
			Date:       r.Date,
			WinnerID:   r.WinnerID,
			WinnerName: byID[r.WinnerID].Name,
			ResolvedAt: r.ResolvedAt,
			ResolvedBy: r.ResolvedBy,
		}
		if r.ResolvedBy != nil {
			er.ResolvedByName = byID[*r.ResolvedBy].Name
		}
		exportResolutions = append(exportResolutions, er)
	}

	export := &domain.Export{
		Metadata: domain.ExportMetadata{
			ExportedAt: s.now().UTC(),
			ExportedBy: exportedBy,
			Version:    ExportVersion,
		},
		Summary: domain.ExportSummary{
			TotalUsers:          len(users),
			TotalEmployees:      employees,
			TotalVotes:          len(votes),
			TotalTieResolutions: len(resolutions),
			TotalVotingDates:    len(dates),
			DateRange:           dateRange(dates),
		},
		Users:               exportUsers,
		VotingDates:         dates,
		Votes:               exportVotes,
		TieResolutions:      exportResolutions,
		VoteSummaryByDate:   summarizeByDate(votes),
		CandidateStatistics: candidateStatistics(votes, byID),
	}
	if export.VotingDates == nil {
		export.VotingDates = []domain.VotingDate{}
	}

	s.logger.Info("data exported", "exported_by", exportedBy, "votes", len(votes), "users", len(users))
	return export, nil
}

func dateRange(dates []domain.VotingDate) domain.DateRange {
	var r domain.DateRange
	for _, d := range dates {
		if r.Earliest == "" || d.Date < r.Earliest {
			r.Earliest = d.Date
		}
		if r.Latest == "" || d.Date > r.Latest {
			r.Latest = d.Date
		}
	}
	return r
}

func summarizeByDate(votes []domain.Vote) []domain.DateVoteSummary {
	days := tally.CountByDate(votes)
	out := make([]domain.DateVoteSummary, 0, len(days))
	for date, day := range days {
		out = append(out, domain.DateVoteSummary{
			Date:         date,
			TotalVotes:   day.Total,
			NullVotes:    day.NullVotes,
			RegularVotes: day.Total - day.NullVotes,
			UniqueVoters: len(day.Voters),
		})
	}
	slices.SortFunc(out, func(a, b domain.DateVoteSummary) int {
		return cmp.Compare(a.Date, b.Date)
	})
	return out
}

func candidateStatistics(votes []domain.Vote, byID map[uuid.UUID]domain.User) []domain.CandidateStatistic {
	received := make(map[uuid.UUID]int)
	dates := make(map[uuid.UUID]map[string]struct{})
	for _, v := range votes {
		if v.IsNullVote || v.VotedForID == nil {
			continue
		}
		id := *v.VotedForID
		received[id]++
		if dates[id] == nil {
			dates[id] = make(map[string]struct{})
		}
		dates[id][v.Date] = struct{}{}
	}

	out := make([]domain.CandidateStatistic, 0, len(received))
	for id, n := range received {
		out = append(out, domain.CandidateStatistic{
			CandidateID:        id,
			CandidateName:      byID[id].Name,
			TotalVotesReceived: n,
			DatesReceivedVotes: len(dates[id]),
		})
	}
	slices.SortFunc(out, func(a, b domain.CandidateStatistic) int {
		return cmp.Or(
			cmp.Compare(b.TotalVotesReceived, a.TotalVotesReceived),
			cmp.Compare(a.CandidateName, b.CandidateName),
			cmp.Compare(a.CandidateID.String(), b.CandidateID.String()),
		)
	})
	return out
}
