package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyvote/api/internal/adapters/authz"
	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

var (
	adminUser    = domain.User{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Name: "Admin", Username: "admin", IsAdmin: true}
	employeeUser = domain.User{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Name: "Alice", Username: "alice"}
	otherUser    = domain.User{ID: uuid.MustParse("00000000-0000-0000-0000-000000000003"), Name: "Bob", Username: "bob"}
)

const (
	adminToken    = "admin-token"
	employeeToken = "employee-token"
)

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "alice" && password == "secret" {
		u := employeeUser
		return employeeToken, &u, nil
	}
	return "", nil, domain.ErrInvalidCredentials
}

func (stubAuthService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	var u domain.User
	switch token {
	case adminToken:
		u = adminUser
	case employeeToken:
		u = employeeUser
	default:
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Identity{ID: u.ID, Name: u.Name, Username: u.Username, IsAdmin: u.IsAdmin}, nil
}

type stubDateService struct{}

func (stubDateService) List(ctx context.Context) ([]domain.VotingDate, error) {
	return []domain.VotingDate{{Date: "2026-01-05", IsActive: true}}, nil
}

type stubVoteService struct {
	cast []ports.CastVoteInput
}

func (s *stubVoteService) Cast(ctx context.Context, actor domain.Identity, input ports.CastVoteInput) (*domain.Vote, error) {
	if actor.ID != input.VoterID {
		return nil, domain.ErrVoteForOthers
	}
	for _, c := range s.cast {
		if c.VoterID == input.VoterID && c.Date == input.Date {
			return nil, domain.ErrAlreadyVoted
		}
	}
	s.cast = append(s.cast, input)
	return &domain.Vote{ID: uuid.New(), VoterID: input.VoterID, Date: input.Date, VotedAt: time.Now()}, nil
}

func (s *stubVoteService) Check(ctx context.Context, actor domain.Identity, userID uuid.UUID, date string) (*domain.VoteRecord, error) {
	if actor.ID != userID && !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	for _, c := range s.cast {
		if c.VoterID == userID && c.Date == date {
			return &domain.VoteRecord{Date: date, IsNullVote: c.IsNullVote}, nil
		}
	}
	return nil, nil
}

func (s *stubVoteService) History(ctx context.Context, actor domain.Identity, userID uuid.UUID) ([]domain.VoteRecord, error) {
	return []domain.VoteRecord{}, nil
}

type stubUserService struct{}

func (stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return []domain.User{adminUser, employeeUser}, nil
}

func (stubUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (stubUserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if err := input.Normalize(); err != nil {
		return nil, err
	}
	if input.Username == "alice" {
		return nil, domain.ErrUsernameTaken
	}
	return &domain.User{ID: uuid.New(), Name: input.Name, Username: input.Username, Password: input.Password}, nil
}

func (stubUserService) Update(ctx context.Context, id uuid.UUID, update ports.UserUpdate) (*domain.User, error) {
	if err := update.Normalize(); err != nil {
		return nil, err
	}
	return nil, domain.ErrUserNotFound
}

func (stubUserService) Delete(ctx context.Context, actor domain.Identity, id uuid.UUID) (*domain.User, error) {
	if actor.ID == id {
		return nil, domain.ErrSelfDeletion
	}
	u := otherUser
	return &u, nil
}

func (stubUserService) Candidates(ctx context.Context) ([]domain.Candidate, error) {
	return []domain.Candidate{{ID: employeeUser.ID, Name: employeeUser.Name, Username: employeeUser.Username}}, nil
}

type stubResultsService struct {
	resolved bool
}

func (s *stubResultsService) DateResults(ctx context.Context, date string) (*domain.DateResults, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}
	return &domain.DateResults{Date: date, Results: []domain.CandidateVotes{}, NotVoted: []domain.UserRef{}, State: domain.TieStateNone}, nil
}

func (s *stubResultsService) Standings(ctx context.Context) (*domain.StandingsReport, error) {
	return &domain.StandingsReport{
		Standings:    []domain.Standing{{Rank: 1, ID: employeeUser.ID, Name: employeeUser.Name, Wins: 2}},
		DailyWinners: []domain.DailyWinner{},
		TotalVotes:   []domain.VotesReceived{},
	}, nil
}

func (s *stubResultsService) UnresolvedTies(ctx context.Context) ([]domain.UnresolvedTie, error) {
	return []domain.UnresolvedTie{}, nil
}

func (s *stubResultsService) ResolveTie(ctx context.Context, actor domain.Identity, input ports.ResolveTieInput) (*domain.ResolvedTie, error) {
	if s.resolved {
		return nil, domain.ErrTieAlreadyResolved
	}
	s.resolved = true
	return &domain.ResolvedTie{ID: uuid.New(), Date: input.Date, WinnerID: input.WinnerID, WinnerName: "Alice"}, nil
}

func (s *stubResultsService) Progress(ctx context.Context, date string) (*domain.Progress, error) {
	return &domain.Progress{Date: date, Voted: 1, Total: 2, Percentage: 50, NotVoted: []domain.UserRef{{ID: otherUser.ID, Name: otherUser.Name}}}, nil
}

func (s *stubResultsService) ProgressAll(ctx context.Context) (map[string]domain.ProgressSummary, error) {
	return map[string]domain.ProgressSummary{"2026-01-05": {Voted: 1, Total: 2, Percentage: 50}}, nil
}

type stubExportService struct{}

func (stubExportService) Export(ctx context.Context, exportedBy string) (*domain.Export, error) {
	return &domain.Export{Metadata: domain.ExportMetadata{ExportedBy: exportedBy, Version: "1.0"}}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	authorizer, err := authz.NewAuthorizer()
	require.NoError(t, err)

	results := &stubResultsService{}
	return NewHandler(
		NewAuthHandler(stubAuthService{}, nil),
		NewDateHandler(stubDateService{}, nil),
		NewVoteHandler(&stubVoteService{}, stubUserService{}, results, nil),
		NewAdminHandler(results, stubExportService{}, nil),
		NewUserHandler(stubUserService{}, nil),
		NewAuthMiddleware(stubAuthService{}, authorizer, nil),
	)
}

func bearer(token string) string {
	return "Bearer " + token
}

func TestHealth(t *testing.T) {
	apitest.New().
		Handler(newTestRouter(t)).
		Get("/health").
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	router := newTestRouter(t)
	routes, ok := router.(chi.Routes)
	require.True(t, ok)

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	apitest.New().
		Handler(router).
		Get("/swagger/doc.json").
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&doc)
	require.Equal(t, "/api", doc.BasePath)

	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		path, ok := strings.CutPrefix(route, doc.BasePath)
		if !ok {
			return nil
		}
		ops, documented := doc.Paths[path]
		if assert.True(t, documented, "undocumented route %s", route) {
			assert.Contains(t, ops, strings.ToLower(method), "undocumented %s %s", method, route)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)

	var resp loginResponse
	apitest.New().
		Handler(router).
		Post("/api/auth/login").
		JSON(`{"username":"alice","password":"secret"}`).
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&resp)
	assert.Equal(t, employeeToken, resp.Token)
	assert.Equal(t, employeeUser.ID, resp.User.ID)

	apitest.New().
		Handler(router).
		Post("/api/auth/login").
		JSON(`{"username":"alice","password":"wrong"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(`{"error":"Unauthorized","message":"invalid username or password"}`).
		End()

	apitest.New().
		Handler(router).
		Post("/api/auth/login").
		Body(`not json`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestAuthentication(t *testing.T) {
	router := newTestRouter(t)

	apitest.New().
		Handler(router).
		Get("/api/dates").
		Expect(t).
		Status(http.StatusOK).
		Body(`{"dates":[{"date":"2026-01-05","isActive":true}]}`).
		End()

	apitest.New().
		Handler(router).
		Post("/api/auth/verify").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	apitest.New().
		Handler(router).
		Post("/api/auth/verify").
		Header("Authorization", bearer("bogus")).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	apitest.New().
		Handler(router).
		Post("/api/auth/verify").
		Cookie(accessTokenCookie, employeeToken).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"user":{"id":"00000000-0000-0000-0000-000000000002","name":"Alice","username":"alice","isAdmin":false}}`).
		End()
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/admin/standings", "/api/admin/users", "/api/admin/ties/unresolved", "/api/admin/export"} {
		apitest.New().
			Handler(router).
			Get(path).
			Header("Authorization", bearer(employeeToken)).
			Expect(t).
			Status(http.StatusForbidden).
			End()

		apitest.New().
			Handler(router).
			Get(path).
			Header("Authorization", bearer(adminToken)).
			Expect(t).
			Status(http.StatusOK).
			End()
	}
}

func TestCastVote(t *testing.T) {
	router := newTestRouter(t)

	apitest.New().
		Handler(router).
		Post("/api/votes/cast").
		Header("Authorization", bearer(employeeToken)).
		JSON(`{"voterId":"00000000-0000-0000-0000-000000000002","date":"2026-01-05","votedForId":null,"isNullVote":true}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.New().
		Handler(router).
		Post("/api/votes/cast").
		Header("Authorization", bearer(employeeToken)).
		JSON(`{"voterId":"00000000-0000-0000-0000-000000000002","date":"2026-01-05","votedForId":"00000000-0000-0000-0000-000000000003","isNullVote":false}`).
		Expect(t).
		Status(http.StatusConflict).
		Body(`{"error":"Conflict","message":"you have already voted for this date"}`).
		End()

	apitest.New().
		Handler(router).
		Post("/api/votes/cast").
		Header("Authorization", bearer(employeeToken)).
		JSON(`{"voterId":"00000000-0000-0000-0000-000000000003","date":"2026-01-05","isNullVote":true}`).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	apitest.New().
		Handler(router).
		Post("/api/votes/cast").
		Header("Authorization", bearer(employeeToken)).
		JSON(`{"date":"2026-01-05","isNullVote":true}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	var check checkVoteResponse
	apitest.New().
		Handler(router).
		Get("/api/votes/check/00000000-0000-0000-0000-000000000002/2026-01-05").
		Header("Authorization", bearer(employeeToken)).
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&check)
	assert.True(t, check.HasVoted)
	require.NotNil(t, check.Vote)
	assert.True(t, check.Vote.IsNullVote)

	apitest.New().
		Handler(router).
		Get("/api/votes/check/00000000-0000-0000-0000-000000000003/2026-01-05").
		Header("Authorization", bearer(employeeToken)).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	apitest.New().
		Handler(router).
		Get("/api/votes/check/00000000-0000-0000-0000-000000000003/2026-01-05").
		Header("Authorization", bearer(adminToken)).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"hasVoted":false}`).
		End()

	apitest.New().
		Handler(router).
		Get("/api/votes/check/not-a-uuid/2026-01-05").
		Header("Authorization", bearer(employeeToken)).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestEmployeeReadRoutes(t *testing.T) {
	router := newTestRouter(t)

	apitest.New().
		Handler(router).
		Get("/api/votes/candidates").
		Header("Authorization", bearer(employeeToken)).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"candidates":[{"id":"00000000-0000-0000-0000-000000000002","name":"Alice","username":"alice"}]}`).
		End()

	apitest.New().
		Handler(router).
		Get("/api/votes/standings").
		Header("Authorization", bearer(employeeToken)).
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestResolveTie(t *testing.T) {
	router := newTestRouter(t)
	body := `{"date":"2026-01-05","winnerId":"00000000-0000-0000-0000-000000000002"}`

	var resp resolveTieResponse
	apitest.New().
		Handler(router).
		Post("/api/admin/ties/resolve").
		Header("Authorization", bearer(adminToken)).
		JSON(body).
		Expect(t).
		Status(http.StatusCreated).
		End().
		JSON(&resp)
	assert.Equal(t, "Alice", resp.Resolution.WinnerName)

	apitest.New().
		Handler(router).
		Post("/api/admin/ties/resolve").
		Header("Authorization", bearer(adminToken)).
		JSON(body).
		Expect(t).
		Status(http.StatusConflict).
		End()

	apitest.New().
		Handler(router).
		Post("/api/admin/ties/resolve").
		Header("Authorization", bearer(adminToken)).
		JSON(`{"date":"2026-01-05"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestProgress(t *testing.T) {
	router := newTestRouter(t)

	apitest.New().
		Handler(router).
		Get("/api/admin/progress/all").
		Header("Authorization", bearer(adminToken)).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"progress":{"2026-01-05":{"voted":1,"total":2,"percentage":50}}}`).
		End()

	apitest.New().
		Handler(router).
		Get("/api/admin/progress/2026-01-05").
		Header("Authorization", bearer(adminToken)).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"date":"2026-01-05","voted":1,"total":2,"percentage":50,"notVoted":[{"id":"00000000-0000-0000-0000-000000000003","name":"Bob"}]}`).
		End()

	apitest.New().
		Handler(router).
		Get("/api/admin/results/yesterday").
		Header("Authorization", bearer(adminToken)).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestExport(t *testing.T) {
	router := newTestRouter(t)

	apitest.New().
		Handler(router).
		Get("/api/admin/export").
		Query("format", "yaml").
		Header("Authorization", bearer(adminToken)).
		Expect(t).
		Status(http.StatusOK).
		Header("Content-Type", "application/yaml").
		End()

	apitest.New().
		Handler(router).
		Get("/api/admin/export").
		Query("format", "xml").
		Header("Authorization", bearer(adminToken)).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestUserManagement(t *testing.T) {
	router := newTestRouter(t)

	apitest.New().
		Handler(router).
		Post("/api/admin/users").
		Header("Authorization", bearer(adminToken)).
		JSON(`{"name":"Carol","username":"Carol","password":"pw"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.New().
		Handler(router).
		Post("/api/admin/users").
		Header("Authorization", bearer(adminToken)).
		JSON(`{"name":"Alice","username":"ALICE","password":"pw"}`).
		Expect(t).
		Status(http.StatusConflict).
		End()

	apitest.New().
		Handler(router).
		Put("/api/admin/users/00000000-0000-0000-0000-000000000009").
		Header("Authorization", bearer(adminToken)).
		JSON(`{}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"Bad Request","message":"no fields to update"}`).
		End()

	apitest.New().
		Handler(router).
		Put("/api/admin/users/00000000-0000-0000-0000-000000000009").
		Header("Authorization", bearer(adminToken)).
		JSON(`{"name":"Zed"}`).
		Expect(t).
		Status(http.StatusNotFound).
		End()

	apitest.New().
		Handler(router).
		Delete("/api/admin/users/00000000-0000-0000-0000-000000000001").
		Header("Authorization", bearer(adminToken)).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	apitest.New().
		Handler(router).
		Delete("/api/admin/users/00000000-0000-0000-0000-000000000003").
		Header("Authorization", bearer(adminToken)).
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, errorStatus(assert.AnError))
	assert.Equal(t, http.StatusBadRequest, errorStatus(domain.ErrNoTie))
	assert.Equal(t, http.StatusConflict, errorStatus(domain.ErrTieAlreadyResolved))
	assert.Equal(t, http.StatusConflict, errorStatus(fmt.Errorf("failed to delete user: %w", domain.ErrUserIsWinner)))
	assert.Equal(t, http.StatusConflict, errorStatus(domain.ErrHasVotes))
}
