package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dailyvote/api/internal/adapters/authz"
	"github.com/dailyvote/api/internal/adapters/cache/redis"
	handler "github.com/dailyvote/api/internal/adapters/handler/http"
	repo "github.com/dailyvote/api/internal/adapters/repository/postgres"
	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/services"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

type TestApp struct {
	DB          *sql.DB
	DBContainer testcontainers.Container
	Server      *httptest.Server
	Client      *http.Client
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

// setupTestApp starts a database, applies the migrations, seeds the given
// active dates plus an admin account and serves the full router.
func setupTestApp(t *testing.T, dates ...string) *TestApp {
	t.Helper()
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	require.NoError(t, repo.MigrateUp(ctx, db))

	userRepo := repo.NewUserRepository(db)
	dateRepo := repo.NewDateRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	tieRepo := repo.NewTieRepository(db)

	for _, d := range dates {
		_, err := dateRepo.Ensure(ctx, domain.VotingDate{Date: d, IsActive: true})
		require.NoError(t, err)
	}
	require.NoError(t, userRepo.Create(ctx, &domain.User{
		Name:     "Admin",
		Username: adminUsername,
		Password: adminPassword,
		IsAdmin:  true,
	}))

	authorizer, err := authz.NewAuthorizer()
	require.NoError(t, err)

	authSvc := services.NewAuthService(userRepo, []byte("test-secret"), time.Hour, nil)
	userSvc := services.NewUserService(userRepo, redis.NewNopCache(), nil)
	resultsSvc := services.NewResultsService(dateRepo, userRepo, voteRepo, tieRepo, nil)

	router := handler.NewHandler(
		handler.NewAuthHandler(authSvc, nil),
		handler.NewDateHandler(services.NewDateService(dateRepo), nil),
		handler.NewVoteHandler(services.NewVoteService(dateRepo, userRepo, voteRepo, nil), userSvc, resultsSvc, nil),
		handler.NewAdminHandler(resultsSvc, services.NewExportService(dateRepo, userRepo, voteRepo, tieRepo, nil), nil),
		handler.NewUserHandler(userSvc, nil),
		handler.NewAuthMiddleware(authSvc, authorizer, nil),
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		DBContainer: dbContainer,
		Server:      server,
		Client:      server.Client(),
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// do sends a JSON request with an optional bearer token and decodes the
// response into out when out is not nil. It returns the status code.
func (app *TestApp) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type loginResult struct {
	Token string `json:"token"`
	User  struct {
		ID      string `json:"id"`
		IsAdmin bool   `json:"isAdmin"`
	} `json:"user"`
}

func (app *TestApp) login(t *testing.T, username, password string) loginResult {
	t.Helper()

	var res loginResult
	status := app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &res)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, res.Token)
	return res
}

// createEmployee creates an employee through the admin API and logs them in.
func (app *TestApp) createEmployee(t *testing.T, adminToken, name, username string) loginResult {
	t.Helper()

	status := app.do(t, http.MethodPost, "/api/admin/users", adminToken, map[string]any{
		"name":     name,
		"username": username,
		"password": "secret",
	}, nil)
	require.Equal(t, http.StatusCreated, status)
	return app.login(t, username, "secret")
}
