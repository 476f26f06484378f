// @title        Daily Vote API
// @version      1.0
// @description  Daily colleague voting: cast votes, follow standings, resolve ties and manage users.
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
package main

//go:generate swag init --generalInfo main.go --dir ./,../../internal/adapters/handler/http --output ../../internal/adapters/handler/http/docs --outputTypes go

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/dailyvote/api/internal/adapters/authz"
	"github.com/dailyvote/api/internal/adapters/cache/redis"
	"github.com/dailyvote/api/internal/adapters/handler/http"
	"github.com/dailyvote/api/internal/adapters/repository/postgres"
	"github.com/dailyvote/api/internal/config"
	"github.com/dailyvote/api/internal/core/ports"
	"github.com/dailyvote/api/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout, cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return err
	}

	var cache ports.CandidateCache = redis.NewNopCache()
	if cfg.RedisAddr != "" {
		client, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		cache = redis.NewCandidateCache(client, cfg.CandidateTTL)
		logger.Info("candidate cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CandidateTTL)
	}

	authorizer, err := authz.NewAuthorizer()
	if err != nil {
		return err
	}

	userRepo := postgres.NewUserRepository(db)
	dateRepo := postgres.NewDateRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	tieRepo := postgres.NewTieRepository(db)

	authSvc := services.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.JWTTTL, logger)
	userSvc := services.NewUserService(userRepo, cache, logger)
	dateSvc := services.NewDateService(dateRepo)
	voteSvc := services.NewVoteService(dateRepo, userRepo, voteRepo, logger)
	resultsSvc := services.NewResultsService(dateRepo, userRepo, voteRepo, tieRepo, logger)
	exportSvc := services.NewExportService(dateRepo, userRepo, voteRepo, tieRepo, logger)

	handler := http.NewHandler(
		http.NewAuthHandler(authSvc, logger),
		http.NewDateHandler(dateSvc, logger),
		http.NewVoteHandler(voteSvc, userSvc, resultsSvc, logger),
		http.NewAdminHandler(resultsSvc, exportSvc, logger),
		http.NewUserHandler(userSvc, logger),
		http.NewAuthMiddleware(authSvc, authorizer, logger),
	)
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("gracefully shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
