package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/dailyvote/api/internal/adapters/handler/http/docs"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func NewHandler(
	authHandler *AuthHandler,
	dateHandler *DateHandler,
	voteHandler *VoteHandler,
	adminHandler *AdminHandler,
	userHandler *UserHandler,
	authMiddleware *AuthMiddleware,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", health)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Get("/dates", dateHandler.ListDates)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(authMiddleware.Authorize)

			r.Post("/auth/verify", authHandler.Verify)

			r.Route("/votes", func(r chi.Router) {
				r.Post("/cast", voteHandler.CastVote)
				r.Get("/check/{userId}/{date}", voteHandler.CheckVote)
				r.Get("/user/{userId}", voteHandler.VoteHistory)
				r.Get("/candidates", voteHandler.Candidates)
				r.Get("/standings", voteHandler.Standings)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Get("/results/{date}", adminHandler.DateResults)
				r.Get("/standings", adminHandler.Standings)
				r.Get("/ties/unresolved", adminHandler.UnresolvedTies)
				r.Post("/ties/resolve", adminHandler.ResolveTie)
				r.Get("/progress/{dateOrAll}", adminHandler.Progress)
				r.Get("/export", adminHandler.Export)

				r.Get("/users", userHandler.ListUsers)
				r.Post("/users", userHandler.CreateUser)
				r.Put("/users/{id}", userHandler.UpdateUser)
				r.Delete("/users/{id}", userHandler.DeleteUser)
			})
		})
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}
