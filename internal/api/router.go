package api

import (
	"log/slog"
	"net/http"

	"github.com/casey/kickball-cup/internal/api/handlers"
	"github.com/casey/kickball-cup/internal/api/middleware"
	"github.com/casey/kickball-cup/internal/service"
	"github.com/casey/kickball-cup/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(services *service.Services, hub *websocket.Hub, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	sessionHandler := handlers.NewSessionHandler(services.Session, log)
	tournamentHandler := handlers.NewTournamentHandler(services.Tournament, services.Session, hub, log)
	wsHandler := handlers.NewWebSocketHandler(hub, log)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(services.Session, log))

		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionHandler.Me)
			r.Post("/admin", sessionHandler.AdminLogin)
			r.Post("/logout", sessionHandler.Logout)
		})

		r.Route("/tournament", func(r chi.Router) {
			r.Get("/", tournamentHandler.Get)
			r.Get("/standings", tournamentHandler.Standings)

			// Open to any session
			r.Post("/players", tournamentHandler.RegisterPlayer)
			r.Post("/votes", tournamentHandler.CastVote)

			// Admin actions
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Delete("/players/{name}", tournamentHandler.RemovePlayer)
				r.Post("/registration/complete", tournamentHandler.CompleteRegistration)
				r.Post("/captains/finalize", tournamentHandler.FinalizeCaptains)
				r.Post("/team-names", tournamentHandler.SaveTeamNames)
				r.Post("/draft/pick", tournamentHandler.DraftPick)
				r.Post("/pairings", tournamentHandler.SavePairings)
				r.Post("/matches", tournamentHandler.CreateMatches)
				r.Post("/matches/{id}/result", tournamentHandler.RecordResult)
				r.Post("/reset", tournamentHandler.Reset)
			})
		})

		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
