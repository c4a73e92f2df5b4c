package api

import (
	"net/http"

	"betbook/metrics"

	"github.com/go-chi/chi/v5"
)

// Router assembles the route tree
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		recoverer,
		requestID,
		requestLogger,
		corsHandler(s.cfg),
	)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth(s.cfg))

			r.Get("/events", s.handleListEvents)
			r.Get("/events/{id}", s.handleGetEvent)
			r.Post("/bets", s.handlePlaceBet)
			r.Get("/bets/my", s.handleMyBets)
			r.Get("/users/me", s.handleMe)
			r.Get("/users/me/history", s.handleMyHistory)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Post("/events", s.handleCreateEvent)
				r.Patch("/events/{id}", s.handleUpdateEvent)
				r.Post("/events/{id}/close", s.handleCloseEvent)
				r.Delete("/events/{id}", s.handleDeleteEvent)
				r.Get("/users", s.handleListUsers)
			})
		})
	})

	return r
}

// handleHealth reports liveness and database reachability
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorEnvelope{Error: apiError{
			Code: "unavailable", Message: "database unreachable",
		}})
		return
	}
	writeSuccess(w, map[string]string{"status": "ok"})
}
