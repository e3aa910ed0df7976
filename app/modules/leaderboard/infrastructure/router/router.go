package leaderboardrouter

import (
	"github.com/go-chi/chi/v5"

	leaderboardhandlers "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/infrastructure/handlers"
)

// Register mounts the leaderboard routes on r. Paths keep their trailing
// slashes because the browser clients call them that way.
func Register(r chi.Router, h *leaderboardhandlers.Handlers) {
	r.Post("/submit-score/", h.SubmitScore)
	r.Get("/leaderboard/", h.Leaderboard)
	r.Get("/get-progress/", h.GetProgress)

	r.Route("/users", func(r chi.Router) {
		r.Get("/{id}", h.GetUser)
		r.Put("/{id}", h.ReplaceUser)
		r.Delete("/{id}", h.DeleteUser)
	})
}
