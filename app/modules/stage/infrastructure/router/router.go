package stagerouter

import (
	"github.com/go-chi/chi/v5"

	stagehandlers "github.com/M8eight/socio-oprosnik/app/modules/stage/infrastructure/handlers"
)

// Register mounts the stage content routes on r.
func Register(r chi.Router, h *stagehandlers.Handlers) {
	r.Route("/stage", func(r chi.Router) {
		r.Post("/save/", h.SaveStage)
		r.Get("/{stage_num}", h.GetStage)
	})
}
