package calculator

import (
	"github.com/go-chi/chi/v5"

	"keypad-calculator/internal/session"
)

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, store *session.Store) {
	h := NewHandler(store)

	r.Route("/calculator", func(r chi.Router) {
		r.Post("/evaluate", Evaluate)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Get("/{id}", h.GetSession)
			r.Delete("/{id}", h.DeleteSession)
			r.Post("/{id}/press", h.Press)
		})
	})
}
