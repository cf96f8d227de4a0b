package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/view"
)

// RegisterViewRoutes wires the navigation endpoints. Gating happens inside
// the handler, so the routes themselves are public.
func RegisterViewRoutes(r fiber.Router, h *view.Handler) {
	group := r.Group("/view")
	group.Get("/", h.Current)
	group.Post("/navigate", h.Navigate)
	group.Post("/back", h.Back)
}
