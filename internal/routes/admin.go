package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/treasury"
)

// RegisterAdminRoutes wires the creator treasury endpoints. The group is
// mounted behind the creator-role guard.
func RegisterAdminRoutes(r fiber.Router, h *treasury.Handler) {
	group := r.Group("/admin")
	group.Get("/peers", h.Directory)
	group.Post("/drain", h.Drain)
	group.Post("/settle", h.Settle)
	group.Post("/publish", h.Publish)
	group.Post("/self-destruct", h.SelfDestruct)
}
