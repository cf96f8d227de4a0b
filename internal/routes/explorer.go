package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/explorer"
)

// RegisterExplorerRoutes wires the public registry directory.
func RegisterExplorerRoutes(r fiber.Router, h *explorer.Handler) {
	r.Get("/explorer/nodes", h.Nodes)
}
