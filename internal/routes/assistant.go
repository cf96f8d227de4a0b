package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/assistant"
)

// RegisterAssistantRoutes wires the assistant personas.
func RegisterAssistantRoutes(r fiber.Router, h *assistant.Handler) {
	group := r.Group("/assistant")
	group.Post("/audit", h.Audit)
	group.Post("/chat", h.Chat)
}
