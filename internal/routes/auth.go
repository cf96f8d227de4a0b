package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/authflow"
)

// RegisterAuthRoutes wires the auth flow endpoints.
func RegisterAuthRoutes(r fiber.Router, h *authflow.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	group.Post("/begin", h.Begin)
	group.Get("/flow", h.Current)
	if rateLimiter != nil {
		group.Post("/identifier", rateLimiter, h.SubmitIdentifier)
		group.Post("/code", rateLimiter, h.SubmitCode)
		group.Post("/password", rateLimiter, h.SubmitPassword)
	} else {
		group.Post("/identifier", h.SubmitIdentifier)
		group.Post("/code", h.SubmitCode)
		group.Post("/password", h.SubmitPassword)
	}
	group.Post("/password-setup", h.SetupPassword)
	group.Post("/agreement", h.AcceptAgreement)
	group.Post("/google", h.BeginGoogle)
	group.Post("/web3", h.BeginWeb3)
}
