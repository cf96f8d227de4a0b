package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/trade"
)

// RegisterTradeRoutes wires the order endpoints.
func RegisterTradeRoutes(r fiber.Router, h *trade.Handler) {
	group := r.Group("/trade")
	group.Post("/buy", h.Buy)
	group.Post("/sell", h.Sell)
	group.Post("/swap", h.Swap)
	group.Post("/perps", h.OpenPosition)
}
