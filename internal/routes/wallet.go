package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/wallet"
)

// RegisterWalletRoutes wires the wallet bridge and deposit endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	group := r.Group("/wallet")
	group.Post("/link", h.Link)
	group.Get("/deposit-qr", h.DepositQR)
}
