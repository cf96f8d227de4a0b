package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/pluto-protocol/pluto_terminal/internal/market"
)

// RegisterMarketRoutes wires the ticker endpoints: REST snapshots plus the
// websocket stream.
func RegisterMarketRoutes(r fiber.Router, feed *market.Feed, walk *market.RandomWalk) {
	group := r.Group("/market")

	group.Get("/quotes", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"quotes": walk.Snapshot()})
	})
	group.Get("/venues", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"venues": market.Venues()})
	})

	group.Use("/stream", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	group.Get("/stream", websocket.New(func(conn *websocket.Conn) {
		updates, cancel := feed.Subscribe()
		defer cancel()

		if err := conn.WriteJSON(walk.Snapshot()); err != nil {
			return
		}
		for quotes := range updates {
			if err := conn.WriteJSON(quotes); err != nil {
				return
			}
		}
	}))
}
