package explorer

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the public registry directory.
type Handler struct {
	service *Service
}

// NewHandler constructs an explorer handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Nodes serves the searchable, cumulatively paginated directory.
func (h *Handler) Nodes(c *fiber.Ctx) error {
	directory, err := h.service.Directory(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	matched := Search(directory, c.Query("query"))
	page := Paginate(matched, c.QueryInt("page", 1), c.QueryInt("size", DefaultPageSize))
	return c.JSON(fiber.Map{
		"nodes":     page,
		"total":     len(matched),
		"published": h.service.Published(c.UserContext()),
	})
}
