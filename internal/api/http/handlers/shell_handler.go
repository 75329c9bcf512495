package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/api/dto"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/auth"
)

// ShellHandler serves the landing route.
type ShellHandler struct{}

// NewShellHandler constructs handler.
func NewShellHandler() *ShellHandler {
	return &ShellHandler{}
}

// Index handles GET /. Signed-in callers are sent to the dashboard.
func (h *ShellHandler) Index(c *fiber.Ctx) error {
	resp := dto.ShellResponse{}
	if _, ok := auth.PrincipalFromContext(c); ok {
		target := redirectDashboard
		resp.Authenticated = true
		resp.Redirect = &target
	}
	return c.JSON(resp)
}
