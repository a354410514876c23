package handler

import (
	"go-campus-events/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// ExternalAuth exchanges campus credentials for an API token
// POST /api/users/external-auth
func (h *AuthHandler) ExternalAuth(c *fiber.Ctx) error {
	var req service.ExternalLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	response, err := h.authService.ExternalLogin(c.UserContext(), &req)
	if err != nil {
		return fail(c, err, "User")
	}

	return c.JSON(response)
}
