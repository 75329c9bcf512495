package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/api/dto"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/auth"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/service"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/validation"
	apperrors "github.com/Nikhilkrishnapk/complaint-hub/pkg/util"
)

const (
	redirectDashboard = "/dashboard"
	redirectLanding   = "/"
)

// AuthHandler exposes sign-up, sign-in and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	result, err := h.auth.SignUp(c.UserContext(), req.Email, req.Password, req.FullName)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": authResponse(result)})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(result)})
}

// Session handles GET /auth/session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing session")
	}
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		Profile:   profileResponse(principal.Profile),
		ExpiresAt: principal.Session.ExpiresAt,
	}})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing session")
	}
	if err := h.auth.Logout(c.UserContext(), principal.Session); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"redirect": redirectLanding})
}

func authResponse(result *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.Session.ExpiresAt,
		Profile:   profileResponse(result.Profile),
		Redirect:  redirectDashboard,
	}
}

func profileResponse(p *domain.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{ID: p.ID, FullName: p.FullName, Role: p.Role}
}
