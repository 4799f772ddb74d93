package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-board/internal/api/dto"
	"github.com/spec-kit/project-board/internal/service"
	apperrors "github.com/spec-kit/project-board/pkg/util"
)

// AuthHandler exposes invite activation and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Activate handles POST /auth/activate.
func (h *AuthHandler) Activate(c *fiber.Ctx) error {
	var req dto.ActivateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.Password == "" {
		return apperrors.NewValidationError("token and password required", nil)
	}

	member, token, exp, err := h.auth.Activate(c.Context(), req.Token, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"member": memberSummary(member),
			"auth":   dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	member, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"member": memberSummary(member),
			"auth":   dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
