package handlers

import (
	"errors"

	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/middleware"
	"github.com/gardenops/inventory-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		// Deactivated accounts get the dedicated page, not a generic
		// login error.
		if errors.Is(err, services.ErrAccountDeactivated) {
			return c.Redirect("/deactivated", fiber.StatusFound)
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error"))
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, services.ErrAccountDeactivated) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Invalid or expired refresh token"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error"))
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	actor := middleware.CurrentUser(c)
	if err := h.authService.Logout(actor, &req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to logout"))
	}

	return c.JSON(dto.OK("Logged out successfully"))
}

// CSRF hands the session's CSRF token to the client for use in the
// X-CSRF-TOKEN header on mutating calls.
func (h *AuthHandler) CSRF(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":    true,
		"csrf_token": middleware.CSRFToken(c),
	})
}

// Deactivated is the landing page for blocked accounts.
func (h *AuthHandler) Deactivated(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":     false,
		"deactivated": true,
		"message":     "Your account has been deactivated. Please contact support for assistance.",
	})
}

// VerifyEmailNotice is where unverified accounts are parked.
func (h *AuthHandler) VerifyEmailNotice(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": false,
		"message": "Please verify your email address to continue.",
	})
}
