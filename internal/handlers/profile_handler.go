package handlers

import (
	"errors"

	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/middleware"
	"github.com/gardenops/inventory-backend/internal/services"
	"github.com/gardenops/inventory-backend/internal/uploads"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler lets any authenticated user manage their own record.
// The same handler backs /profile and the admin panel's profile API.
type ProfileHandler struct {
	userService *services.UserService
	profiles    *uploads.Store
}

func NewProfileHandler(userService *services.UserService, profiles *uploads.Store) *ProfileHandler {
	return &ProfileHandler{userService: userService, profiles: profiles}
}

func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	return c.JSON(dto.UserDetailResponse{Success: true, User: dto.NewUserResponse(user)})
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	// Optional profile image: the previous one is archived, never
	// deleted.
	newImagePath := ""
	if file, err := c.FormFile("profileImage"); err == nil && file != nil {
		if user.ProfileImage != "" {
			if err := h.profiles.Archive(user.ProfileImage); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to archive old profile image"))
			}
		}
		name, err := h.profiles.Save(c, file)
		if err != nil {
			if errors.Is(err, uploads.ErrInvalidType) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to store profile image"))
		}
		newImagePath = "/uploads/profiles/" + name
	}

	if err := h.userService.UpdateProfile(user, &req, newImagePath); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("This email is already in use"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("An error occurred"))
	}

	return c.JSON(dto.OK("Profile updated successfully"))
}

func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	if err := h.userService.ChangePassword(user, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Current password is incorrect"))
		}
		if errors.Is(err, services.ErrPasswordTooShort) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("New password must be at least 8 characters"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("An error occurred"))
	}

	return c.JSON(dto.OK("Password changed successfully"))
}
