package handlers

import (
	"errors"

	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/middleware"
	"github.com/gardenops/inventory-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler serves the admin dashboard and the user-management JSON
// API. Every route behind it already passed AdminRequired.
type AdminHandler struct {
	userService      *services.UserService
	productService   *services.ProductService
	dashboardService *services.DashboardService
	authService      *services.AuthService
}

func NewAdminHandler(
	userService *services.UserService,
	productService *services.ProductService,
	dashboardService *services.DashboardService,
	authService *services.AuthService,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		productService:   productService,
		dashboardService: dashboardService,
		authService:      authService,
	}
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.dashboardService.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to load dashboard"))
	}

	recent, err := h.productService.Recent(6)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to load dashboard"))
	}

	recentResp := make([]dto.ProductResponse, 0, len(recent))
	for i := range recent {
		recentResp = append(recentResp, dto.NewProductResponse(&recent[i]))
	}

	return c.JSON(dto.DashboardResponse{
		Success:         true,
		TotalUsers:      stats.TotalUsers,
		TotalProducts:   stats.TotalProducts,
		TotalStocks:     stats.TotalStocks,
		RecentProducts:  recentResp,
		UserGrowth:      stats.UserGrowth,
		UserGrowthDates: stats.UserGrowthDates,
	})
}

// AuthorizeDownload re-checks the admin's password before a dashboard
// export is released.
func (h *AdminHandler) AuthorizeDownload(c *fiber.Ctx) error {
	var req dto.PasswordCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}
	if req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"authorized": false, "message": "Password is required"})
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"authorized": false, "message": "Not authenticated"})
	}

	if !h.authService.VerifyPassword(user, req.Password) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"authorized": false, "message": "Invalid password"})
	}

	return c.JSON(fiber.Map{"authorized": true})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to list users"))
	}

	resp := dto.UserListResponse{Success: true, Users: make([]dto.UserResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(resp)
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid user id"))
	}

	user, err := h.userService.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("User not found"))
	}

	return c.JSON(dto.UserDetailResponse{Success: true, User: dto.NewUserResponse(user)})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	actor := middleware.CurrentUser(c)
	user, err := h.userService.Create(actor, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) || errors.Is(err, services.ErrPasswordTooShort) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Error creating user"))
	}

	return c.JSON(dto.UserDetailResponse{
		Success: true,
		Message: "User created successfully",
		User:    dto.NewUserResponse(user),
	})
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid user id"))
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	actor := middleware.CurrentUser(c)
	user, err := h.userService.Update(actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("User not found"))
		case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrPasswordTooShort):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Error updating user"))
		}
	}

	return c.JSON(dto.UserDetailResponse{
		Success: true,
		Message: "User updated successfully",
		User:    dto.NewUserResponse(user),
	})
}

// ToggleUserStatus flips an account's active flag. Deactivating an
// admin account additionally requires the acting admin's password.
func (h *AdminHandler) ToggleUserStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid user id"))
	}

	var req dto.ToggleStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	target, err := h.userService.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("User not found"))
	}

	actor := middleware.CurrentUser(c)
	if !req.IsActive && target.IsAdmin() {
		if req.Password == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Password is required to deactivate an admin account"))
		}
		if !h.authService.VerifyPassword(actor, req.Password) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Invalid password. Admin deactivation not allowed."))
		}
	}

	user, err := h.userService.ToggleStatus(actor, id, req.IsActive)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Error updating user status"))
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "User status updated successfully",
		"isActive": user.IsActive,
	})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid user id"))
	}

	actor := middleware.CurrentUser(c)
	if err := h.userService.Delete(actor, id); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfDelete):
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Users cannot delete themselves"))
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("User not found"))
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Error deleting user"))
		}
	}

	return c.JSON(dto.OK("User deleted successfully"))
}
