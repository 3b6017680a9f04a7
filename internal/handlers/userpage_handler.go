package handlers

import (
	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/middleware"
	"github.com/gardenops/inventory-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserPageHandler struct {
	productService *services.ProductService
}

func NewUserPageHandler(productService *services.ProductService) *UserPageHandler {
	return &UserPageHandler{productService: productService}
}

// Index is the signed-in user's landing page: their profile plus a
// snapshot of the products they own.
func (h *UserPageHandler) Index(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	owned, err := h.productService.OwnedBy(user.ID, 6)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to load user page"))
	}

	total, err := h.productService.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to load user page"))
	}

	ownedResp := make([]dto.ProductResponse, 0, len(owned))
	for i := range owned {
		ownedResp = append(ownedResp, dto.NewProductResponse(&owned[i]))
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"user":           dto.NewUserResponse(user),
		"owned_products": ownedResp,
		"stats": fiber.Map{
			"ownedProducts": len(ownedResp),
			"totalProducts": total,
		},
		"is_staff": user.IsStaff(),
	})
}

func (h *UserPageHandler) Profile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"user":     dto.NewUserResponse(user),
		"is_staff": user.IsStaff(),
	})
}
