package handlers

import (
	"errors"

	"github.com/gardenops/inventory-backend/internal/authz"
	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/middleware"
	"github.com/gardenops/inventory-backend/internal/models"
	"github.com/gardenops/inventory-backend/internal/services"
	"github.com/gardenops/inventory-backend/internal/uploads"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productService *services.ProductService
	images         *uploads.Store
}

func NewProductHandler(productService *services.ProductService, images *uploads.Store) *ProductHandler {
	return &ProductHandler{productService: productService, images: images}
}

func (h *ProductHandler) Index(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil || (!actor.IsStaff() && !actor.IsAdmin()) {
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Staff access required"))
	}

	products, err := h.productService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to list products"))
	}

	resp := dto.ProductListResponse{Success: true, Products: make([]dto.ProductResponse, 0, len(products))}
	for i := range products {
		resp.Products = append(resp.Products, dto.NewProductResponse(&products[i]))
	}
	return c.JSON(resp)
}

func (h *ProductHandler) Show(c *fiber.Ctx) error {
	product, status, err := h.findProduct(c)
	if err != nil {
		return c.Status(status).JSON(dto.Fail(err.Error()))
	}

	actor := middleware.CurrentUser(c)
	if !authz.CanProduct(actor, authz.ActionView, product) {
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Staff access required"))
	}

	return c.JSON(dto.ProductDetailResponse{Success: true, Product: dto.NewProductResponse(product)})
}

// Create stores a new product owned by the caller. Staff only; plain
// users cannot create products.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil || (!actor.IsStaff() && !actor.IsAdmin()) {
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Only staff can create products"))
	}

	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	image, status, err := h.saveImage(c)
	if err != nil {
		return c.Status(status).JSON(dto.Fail(err.Error()))
	}

	product, err := h.productService.Create(actor, &req, image)
	if err != nil {
		if errors.Is(err, services.ErrNegativePrice) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to create product"))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ProductDetailResponse{
		Success: true,
		Message: "Product created successfully",
		Product: dto.NewProductResponse(product),
	})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	product, status, err := h.findProduct(c)
	if err != nil {
		return c.Status(status).JSON(dto.Fail(err.Error()))
	}

	actor := middleware.CurrentUser(c)
	if !authz.CanProduct(actor, authz.ActionEdit, product) {
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("You may only edit your own products"))
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	image, status, err := h.saveImage(c)
	if err != nil {
		return c.Status(status).JSON(dto.Fail(err.Error()))
	}

	updated, err := h.productService.Update(actor, product, &req, image)
	if err != nil {
		if errors.Is(err, services.ErrNegativePrice) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to update product"))
	}

	return c.JSON(dto.ProductDetailResponse{
		Success: true,
		Message: "Product updated successfully",
		Product: dto.NewProductResponse(updated),
	})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	product, status, err := h.findProduct(c)
	if err != nil {
		return c.Status(status).JSON(dto.Fail(err.Error()))
	}

	actor := middleware.CurrentUser(c)
	if !authz.CanProduct(actor, authz.ActionDelete, product) {
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("You may only delete your own products"))
	}

	if err := h.productService.Delete(actor, product); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to delete product"))
	}

	return c.JSON(dto.OK("Product deleted successfully"))
}

func (h *ProductHandler) findProduct(c *fiber.Ctx) (*models.Product, int, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, errors.New("invalid product id")
	}

	product, err := h.productService.Get(id)
	if err != nil {
		return nil, fiber.StatusNotFound, errors.New("product not found")
	}
	return product, fiber.StatusOK, nil
}

// saveImage stores an optional multipart image field. No file is not
// an error.
func (h *ProductHandler) saveImage(c *fiber.Ctx) (string, int, error) {
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return "", fiber.StatusOK, nil
	}

	name, err := h.images.Save(c, file)
	if err != nil {
		if errors.Is(err, uploads.ErrInvalidType) {
			return "", fiber.StatusBadRequest, err
		}
		return "", fiber.StatusInternalServerError, errors.New("failed to store image")
	}
	return name, fiber.StatusOK, nil
}
