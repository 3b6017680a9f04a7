package handlers

import (
	"errors"

	"github.com/gardenops/inventory-backend/internal/authz"
	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/middleware"
	"github.com/gardenops/inventory-backend/internal/models"
	"github.com/gardenops/inventory-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StockHandler struct {
	stockService *services.StockService
}

func NewStockHandler(stockService *services.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

func (h *StockHandler) Index(c *fiber.Ctx) error {
	stocks, err := h.stockService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to list stocks"))
	}

	resp := dto.StockListResponse{Success: true, Stocks: make([]dto.StockResponse, 0, len(stocks))}
	for i := range stocks {
		resp.Stocks = append(resp.Stocks, dto.NewStockResponse(&stocks[i]))
	}
	return c.JSON(resp)
}

// Show is staff-only: plain users see aggregate product status, not
// individual stock records.
func (h *StockHandler) Show(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil || (!actor.IsStaff() && !actor.IsAdmin()) {
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Staff access required"))
	}

	stock, status, err := h.findStock(c)
	if err != nil {
		return c.Status(status).JSON(dto.Fail(err.Error()))
	}

	return c.JSON(dto.StockDetailResponse{Success: true, Stock: dto.NewStockResponse(stock)})
}

func (h *StockHandler) Create(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil || (!actor.IsStaff() && !actor.IsAdmin()) {
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Only staff can create stock records"))
	}

	var req dto.CreateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	stock, err := h.stockService.Create(actor, &req)
	if err != nil {
		if errors.Is(err, services.ErrNegativeQuantity) || errors.Is(err, services.ErrInvalidStockType) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to create stock"))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.StockDetailResponse{
		Success: true,
		Message: "Stock created successfully",
		Stock:   dto.NewStockResponse(stock),
	})
}

func (h *StockHandler) Update(c *fiber.Ctx) error {
	stock, status, err := h.findStock(c)
	if err != nil {
		return c.Status(status).JSON(dto.Fail(err.Error()))
	}

	actor := middleware.CurrentUser(c)
	if !authz.CanStock(actor, authz.ActionEdit, stock) {
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("You may only edit your own stock records"))
	}

	var req dto.UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	updated, err := h.stockService.Update(actor, stock, &req)
	if err != nil {
		if errors.Is(err, services.ErrNegativeQuantity) || errors.Is(err, services.ErrInvalidStockType) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to update stock"))
	}

	return c.JSON(dto.StockDetailResponse{
		Success: true,
		Message: "Stock updated successfully",
		Stock:   dto.NewStockResponse(updated),
	})
}

func (h *StockHandler) Delete(c *fiber.Ctx) error {
	stock, status, err := h.findStock(c)
	if err != nil {
		return c.Status(status).JSON(dto.Fail(err.Error()))
	}

	actor := middleware.CurrentUser(c)
	if !authz.CanStock(actor, authz.ActionDelete, stock) {
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("You may only delete your own stock records"))
	}

	if err := h.stockService.Delete(actor, stock); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to delete stock"))
	}

	return c.JSON(dto.OK("Stock deleted successfully"))
}

func (h *StockHandler) findStock(c *fiber.Ctx) (*models.Stock, int, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, errors.New("invalid stock id")
	}

	stock, err := h.stockService.Get(id)
	if err != nil {
		return nil, fiber.StatusNotFound, errors.New("stock not found")
	}
	return stock, fiber.StatusOK, nil
}
