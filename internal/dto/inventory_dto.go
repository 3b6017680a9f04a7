package dto

import (
	"github.com/gardenops/inventory-backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name        string          `json:"name" form:"name"`
	Description string          `json:"description" form:"description"`
	Price       decimal.Decimal `json:"price" form:"price"`
	IsAvailable *bool           `json:"isAvailable" form:"isAvailable"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name" form:"name"`
	Description *string          `json:"description" form:"description"`
	Price       *decimal.Decimal `json:"price" form:"price"`
	IsAvailable *bool            `json:"isAvailable" form:"isAvailable"`
}

type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
	Image       string          `json:"image,omitempty"`
	OwnerID     *uuid.UUID      `json:"owner_id"`
	Quantity    int             `json:"quantity"`
	StockStatus string          `json:"stock_status"`
}

func NewProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		IsAvailable: p.IsAvailable,
		Image:       p.ImagePath(),
		OwnerID:     p.OwnerID,
		Quantity:    p.CurrentStockQuantity(),
		StockStatus: p.StockStatus(),
	}
}

type ProductListResponse struct {
	Success  bool              `json:"success"`
	Products []ProductResponse `json:"products"`
}

type ProductDetailResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Product ProductResponse `json:"product"`
}

type CreateStockRequest struct {
	Quantity        int              `json:"quantity" form:"quantity"`
	StockType       models.StockType `json:"stockType" form:"stockType"`
	MinimumQuantity *int             `json:"minimumQuantity" form:"minimumQuantity"`
	MaximumQuantity *int             `json:"maximumQuantity" form:"maximumQuantity"`
	Location        string           `json:"location" form:"location"`
	ProductIDs      []uuid.UUID      `json:"productIds" form:"productIds"`
}

type UpdateStockRequest struct {
	Quantity        *int              `json:"quantity" form:"quantity"`
	StockType       *models.StockType `json:"stockType" form:"stockType"`
	MinimumQuantity *int              `json:"minimumQuantity" form:"minimumQuantity"`
	MaximumQuantity *int              `json:"maximumQuantity" form:"maximumQuantity"`
	Location        *string           `json:"location" form:"location"`
	ProductIDs      []uuid.UUID       `json:"productIds" form:"productIds"`
}

type StockResponse struct {
	ID              uuid.UUID        `json:"id"`
	Quantity        int              `json:"quantity"`
	StockType       models.StockType `json:"stock_type"`
	MinimumQuantity *int             `json:"minimum_quantity"`
	MaximumQuantity *int             `json:"maximum_quantity"`
	Location        string           `json:"location"`
	OwnerID         *uuid.UUID       `json:"owner_id"`
	Status          string           `json:"status"`
	ProductSummary  string           `json:"product_summary"`
}

func NewStockResponse(s *models.Stock) StockResponse {
	return StockResponse{
		ID:              s.ID,
		Quantity:        s.Quantity,
		StockType:       s.StockType,
		MinimumQuantity: s.MinimumQuantity,
		MaximumQuantity: s.MaximumQuantity,
		Location:        s.Location,
		OwnerID:         s.OwnerID,
		Status:          s.Status(),
		ProductSummary:  s.ProductSummary(),
	}
}

type StockListResponse struct {
	Success bool            `json:"success"`
	Stocks  []StockResponse `json:"stocks"`
}

type StockDetailResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Stock   StockResponse `json:"stock"`
}
