package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock status labels shared by Product and Stock.
const (
	StatusInStock    = "In stock"
	StatusLowStock   = "Low stock"
	StatusOutOfStock = "Out of stock"
	StatusAtCapacity = "At capacity"
)

// lowStockThreshold is the fixed product-level cutoff: a total quantity
// of 1..5 counts as low.
const lowStockThreshold = 5

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"not null;size:200" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable bool            `gorm:"not null;default:true" json:"is_available"`
	Image       string          `gorm:"size:255" json:"image"`
	OwnerID     *uuid.UUID      `gorm:"type:uuid;index" json:"owner_id"`
	Owner       *User           `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"-"`
	Stocks      []Stock         `gorm:"many2many:stock_products" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Product) IsOwnedBy(u *User) bool {
	return u != nil && p.OwnerID != nil && *p.OwnerID == u.ID
}

// CurrentStockQuantity sums the quantity of every linked stock record.
// Stocks must be preloaded.
func (p *Product) CurrentStockQuantity() int {
	total := 0
	for _, s := range p.Stocks {
		total += s.Quantity
	}
	return total
}

// StockStatus derives a display status from the total linked quantity.
func (p *Product) StockStatus() string {
	qty := p.CurrentStockQuantity()
	if qty <= 0 {
		return StatusOutOfStock
	}
	if qty <= lowStockThreshold {
		return StatusLowStock
	}
	return StatusInStock
}

// ImagePath returns a web-accessible path for the product image.
// Absolute URLs are returned unchanged; bare filenames resolve under
// the public uploads directory.
func (p *Product) ImagePath() string {
	if p.Image == "" {
		return ""
	}
	if strings.HasPrefix(p.Image, "http://") || strings.HasPrefix(p.Image, "https://") {
		return p.Image
	}
	return "uploads/images/" + p.Image
}
