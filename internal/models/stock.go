package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockType enumerates the kinds of stock the application tracks.
type StockType string

const (
	StockTypeSeedlings StockType = "seedlings"
	StockTypeMarcotted StockType = "marcotted"
	StockTypeGrafted   StockType = "grafted"
	StockTypeInventory StockType = "inventory"
)

// ValidStockType reports whether s is one of the enumerated stock types.
func ValidStockType(s StockType) bool {
	switch s {
	case StockTypeSeedlings, StockTypeMarcotted, StockTypeGrafted, StockTypeInventory:
		return true
	}
	return false
}

type Stock struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Quantity        int        `gorm:"not null;default:0" json:"quantity"`
	StockType       StockType  `gorm:"size:50" json:"stock_type"`
	MinimumQuantity *int       `json:"minimum_quantity"`
	MaximumQuantity *int       `json:"maximum_quantity"`
	Location        string     `gorm:"size:255" json:"location"`
	OwnerID         *uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	Owner           *User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"-"`
	Products        []Product  `gorm:"many2many:stock_products" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Stock) TableName() string {
	return "stocks"
}

func (s *Stock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Stock) IsOwnedBy(u *User) bool {
	return u != nil && s.OwnerID != nil && *s.OwnerID == u.ID
}

// IsLowStock is true when a non-zero minimum is configured and the
// quantity has fallen to or below it.
func (s *Stock) IsLowStock() bool {
	if s.MinimumQuantity == nil || *s.MinimumQuantity == 0 {
		return false
	}
	return s.Quantity <= *s.MinimumQuantity
}

// IsAtMaxCapacity is true when a non-zero maximum is configured and the
// quantity has reached it.
func (s *Stock) IsAtMaxCapacity() bool {
	if s.MaximumQuantity == nil || *s.MaximumQuantity == 0 {
		return false
	}
	return s.Quantity >= *s.MaximumQuantity
}

// Status derives a display status. An empty record is out of stock
// regardless of thresholds; low stock wins over capacity.
func (s *Stock) Status() string {
	if s.Quantity == 0 {
		return StatusOutOfStock
	}
	if s.IsLowStock() {
		return StatusLowStock
	}
	if s.IsAtMaxCapacity() {
		return StatusAtCapacity
	}
	return StatusInStock
}

// ProductSummary describes how many products draw from this record.
// Products must be preloaded.
func (s *Stock) ProductSummary() string {
	switch n := len(s.Products); n {
	case 0:
		return "No products assigned"
	case 1:
		return "1 product assigned"
	default:
		return fmt.Sprintf("%d products assigned", n)
	}
}
