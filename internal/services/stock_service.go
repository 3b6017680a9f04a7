package services

import (
	"errors"
	"fmt"

	"github.com/gardenops/inventory-backend/internal/activity"
	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrStockNotFound    = errors.New("stock not found")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	ErrInvalidStockType = errors.New("invalid stock type")
)

type StockService struct {
	db     *gorm.DB
	logger *activity.Logger
}

func NewStockService(db *gorm.DB, logger *activity.Logger) *StockService {
	return &StockService{db: db, logger: logger}
}

func (s *StockService) Get(id uuid.UUID) (*models.Stock, error) {
	var stock models.Stock
	if err := s.db.Preload("Products").First(&stock, "id = ?", id).Error; err != nil {
		return nil, ErrStockNotFound
	}
	return &stock, nil
}

func (s *StockService) List() ([]models.Stock, error) {
	var stocks []models.Stock
	if err := s.db.Preload("Products").Order("created_at DESC").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// Create stores a stock record owned by the creating actor, links the
// requested products, and writes the CREATE_STOCK audit entry in the
// same transaction.
func (s *StockService) Create(actor *models.User, req *dto.CreateStockRequest) (*models.Stock, error) {
	if req.Quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if req.StockType != "" && !models.ValidStockType(req.StockType) {
		return nil, ErrInvalidStockType
	}

	stock := models.Stock{
		Quantity:        req.Quantity,
		StockType:       req.StockType,
		MinimumQuantity: req.MinimumQuantity,
		MaximumQuantity: req.MaximumQuantity,
		Location:        req.Location,
	}
	if actor != nil {
		id := actor.ID
		stock.OwnerID = &id
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&stock).Error; err != nil {
			return err
		}
		if err := s.linkProducts(tx, &stock, req.ProductIDs); err != nil {
			return err
		}
		target := fmt.Sprintf("Created stock (Type: %s, Location: %s)", stock.StockType, stock.Location)
		return s.logger.LogTx(tx, actor, models.ActionCreateStock, target, nil)
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (s *StockService) Update(actor *models.User, stock *models.Stock, req *dto.UpdateStockRequest) (*models.Stock, error) {
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, ErrNegativeQuantity
		}
		stock.Quantity = *req.Quantity
	}
	if req.StockType != nil {
		if *req.StockType != "" && !models.ValidStockType(*req.StockType) {
			return nil, ErrInvalidStockType
		}
		stock.StockType = *req.StockType
	}
	if req.MinimumQuantity != nil {
		stock.MinimumQuantity = req.MinimumQuantity
	}
	if req.MaximumQuantity != nil {
		stock.MaximumQuantity = req.MaximumQuantity
	}
	if req.Location != nil {
		stock.Location = *req.Location
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(stock).Error; err != nil {
			return err
		}
		if req.ProductIDs != nil {
			if err := tx.Model(stock).Association("Products").Clear(); err != nil {
				return err
			}
			if err := s.linkProducts(tx, stock, req.ProductIDs); err != nil {
				return err
			}
		}
		target := fmt.Sprintf("Updated stock (Type: %s, Location: %s)", stock.StockType, stock.Location)
		return s.logger.LogTx(tx, actor, models.ActionUpdateStock, target, nil)
	})
	if err != nil {
		return nil, err
	}
	return stock, nil
}

func (s *StockService) Delete(actor *models.User, stock *models.Stock) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(stock).Association("Products").Clear(); err != nil {
			return err
		}
		if err := tx.Delete(stock).Error; err != nil {
			return err
		}
		target := fmt.Sprintf("Deleted stock (Type: %s, Location: %s)", stock.StockType, stock.Location)
		return s.logger.LogTx(tx, actor, models.ActionDeleteStock, target, nil)
	})
}

func (s *StockService) Count() (int64, error) {
	var n int64
	err := s.db.Model(&models.Stock{}).Count(&n).Error
	return n, err
}

func (s *StockService) linkProducts(tx *gorm.DB, stock *models.Stock, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	var products []models.Product
	if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return err
	}
	return tx.Model(stock).Association("Products").Append(&products)
}
