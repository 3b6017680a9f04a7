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
	ErrProductNotFound = errors.New("product not found")
	ErrNegativePrice   = errors.New("price must not be negative")
)

type ProductService struct {
	db     *gorm.DB
	logger *activity.Logger
}

func NewProductService(db *gorm.DB, logger *activity.Logger) *ProductService {
	return &ProductService{db: db, logger: logger}
}

func (s *ProductService) Get(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Stocks").First(&product, "id = ?", id).Error; err != nil {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (s *ProductService) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Stocks").Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Recent(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Stocks").Order("created_at DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) OwnedBy(userID uuid.UUID, limit int) ([]models.Product, error) {
	var products []models.Product
	q := s.db.Preload("Stocks").Where("owner_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create stores a product owned by the creating actor and writes the
// CREATE_PRODUCT audit entry in the same transaction.
func (s *ProductService) Create(actor *models.User, req *dto.CreateProductRequest, image string) (*models.Product, error) {
	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
		Image:       image,
	}
	if actor != nil {
		id := actor.ID
		product.OwnerID = &id
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		target := fmt.Sprintf("Created product %s", product.Name)
		return s.logger.LogTx(tx, actor, models.ActionCreateProduct, target, nil)
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) Update(actor *models.User, product *models.Product, req *dto.UpdateProductRequest, image string) (*models.Product, error) {
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, ErrNegativePrice
		}
		product.Price = *req.Price
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if image != "" {
		product.Image = image
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(product).Error; err != nil {
			return err
		}
		target := fmt.Sprintf("Updated product %s", product.Name)
		return s.logger.LogTx(tx, actor, models.ActionUpdateProduct, target, nil)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(actor *models.User, product *models.Product) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(product).Association("Stocks").Clear(); err != nil {
			return err
		}
		if err := tx.Delete(product).Error; err != nil {
			return err
		}
		target := fmt.Sprintf("Deleted product %s", product.Name)
		return s.logger.LogTx(tx, actor, models.ActionDeleteProduct, target, nil)
	})
}

func (s *ProductService) Count() (int64, error) {
	var n int64
	err := s.db.Model(&models.Product{}).Count(&n).Error
	return n, err
}
