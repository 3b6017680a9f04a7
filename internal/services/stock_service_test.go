package services

import (
	"testing"

	"github.com/gardenops/inventory-backend/internal/activity"
	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStockService(db *gorm.DB) *StockService {
	return NewStockService(db, activity.NewLogger(db))
}

func seedProduct(t *testing.T, db *gorm.DB, name string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestCreateStockLinksProducts(t *testing.T) {
	db := testDB(t)
	svc := newStockService(db)
	staff := seedUser(t, db, "staff@example.com", "password123", models.RoleStaff)
	p1 := seedProduct(t, db, "Calamansi")
	p2 := seedProduct(t, db, "Rambutan")

	min := 5
	stock, err := svc.Create(staff, &dto.CreateStockRequest{
		Quantity:        50,
		StockType:       models.StockTypeSeedlings,
		MinimumQuantity: &min,
		Location:        "Nursery A",
		ProductIDs:      []uuid.UUID{p1.ID, p2.ID},
	})
	require.NoError(t, err)

	require.NotNil(t, stock.OwnerID)
	assert.Equal(t, staff.ID, *stock.OwnerID)

	fresh, err := svc.Get(stock.ID)
	require.NoError(t, err)
	assert.Len(t, fresh.Products, 2)

	var entry models.ActivityLog
	require.NoError(t, db.Where("action = ?", models.ActionCreateStock).First(&entry).Error)
	assert.Equal(t, "Created stock (Type: seedlings, Location: Nursery A)", entry.Target)
}

func TestCreateStockValidation(t *testing.T) {
	db := testDB(t)
	svc := newStockService(db)
	staff := seedUser(t, db, "staff@example.com", "password123", models.RoleStaff)

	_, err := svc.Create(staff, &dto.CreateStockRequest{Quantity: -1})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	_, err = svc.Create(staff, &dto.CreateStockRequest{Quantity: 1, StockType: "perennials"})
	assert.ErrorIs(t, err, ErrInvalidStockType)
}

func TestUpdateStockReplacesProductLinks(t *testing.T) {
	db := testDB(t)
	svc := newStockService(db)
	staff := seedUser(t, db, "staff@example.com", "password123", models.RoleStaff)
	p1 := seedProduct(t, db, "Calamansi")
	p2 := seedProduct(t, db, "Lanzones")

	stock, err := svc.Create(staff, &dto.CreateStockRequest{
		Quantity:   10,
		StockType:  models.StockTypeGrafted,
		Location:   "Nursery B",
		ProductIDs: []uuid.UUID{p1.ID},
	})
	require.NoError(t, err)

	qty := 25
	_, err = svc.Update(staff, stock, &dto.UpdateStockRequest{
		Quantity:   &qty,
		ProductIDs: []uuid.UUID{p2.ID},
	})
	require.NoError(t, err)

	fresh, err := svc.Get(stock.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, fresh.Quantity)
	require.Len(t, fresh.Products, 1)
	assert.Equal(t, p2.ID, fresh.Products[0].ID)
}

func TestUpdateStockKeepsLinksWhenOmitted(t *testing.T) {
	db := testDB(t)
	svc := newStockService(db)
	staff := seedUser(t, db, "staff@example.com", "password123", models.RoleStaff)
	p1 := seedProduct(t, db, "Calamansi")

	stock, err := svc.Create(staff, &dto.CreateStockRequest{
		Quantity:   10,
		StockType:  models.StockTypeInventory,
		ProductIDs: []uuid.UUID{p1.ID},
	})
	require.NoError(t, err)

	loc := "Warehouse"
	_, err = svc.Update(staff, stock, &dto.UpdateStockRequest{Location: &loc})
	require.NoError(t, err)

	fresh, err := svc.Get(stock.ID)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse", fresh.Location)
	assert.Len(t, fresh.Products, 1)
}

func TestDeleteStock(t *testing.T) {
	db := testDB(t)
	svc := newStockService(db)
	staff := seedUser(t, db, "staff@example.com", "password123", models.RoleStaff)
	p1 := seedProduct(t, db, "Calamansi")

	stock, err := svc.Create(staff, &dto.CreateStockRequest{
		Quantity:   10,
		StockType:  models.StockTypeMarcotted,
		Location:   "Nursery C",
		ProductIDs: []uuid.UUID{p1.ID},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(staff, stock))

	var gone models.Stock
	assert.ErrorIs(t, db.First(&gone, "id = ?", stock.ID).Error, gorm.ErrRecordNotFound)

	// The linked product survives the deletion.
	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", p1.ID).Error)

	var entry models.ActivityLog
	require.NoError(t, db.Where("action = ?", models.ActionDeleteStock).First(&entry).Error)
	assert.Equal(t, "Deleted stock (Type: marcotted, Location: Nursery C)", entry.Target)
}
