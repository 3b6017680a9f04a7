package activity

import (
	"fmt"
	"testing"
	"time"

	"github.com/gardenops/inventory-backend/internal/database"
	"github.com/gardenops/inventory-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, roles ...models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Email:    email,
		Password: "x",
		Roles:    datatypes.NewJSONSlice(roles),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestLogSnapshotsActor(t *testing.T) {
	db := testDB(t)
	l := NewLogger(db)

	actor := seedUser(t, db, "admin@example.com", models.RoleAdmin, models.RoleUser)
	require.NoError(t, l.Log(actor, models.ActionCreateProduct, "Calamansi", nil))

	var entry models.ActivityLog
	require.NoError(t, db.First(&entry).Error)

	require.NotNil(t, entry.Username)
	assert.Equal(t, "admin@example.com", *entry.Username)
	require.NotNil(t, entry.Role)
	assert.Equal(t, models.RoleAdmin, *entry.Role)
	assert.Equal(t, models.ActionCreateProduct, entry.Action)
	assert.Equal(t, "Calamansi", entry.Target)
}

func TestSnapshotSurvivesActorChanges(t *testing.T) {
	db := testDB(t)
	l := NewLogger(db)

	actor := seedUser(t, db, "staff@example.com", models.RoleStaff, models.RoleUser)
	require.NoError(t, l.Log(actor, models.ActionUpdateProduct, "Rambutan", nil))

	// Renaming the account later must not rewrite history.
	require.NoError(t, db.Model(actor).Update("email", "renamed@example.com").Error)

	var entry models.ActivityLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "staff@example.com", *entry.Username)
}

func TestLogStoresFieldChanges(t *testing.T) {
	db := testDB(t)
	l := NewLogger(db)

	actor := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	changes := map[string]models.FieldChange{
		"price": {From: "10.00", To: "12.50"},
	}
	require.NoError(t, l.Log(actor, models.ActionUpdateProduct, "Lanzones", changes))

	var entry models.ActivityLog
	require.NoError(t, db.First(&entry).Error)

	got := entry.Changes.Data()
	require.Contains(t, got, "price")
	assert.Equal(t, "10.00", got["price"].From)
	assert.Equal(t, "12.50", got["price"].To)
}

func TestListFilters(t *testing.T) {
	db := testDB(t)
	l := NewLogger(db)

	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	staff := seedUser(t, db, "staff@example.com", models.RoleStaff)

	require.NoError(t, l.Log(admin, models.ActionCreateUser, "new@example.com", nil))
	require.NoError(t, l.Log(staff, models.ActionCreateProduct, "Calamansi", nil))
	require.NoError(t, l.Log(staff, models.ActionUpdateProduct, "Calamansi", nil))

	// Entries with no actor snapshot stay out of the listing.
	require.NoError(t, db.Create(&models.ActivityLog{Action: models.ActionLogin, Target: "system"}).Error)

	all, err := l.List(Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byUser, err := l.List(Filter{Username: "staff"})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byAction, err := l.List(Filter{Action: models.ActionCreateUser})
	require.NoError(t, err)
	require.Len(t, byAction, 1)
	assert.Equal(t, "new@example.com", byAction[0].Target)

	future := time.Now().Add(time.Hour)
	none, err := l.List(Filter{From: &future})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListNewestFirstAndCapped(t *testing.T) {
	db := testDB(t)
	l := NewLogger(db)

	actor := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 210; i++ {
		entry := models.ActivityLog{
			UserID:    &actor.ID,
			Username:  &actor.Email,
			Action:    models.ActionUpdateStock,
			Target:    fmt.Sprintf("batch %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	logs, err := l.List(Filter{})
	require.NoError(t, err)
	require.Len(t, logs, 200)
	assert.Equal(t, "batch 209", logs[0].Target)
	assert.True(t, logs[0].CreatedAt.After(logs[len(logs)-1].CreatedAt))
}
