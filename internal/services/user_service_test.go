package services

import (
	"fmt"
	"testing"

	"github.com/gardenops/inventory-backend/internal/activity"
	"github.com/gardenops/inventory-backend/internal/database"
	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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

func seedUser(t *testing.T, db *gorm.DB, email, password string, roles ...models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{
		Email:      email,
		Password:   string(hash),
		Roles:      datatypes.NewJSONSlice(roles),
		IsActive:   true,
		IsVerified: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(db, activity.NewLogger(db))
}

func strPtr(s string) *string { return &s }

func TestCreateUser(t *testing.T) {
	db := testDB(t)
	svc := newUserService(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)

	user, err := svc.Create(admin, &dto.CreateUserRequest{
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     "maria@example.com",
		Password:  "password123",
		Role:      models.RoleStaff,
	})
	require.NoError(t, err)
	assert.True(t, user.IsStaff())
	assert.True(t, user.HasRole(models.RoleUser))
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.Password)

	// The mutation and its audit entry commit together.
	var entry models.ActivityLog
	require.NoError(t, db.Where("action = ?", models.ActionCreateUser).First(&entry).Error)
	assert.Equal(t, "Created user maria@example.com", entry.Target)
	assert.Equal(t, "admin@example.com", *entry.Username)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := testDB(t)
	svc := newUserService(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)

	_, err := svc.Create(admin, &dto.CreateUserRequest{
		Email:    "admin@example.com",
		Password: "password123",
		Role:     models.RoleUser,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUserShortPassword(t *testing.T) {
	db := testDB(t)
	svc := newUserService(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)

	_, err := svc.Create(admin, &dto.CreateUserRequest{
		Email:    "short@example.com",
		Password: "abc",
		Role:     models.RoleUser,
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestUpdateUserRecordsFieldDiff(t *testing.T) {
	db := testDB(t)
	svc := newUserService(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)
	target := seedUser(t, db, "old@example.com", "password123", models.RoleUser)
	target.FirstName = "Old"
	require.NoError(t, db.Save(target).Error)

	staffRole := models.RoleStaff
	updated, err := svc.Update(admin, target.ID, &dto.UpdateUserRequest{
		FirstName: strPtr("New"),
		Email:     strPtr("new@example.com"),
		Role:      &staffRole,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.FirstName)
	assert.True(t, updated.IsStaff())

	var entry models.ActivityLog
	require.NoError(t, db.Where("action = ?", models.ActionUpdateUser).First(&entry).Error)
	changes := entry.Changes.Data()
	assert.Equal(t, models.FieldChange{From: "Old", To: "New"}, changes["firstName"])
	assert.Equal(t, models.FieldChange{From: "old@example.com", To: "new@example.com"}, changes["email"])
	assert.Contains(t, changes, "roles")
}

func TestUpdateUserPasswordMasked(t *testing.T) {
	db := testDB(t)
	svc := newUserService(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)
	target := seedUser(t, db, "user@example.com", "password123", models.RoleUser)

	_, err := svc.Update(admin, target.ID, &dto.UpdateUserRequest{
		Password: strPtr("newpassword1"),
	})
	require.NoError(t, err)

	var entry models.ActivityLog
	require.NoError(t, db.Where("action = ?", models.ActionUpdateUser).First(&entry).Error)
	assert.Equal(t, models.FieldChange{From: "***", To: "***"}, entry.Changes.Data()["password"])
}

func TestToggleStatus(t *testing.T) {
	db := testDB(t)
	svc := newUserService(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)
	target := seedUser(t, db, "user@example.com", "password123", models.RoleUser)

	updated, err := svc.ToggleStatus(admin, target.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	var entry models.ActivityLog
	require.NoError(t, db.Where("action = ?", models.ActionUpdateUser).First(&entry).Error)
	assert.Equal(t, "Toggled user user@example.com active=no", entry.Target)
	assert.Equal(t, models.FieldChange{From: "true", To: "false"}, entry.Changes.Data()["isActive"])
}

func TestDeleteUserClearsOwnership(t *testing.T) {
	db := testDB(t)
	svc := newUserService(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)
	staff := seedUser(t, db, "staff@example.com", "password123", models.RoleStaff)

	product := models.Product{Name: "Calamansi", OwnerID: &staff.ID}
	require.NoError(t, db.Create(&product).Error)
	stock := models.Stock{Quantity: 10, StockType: models.StockTypeSeedlings, OwnerID: &staff.ID}
	require.NoError(t, db.Create(&stock).Error)

	require.NoError(t, svc.Delete(admin, staff.ID))

	var gone models.User
	assert.ErrorIs(t, db.First(&gone, "id = ?", staff.ID).Error, gorm.ErrRecordNotFound)

	// Owned records survive with their owner reference cleared. Re-read
	// into fresh structs: GORM leaves existing fields untouched when the
	// column is NULL, so reusing the seeded structs keeps stale pointers.
	productID, stockID := product.ID, stock.ID
	product, stock = models.Product{}, models.Stock{}
	require.NoError(t, db.First(&product, "id = ?", productID).Error)
	assert.Nil(t, product.OwnerID)
	require.NoError(t, db.First(&stock, "id = ?", stockID).Error)
	assert.Nil(t, stock.OwnerID)

	var entry models.ActivityLog
	require.NoError(t, db.Where("action = ?", models.ActionDeleteUser).First(&entry).Error)
	assert.Equal(t, "Deleted user staff@example.com", entry.Target)
}

func TestDeleteSelfRejected(t *testing.T) {
	db := testDB(t)
	svc := newUserService(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)

	assert.ErrorIs(t, svc.Delete(admin, admin.ID), ErrSelfDelete)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateProfile(t *testing.T) {
	db := testDB(t)
	svc := newUserService(db)
	user := seedUser(t, db, "user@example.com", "password123", models.RoleUser)

	err := svc.UpdateProfile(user, &dto.ProfileUpdateRequest{
		FirstName: strPtr("Juan"),
	}, "/uploads/profiles/juan.png")
	require.NoError(t, err)

	var entry models.ActivityLog
	require.NoError(t, db.Where("target = ?", "Updated own profile").First(&entry).Error)
	changes := entry.Changes.Data()
	assert.Equal(t, models.FieldChange{From: "", To: "Juan"}, changes["firstName"])
	assert.Equal(t, models.FieldChange{From: "none", To: "/uploads/profiles/juan.png"}, changes["profileImage"])
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	db := testDB(t)
	svc := newUserService(db)
	seedUser(t, db, "taken@example.com", "password123", models.RoleUser)
	user := seedUser(t, db, "user@example.com", "password123", models.RoleUser)

	err := svc.UpdateProfile(user, &dto.ProfileUpdateRequest{Email: strPtr("taken@example.com")}, "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestChangePassword(t *testing.T) {
	db := testDB(t)
	svc := newUserService(db)
	user := seedUser(t, db, "user@example.com", "oldpassword", models.RoleUser)

	assert.ErrorIs(t, svc.ChangePassword(user, "wrong", "newpassword1"), ErrWrongPassword)
	assert.ErrorIs(t, svc.ChangePassword(user, "oldpassword", "short"), ErrPasswordTooShort)

	require.NoError(t, svc.ChangePassword(user, "oldpassword", "newpassword1"))
	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(fresh.Password), []byte("newpassword1")))
}
