package services

import (
	"testing"
	"time"

	"github.com/gardenops/inventory-backend/internal/activity"
	"github.com/gardenops/inventory-backend/internal/config"
	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/mailer"
	"github.com/gardenops/inventory-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
	return NewAuthService(db, cfg, activity.NewLogger(db), mailer.New(cfg))
}

func TestLogin(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	seedUser(t, db, "staff@example.com", "password123", models.RoleStaff, models.RoleUser)

	resp, err := svc.Login(&dto.LoginRequest{Email: "staff@example.com", Password: "password123"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "/userpage", resp.RedirectTo)

	var fresh models.User
	require.NoError(t, db.First(&fresh, "email = ?", "staff@example.com").Error)
	require.NotNil(t, fresh.LastLoginAt)

	var entry models.ActivityLog
	require.NoError(t, db.Where("action = ?", models.ActionLogin).First(&entry).Error)
	assert.Equal(t, "staff@example.com", *entry.Username)
}

func TestLoginAdminRedirect(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin, models.RoleUser)

	resp, err := svc.Login(&dto.LoginRequest{Email: "admin@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "/admin", resp.RedirectTo)
}

func TestLoginBadCredentials(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	seedUser(t, db, "user@example.com", "password123", models.RoleUser)

	_, err := svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	user := seedUser(t, db, "user@example.com", "password123", models.RoleUser)
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	// Deactivation is reported even with the wrong password.
	_, err := svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAccountDeactivated)

	_, err = svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	seedUser(t, db, "user@example.com", "password123", models.RoleUser)

	login, err := svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token is single-use.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	user := seedUser(t, db, "user@example.com", "password123", models.RoleUser)

	login, err := svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestRefreshGarbageToken(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)

	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesAndAudits(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	user := seedUser(t, db, "user@example.com", "password123", models.RoleUser)

	login, err := svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user, &dto.LogoutRequest{RefreshToken: login.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	var entry models.ActivityLog
	require.NoError(t, db.Where("action = ?", models.ActionLogout).First(&entry).Error)
	assert.Equal(t, "user@example.com", *entry.Username)
}

func TestVerifyPassword(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	user := seedUser(t, db, "user@example.com", "password123", models.RoleUser)

	assert.True(t, svc.VerifyPassword(user, "password123"))
	assert.False(t, svc.VerifyPassword(user, "wrong"))
}
