package services

import (
	"errors"
	"fmt"

	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrWrongPassword = errors.New("current password is incorrect")

// UpdateProfile lets a user edit their own record. newImagePath is the
// stored path of a freshly uploaded profile image, or empty. The
// UPDATE_USER audit entry carries the field diff and commits with the
// mutation.
func (s *UserService) UpdateProfile(user *models.User, req *dto.ProfileUpdateRequest, newImagePath string) error {
	changes := map[string]models.FieldChange{}

	if req.FirstName != nil && user.FirstName != *req.FirstName {
		changes["firstName"] = models.FieldChange{From: user.FirstName, To: *req.FirstName}
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil && user.LastName != *req.LastName {
		changes["lastName"] = models.FieldChange{From: user.LastName, To: *req.LastName}
		user.LastName = *req.LastName
	}
	if req.Email != nil && user.Email != *req.Email {
		if s.emailTaken(*req.Email, user.ID) {
			return ErrEmailTaken
		}
		changes["email"] = models.FieldChange{From: user.Email, To: *req.Email}
		user.Email = *req.Email
	}
	if req.Phone != nil && user.Phone != *req.Phone {
		changes["phone"] = models.FieldChange{From: user.Phone, To: *req.Phone}
		user.Phone = *req.Phone
	}
	if newImagePath != "" {
		from := user.ProfileImage
		if from == "" {
			from = "none"
		}
		changes["profileImage"] = models.FieldChange{From: from, To: newImagePath}
		user.ProfileImage = newImagePath
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return s.logger.LogTx(tx, user, models.ActionUpdateUser, "Updated own profile", nil)
		}
		return s.logger.LogTx(tx, user, models.ActionUpdateUser, "Updated own profile", changes)
	})
}

// ChangePassword verifies the current password before storing the new
// hash.
func (s *UserService) ChangePassword(user *models.User, currentPassword, newPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hash)
	return s.db.Save(user).Error
}
