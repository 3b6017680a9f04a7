package services

import (
	"errors"
	"fmt"

	"github.com/gardenops/inventory-backend/internal/activity"
	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken       = errors.New("this email is already in use")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrSelfDelete       = errors.New("users cannot delete themselves")
)

type UserService struct {
	db     *gorm.DB
	logger *activity.Logger
}

func NewUserService(db *gorm.DB, logger *activity.Logger) *UserService {
	return &UserService{db: db, logger: logger}
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Create adds a user and its CREATE_USER audit entry in one
// transaction. Duplicate emails are detected up front rather than
// surfaced as a constraint error.
func (s *UserService) Create(actor *models.User, req *dto.CreateUserRequest) (*models.User, error) {
	if s.emailTaken(req.Email, uuid.Nil) {
		return nil, ErrEmailTaken
	}
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:     req.Email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Roles:     datatypes.NewJSONSlice(buildRoleSet(req.Role)),
		IsActive:  req.IsActive == nil || *req.IsActive,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		target := fmt.Sprintf("Created user %s", user.Email)
		return s.logger.LogTx(tx, actor, models.ActionCreateUser, target, nil)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the changed fields, records a field-level diff in the
// UPDATE_USER audit entry, and commits both together.
func (s *UserService) Update(actor *models.User, id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

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
			return nil, ErrEmailTaken
		}
		changes["email"] = models.FieldChange{From: user.Email, To: *req.Email}
		user.Email = *req.Email
	}
	if req.Phone != nil && user.Phone != *req.Phone {
		changes["phone"] = models.FieldChange{From: user.Phone, To: *req.Phone}
		user.Phone = *req.Phone
	}
	if req.IsActive != nil && user.IsActive != *req.IsActive {
		changes["isActive"] = models.FieldChange{From: boolString(user.IsActive), To: boolString(*req.IsActive)}
		user.IsActive = *req.IsActive
	}
	if req.Role != nil {
		newRoles := buildRoleSet(*req.Role)
		if oldList := joinRoles(user.Roles); oldList != joinRoles(newRoles) {
			changes["roles"] = models.FieldChange{From: oldList, To: joinRoles(newRoles)}
			user.Roles = datatypes.NewJSONSlice(newRoles)
		}
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 8 {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
		changes["password"] = models.FieldChange{From: "***", To: "***"}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		target := fmt.Sprintf("Updated user %s", user.Email)
		if len(changes) == 0 {
			return s.logger.LogTx(tx, actor, models.ActionUpdateUser, target, nil)
		}
		return s.logger.LogTx(tx, actor, models.ActionUpdateUser, target, changes)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleStatus flips the active flag. Password re-verification for
// admin deactivation is the handler's concern.
func (s *UserService) ToggleStatus(actor *models.User, id uuid.UUID, isActive bool) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]models.FieldChange{
		"isActive": {From: boolString(user.IsActive), To: boolString(isActive)},
	}
	user.IsActive = isActive

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		target := fmt.Sprintf("Toggled user %s active=%s", user.Email, yesNo(isActive))
		return s.logger.LogTx(tx, actor, models.ActionUpdateUser, target, changes)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Owned products and stocks keep existing with
// their owner reference cleared; the audit trail keeps the snapshot.
func (s *UserService) Delete(actor *models.User, id uuid.UUID) error {
	if actor != nil && actor.ID == id {
		return ErrSelfDelete
	}

	user, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("owner_id = ?", user.ID).Update("owner_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Stock{}).Where("owner_id = ?", user.ID).Update("owner_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(user).Error; err != nil {
			return err
		}
		target := fmt.Sprintf("Deleted user %s", user.Email)
		return s.logger.LogTx(tx, actor, models.ActionDeleteUser, target, nil)
	})
}

func (s *UserService) emailTaken(email string, exclude uuid.UUID) bool {
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err != nil {
		return false
	}
	return existing.ID != exclude
}

// buildRoleSet always includes the base role; admin and staff tags are
// stacked on top of it.
func buildRoleSet(role models.Role) []models.Role {
	roles := []models.Role{models.RoleUser}
	switch role {
	case models.RoleAdmin:
		roles = append(roles, models.RoleAdmin)
	case models.RoleStaff:
		roles = append(roles, models.RoleStaff)
	}
	return roles
}

func joinRoles(roles []models.Role) string {
	out := ""
	for i, r := range roles {
		if i > 0 {
			out += ","
		}
		out += string(r)
	}
	return out
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
