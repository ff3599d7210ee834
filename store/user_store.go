package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/devaforgestudios-afk/takneek/apperrors"
	"github.com/devaforgestudios-afk/takneek/models"
)

// UserStore manages marketplace accounts, keyed by email.
type UserStore struct {
	db *gorm.DB
}

// Create registers a new user. The password must already be hashed.
func (s *UserStore) Create(name, email, passwordHash string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || passwordHash == "" {
		return nil, apperrors.Validation("name, email and password are required")
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, apperrors.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Storage(err, "failed to check existing email")
	}

	user := models.User{Name: name, Email: email, PasswordHash: passwordHash}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to create user")
	}
	return &user, nil
}

// GetByEmail looks up an account by its unique email.
func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Storage(err, "failed to load user")
	}
	return &user, nil
}
