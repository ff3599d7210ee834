package store

import (
	"strings"

	"gorm.io/gorm"

	"github.com/devaforgestudios-afk/takneek/apperrors"
	"github.com/devaforgestudios-afk/takneek/models"
)

// ContactStore persists contact-form submissions that passed moderation.
type ContactStore struct {
	db *gorm.DB
}

// Create stores a submission.
func (s *ContactStore) Create(name, email, subject, message string) (*models.Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || subject == "" || message == "" {
		return nil, apperrors.Validation("all fields are required")
	}

	contact := models.Contact{Name: name, Email: email, Subject: subject, Message: message}
	if err := s.db.Create(&contact).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to save message")
	}
	return &contact, nil
}

// Count returns how many submissions are stored.
func (s *ContactStore) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.Contact{}).Count(&n).Error; err != nil {
		return 0, apperrors.Storage(err, "failed to count messages")
	}
	return n, nil
}
