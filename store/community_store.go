package store

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/devaforgestudios-afk/takneek/apperrors"
	"github.com/devaforgestudios-afk/takneek/models"
)

// CommunityStore manages the append-only community feed.
type CommunityStore struct {
	db *gorm.DB
}

// Create appends a post to the feed. Image is optional.
func (s *CommunityStore) Create(owner, description, image string) (*models.CommunityPost, error) {
	owner = strings.TrimSpace(owner)
	description = strings.TrimSpace(description)
	if owner == "" || description == "" {
		return nil, apperrors.Validation("description is required")
	}

	post := models.CommunityPost{
		ID:          newArtworkID(time.Now()),
		UserEmail:   owner,
		Description: description,
		Image:       image,
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to create post")
	}
	return &post, nil
}

// List returns community posts, newest first.
func (s *CommunityStore) List() ([]models.CommunityPost, error) {
	var posts []models.CommunityPost
	if err := s.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to list posts")
	}
	return posts, nil
}
