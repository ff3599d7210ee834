package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devaforgestudios-afk/takneek/apperrors"
	"github.com/devaforgestudios-afk/takneek/models"
	"github.com/devaforgestudios-afk/takneek/storage"
	"github.com/devaforgestudios-afk/takneek/utils"
)

// ArtworkStore manages artwork records and their media files.
type ArtworkStore struct {
	db    *gorm.DB
	files storage.Store
}

// NewArtwork carries the validated-at-the-boundary input for Create.
type NewArtwork struct {
	Owner       string
	Title       string
	Category    string
	Material    string
	Description string
	Price       *float64
	Files       []string
}

// Create persists a new published artwork with zeroed counters. Every text
// field and at least one file are required.
func (s *ArtworkStore) Create(na NewArtwork) (*models.Artwork, error) {
	na.Owner = strings.TrimSpace(na.Owner)
	na.Title = strings.TrimSpace(na.Title)
	na.Category = strings.TrimSpace(na.Category)
	na.Material = strings.TrimSpace(na.Material)
	na.Description = strings.TrimSpace(na.Description)

	if na.Owner == "" || na.Title == "" || na.Category == "" || na.Material == "" || na.Description == "" {
		return nil, apperrors.Validation("all fields are required")
	}
	if len(na.Files) == 0 {
		return nil, apperrors.Validation("at least one file is required")
	}

	art := models.Artwork{
		ID:          newArtworkID(time.Now()),
		UserEmail:   na.Owner,
		Title:       na.Title,
		Category:    na.Category,
		Material:    na.Material,
		Description: na.Description,
		Price:       na.Price,
		Files:       datatypes.NewJSONSlice(na.Files),
		Status:      models.ArtworkStatusPublished,
		Feedback:    datatypes.NewJSONSlice([]string{}),
		CreatedAt:   time.Now(),
	}

	if err := s.db.Create(&art).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to create artwork")
	}
	return &art, nil
}

// GetPublished returns every published artwork in storage (primary key) order.
// The search scorer relies on this order for stable tie-breaking.
func (s *ArtworkStore) GetPublished() ([]models.Artwork, error) {
	var artworks []models.Artwork
	if err := s.db.Where("status = ?", models.ArtworkStatusPublished).Order("id").Find(&artworks).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to list published artworks")
	}
	return artworks, nil
}

// GetByOwner returns all artworks belonging to owner, newest first.
func (s *ArtworkStore) GetByOwner(owner string) ([]models.Artwork, error) {
	var artworks []models.Artwork
	if err := s.db.Where("user_email = ?", owner).Order("created_at DESC").Find(&artworks).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to list artworks")
	}
	return artworks, nil
}

// GetByID returns a single artwork regardless of status.
func (s *ArtworkStore) GetByID(id string) (*models.Artwork, error) {
	var art models.Artwork
	if err := s.db.Where("id = ?", id).First(&art).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("artwork not found")
		}
		return nil, apperrors.Storage(err, "failed to load artwork")
	}
	return &art, nil
}

// IncrementView bumps the view counter by one. A single UPDATE keeps the
// counter correct under concurrent requests; an unknown id is reported so the
// caller can log it, never to abort a response.
func (s *ArtworkStore) IncrementView(id string) error {
	res := s.db.Model(&models.Artwork{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return apperrors.Storage(res.Error, "failed to record view")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("artwork not found")
	}
	return nil
}

// IncrementLike bumps the like counter by one and returns the new count.
func (s *ArtworkStore) IncrementLike(id string) (int64, error) {
	res := s.db.Model(&models.Artwork{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return 0, apperrors.Storage(res.Error, "failed to record like")
	}
	if res.RowsAffected == 0 {
		return 0, apperrors.NotFound("artwork not found")
	}

	var likes int64
	if err := s.db.Model(&models.Artwork{}).Where("id = ?", id).Select("likes").Scan(&likes).Error; err != nil {
		return 0, apperrors.Storage(err, "failed to read like count")
	}
	return likes, nil
}

// Delete removes an artwork and every media file it references. Only the
// owner may delete; the record and its files are untouched otherwise.
func (s *ArtworkStore) Delete(id, owner string) error {
	art, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if art.UserEmail != owner {
		return apperrors.Forbidden("you can only delete your own artworks")
	}

	if err := s.db.Delete(&models.Artwork{}, "id = ?", id).Error; err != nil {
		return apperrors.Storage(err, "failed to delete artwork")
	}

	// File cleanup is best-effort once the record is gone.
	for _, f := range art.Files {
		if err := s.files.Delete(f); err != nil && utils.Sugar != nil {
			utils.Sugar.Warnf("artwork %s: removing file %s failed: %v", id, f, err)
		}
	}
	return nil
}

// AppendFeedback appends a feedback entry to the artwork. Moderation happens
// upstream; this is pure persistence.
func (s *ArtworkStore) AppendFeedback(id, text string) error {
	art, err := s.GetByID(id)
	if err != nil {
		return err
	}
	feedback := append([]string(art.Feedback), text)
	if err := s.db.Model(&models.Artwork{}).Where("id = ?", id).
		Update("feedback", datatypes.NewJSONSlice(feedback)).Error; err != nil {
		return apperrors.Storage(err, "failed to save feedback")
	}
	return nil
}

// newArtworkID derives the immutable artwork identifier from the creation
// time: seconds precision plus microseconds, unique in practice and sortable.
func newArtworkID(t time.Time) string {
	return t.Format("20060102150405") + fmt.Sprintf("%06d", t.Nanosecond()/1000)
}
