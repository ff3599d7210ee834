package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/devaforgestudios-afk/takneek/apperrors"
	"github.com/devaforgestudios-afk/takneek/models"
	"github.com/devaforgestudios-afk/takneek/storage"
	"github.com/devaforgestudios-afk/takneek/utils"
)

// StagedUploadStore tracks media files created before any artwork references
// them, so abandoned ones can be reclaimed.
type StagedUploadStore struct {
	db    *gorm.DB
	files storage.Store
}

// Stage records a file with an expiry.
func (s *StagedUploadStore) Stage(owner, relPath string, ttl time.Duration) error {
	row := models.StagedUpload{
		UserEmail: owner,
		FilePath:  relPath,
		ExpireAt:  time.Now().Add(ttl),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return apperrors.Storage(err, "failed to stage upload")
	}
	return nil
}

// Claim drops the staged rows for files that are now owned by an artwork.
func (s *StagedUploadStore) Claim(relPaths []string) {
	if len(relPaths) == 0 {
		return
	}
	if err := s.db.Where("file_path IN ?", relPaths).Delete(&models.StagedUpload{}).Error; err != nil && utils.Sugar != nil {
		utils.Sugar.Warnf("claiming staged uploads failed: %v", err)
	}
}

// SweepExpired deletes up to limit expired staged files from disk and their
// rows. Returns how many rows were processed.
func (s *StagedUploadStore) SweepExpired(limit int) (int, error) {
	var rows []models.StagedUpload
	if err := s.db.Where("expire_at <= ?", time.Now()).Limit(limit).Find(&rows).Error; err != nil {
		return 0, apperrors.Storage(err, "failed to query expired uploads")
	}
	for _, row := range rows {
		if err := s.files.Delete(row.FilePath); err != nil && utils.Sugar != nil {
			utils.Sugar.Warnf("sweeping staged upload %s failed: %v", row.FilePath, err)
		}
		// Remove the row regardless of file deletion outcome
		if err := s.db.Delete(&models.StagedUpload{}, row.ID).Error; err != nil && utils.Sugar != nil {
			utils.Sugar.Warnf("deleting staged upload row %d failed: %v", row.ID, err)
		}
	}
	return len(rows), nil
}
