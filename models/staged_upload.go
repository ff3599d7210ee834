package models

import "time"

// StagedUpload records a media file created before any artwork references it,
// such as an AI-enhanced image produced in the studio. The background sweeper
// deletes expired rows together with their files; claiming a file during
// artwork upload removes the row and keeps the file.
type StagedUpload struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserEmail string    `gorm:"size:255;index" json:"user_email"`
	FilePath  string    `gorm:"size:1024;not null" json:"file_path"` // relative path under the static root
	ExpireAt  time.Time `gorm:"index" json:"expire_at"`
	CreatedAt time.Time `json:"created_at"`
}
