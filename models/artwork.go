package models

import (
	"time"

	"gorm.io/datatypes"
)

// Artwork status values. Only published artworks are visible on the marketplace.
const (
	ArtworkStatusDraft     = "draft"
	ArtworkStatusPublished = "published"
)

// Artwork is a sellable listing: media files, metadata, and engagement counters.
// The ID is a time-derived string assigned at creation and never changes.
// Views and likes only ever increase; increments happen via single UPDATE
// statements so concurrent requests cannot lose counts.
type Artwork struct {
	ID          string                      `gorm:"primaryKey;size:32" json:"id"`
	UserEmail   string                      `gorm:"size:255;not null;index" json:"user_email"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Category    string                      `gorm:"size:64;not null" json:"category"`
	Material    string                      `gorm:"size:128;not null" json:"material"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Price       *float64                    `json:"price"`
	Files       datatypes.JSONSlice[string] `json:"files"`
	Status      string                      `gorm:"size:16;not null;default:'published';index" json:"status"`
	Views       int64                       `gorm:"not null;default:0" json:"views"`
	Likes       int64                       `gorm:"not null;default:0" json:"likes"`
	Feedback    datatypes.JSONSlice[string] `json:"feedback"`
	CreatedAt   time.Time                   `json:"created_at"`
}
