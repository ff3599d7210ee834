package models

import "time"

// CommunityPost is an append-only post on the community feed, owned by the
// author's email for its lifetime.
type CommunityPost struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	UserEmail   string    `gorm:"size:255;not null;index" json:"user_email"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Image       string    `gorm:"size:1024" json:"image"`
	CreatedAt   time.Time `json:"timestamp"`
}
