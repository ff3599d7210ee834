package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/devaforgestudios-afk/takneek/models"
	"github.com/devaforgestudios-afk/takneek/utils"
)

// StatsController reports simple marketplace totals plus today's page views.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// Overview returns aggregate counts for the operator dashboard.
func (s *StatsController) Overview(ctx *gin.Context) {
	var (
		users     int64
		artworks  int64
		posts     int64
		contacts  int64
		viewTotal int64
		likeTotal int64
	)

	s.db.Model(&models.User{}).Count(&users)
	s.db.Model(&models.Artwork{}).Where("status = ?", models.ArtworkStatusPublished).Count(&artworks)
	s.db.Model(&models.CommunityPost{}).Count(&posts)
	s.db.Model(&models.Contact{}).Count(&contacts)
	s.db.Model(&models.Artwork{}).Select("COALESCE(SUM(views), 0)").Scan(&viewTotal)
	s.db.Model(&models.Artwork{}).Select("COALESCE(SUM(likes), 0)").Scan(&likeTotal)

	// The recorder keys rows by local midnight
	now := time.Now().In(time.Local)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var todayViews []models.PageView
	s.db.Where("date = ?", today).Order("count DESC").Find(&todayViews)

	utils.Success(ctx, gin.H{
		"users":           users,
		"artworks":        artworks,
		"community_posts": posts,
		"contacts":        contacts,
		"total_views":     viewTotal,
		"total_likes":     likeTotal,
		"today":           today.Format("2006-01-02"),
		"page_views":      todayViews,
	})
}
