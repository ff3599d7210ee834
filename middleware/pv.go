package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devaforgestudios-afk/takneek/models"
)

// marketplacePaths are the browse endpoints worth counting as traffic.
// Mutations, auth, and static assets would only skew the numbers.
var marketplacePaths = []string{
	"/api/products",
	"/api/product/",
	"/api/ai-search",
	"/api/community/posts",
}

// PageViewRecorder aggregates daily marketplace traffic per path, feeding the
// public stats endpoint. Failures are ignored; this is analytics, not data.
func PageViewRecorder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		path := c.Request.URL.Path
		tracked := false
		for _, p := range marketplacePaths {
			if path == p || (strings.HasSuffix(p, "/") && strings.HasPrefix(path, p)) {
				tracked = true
				break
			}
		}
		if !tracked {
			return
		}
		// Collapse product detail pages into one bucket
		if strings.HasPrefix(path, "/api/product/") {
			path = "/api/product/:id"
		}

		// Use local midnight to align with the DATE column
		now := time.Now().In(time.Local)
		localMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		// Atomic upsert to avoid duplicate key errors under concurrency
		_ = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "path"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1"), "updated_at": time.Now()}),
		}).Create(&models.PageView{Date: localMidnight, Path: path, Count: 1}).Error
	}
}
