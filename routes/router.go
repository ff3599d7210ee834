package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/devaforgestudios-afk/takneek/ai"
	"github.com/devaforgestudios-afk/takneek/config"
	"github.com/devaforgestudios-afk/takneek/controllers"
	"github.com/devaforgestudios-afk/takneek/middleware"
	"github.com/devaforgestudios-afk/takneek/search"
	"github.com/devaforgestudios-afk/takneek/storage"
	"github.com/devaforgestudios-afk/takneek/store"
	"github.com/devaforgestudios-afk/takneek/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, st *store.Store, files storage.Store, brain *ai.Client, runner store.TaskRunner) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Record PV after each request
	r.Use(middleware.PageViewRecorder(db))

	r.Static("/static", "./static")

	r.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})
	r.GET("/marketplace", func(c *gin.Context) {
		c.File("./static/marketplace.html")
	})
	r.GET("/product/:id", func(c *gin.Context) {
		c.File("./static/product.html")
	})
	r.GET("/community", func(c *gin.Context) {
		c.File("./static/community.html")
	})

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	searchService := search.NewService(st.Artworks, st.Users)

	authController := controllers.NewAuthController(st.Users)
	artworkController := controllers.NewArtworkController(st.Artworks, st.Staged, files, brain)
	marketController := controllers.NewMarketplaceController(searchService, st.Artworks, runner)
	aiController := controllers.NewAIController(brain, files, st.Staged)
	communityController := controllers.NewCommunityController(st.Community, files)
	contactController := controllers.NewContactController(st.Contacts, brain, runner)
	statsController := controllers.NewStatsController(db)

	authGroup := r.Group("")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/signup", authController.Signup)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", authController.Logout)

	api := r.Group("/api")

	api.GET("/check-auth", middleware.OptionalAuth(), authController.CheckAuth)

	// Public marketplace surface
	api.GET("/products", marketController.Products)
	api.GET("/product/:id", marketController.ProductDetail)
	api.POST("/product/:id/like", marketController.Like)
	api.POST("/product/:id/feedback", artworkController.Feedback)
	api.GET("/ai-search", marketController.AISearch)
	api.POST("/ai-search", marketController.AISearch)
	api.GET("/generate-qr/:id", marketController.GenerateQR)
	api.GET("/community/posts", communityController.List)
	api.POST("/contact", middleware.RateLimitMiddleware(), contactController.Submit)
	api.GET("/stats", statsController.Overview)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.POST("/upload-artwork", artworkController.Upload)
	protected.GET("/my-artworks", artworkController.MyArtworks)
	protected.DELETE("/delete-artwork/:id", artworkController.Delete)
	protected.POST("/suggest-price", aiController.SuggestPrice)
	protected.POST("/generate-description", aiController.GenerateDescription)
	protected.POST("/enhance-image", aiController.EnhanceImage)
	protected.POST("/community/posts", communityController.Create)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		if strings.HasPrefix(path, "/static/") {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "static asset not found"})
			return
		}
		ctx.Status(http.StatusOK)
		ctx.File("./static/index.html")
	})

	return r
}
