package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devaforgestudios-afk/takneek/apperrors"
	"github.com/devaforgestudios-afk/takneek/middleware"
	"github.com/devaforgestudios-afk/takneek/storage"
	"github.com/devaforgestudios-afk/takneek/store"
	"github.com/devaforgestudios-afk/takneek/utils"
)

// CommunityController serves the artisan community wall.
type CommunityController struct {
	posts *store.CommunityStore
	files storage.Store
}

// NewCommunityController creates a new CommunityController instance.
func NewCommunityController(posts *store.CommunityStore, files storage.Store) *CommunityController {
	return &CommunityController{posts: posts, files: files}
}

// List returns all community posts, newest first. Public endpoint.
func (c *CommunityController) List(ctx *gin.Context) {
	posts, err := c.posts.List()
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"posts": posts, "count": len(posts)})
}

// Create publishes a post with a description and an optional image.
func (c *CommunityController) Create(ctx *gin.Context) {
	owner, _ := middleware.CurrentUser(ctx)

	description := utils.Sanitize(strings.TrimSpace(ctx.PostForm("description")))
	if description == "" {
		utils.Error(ctx, http.StatusBadRequest, 40001, "description is required")
		return
	}

	var image string
	if fh, err := ctx.FormFile("image"); err == nil {
		if !isAllowedFile(fh.Filename) {
			utils.Error(ctx, http.StatusBadRequest, 40006, "file type not allowed: "+fh.Filename)
			return
		}
		src, err := fh.Open()
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40007, "unable to read uploaded image")
			return
		}
		rel, err := c.files.Save(fh.Filename, src)
		src.Close()
		if err != nil {
			respondError(ctx, apperrors.Storage(err, "failed to store image"))
			return
		}
		image = "/static/" + rel
	}

	post, err := c.posts.Create(owner, description, image)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "Post created", "post": post})
}
