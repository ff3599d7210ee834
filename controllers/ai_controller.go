package controllers

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devaforgestudios-afk/takneek/ai"
	"github.com/devaforgestudios-afk/takneek/apperrors"
	"github.com/devaforgestudios-afk/takneek/config"
	"github.com/devaforgestudios-afk/takneek/middleware"
	"github.com/devaforgestudios-afk/takneek/storage"
	"github.com/devaforgestudios-afk/takneek/store"
	"github.com/devaforgestudios-afk/takneek/utils"
)

// AIController exposes the generative helpers artisans use while drafting a
// listing: price suggestion, description writing, and image enhancement.
type AIController struct {
	brain  *ai.Client
	files  storage.Store
	staged *store.StagedUploadStore
}

// NewAIController creates a new AIController instance.
func NewAIController(brain *ai.Client, files storage.Store, staged *store.StagedUploadStore) *AIController {
	return &AIController{brain: brain, files: files, staged: staged}
}

// saveFormImage persists the "image" form file and returns its relative path.
func (a *AIController) saveFormImage(ctx *gin.Context) (string, error) {
	fh, err := ctx.FormFile("image")
	if err != nil {
		return "", apperrors.Validation("an image is required")
	}
	if !isAllowedFile(fh.Filename) {
		return "", apperrors.Validation("file type not allowed: " + fh.Filename)
	}
	src, err := fh.Open()
	if err != nil {
		return "", apperrors.Validation("unable to read uploaded image")
	}
	defer src.Close()

	rel, err := a.files.Save(fh.Filename, src)
	if err != nil {
		return "", apperrors.Storage(err, "failed to store image")
	}
	return rel, nil
}

// SuggestPrice asks the model for a fair price for the uploaded image.
func (a *AIController) SuggestPrice(ctx *gin.Context) {
	rel, err := a.saveFormImage(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	details := ai.Details(
		ctx.PostForm("title"),
		ctx.PostForm("category"),
		ctx.PostForm("material"),
		ctx.PostForm("description"),
	)

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 30*time.Second)
	defer cancel()

	text, err := a.brain.SuggestPrice(cctx, a.files.AbsPath(rel), details)
	if err != nil {
		respondError(ctx, apperrors.Upstream(err, "price suggestion unavailable"))
		return
	}

	resp := gin.H{"suggestion": text}
	if v, perr := ai.ParsePrice(text); perr == nil {
		resp["price"] = v
	}
	utils.Success(ctx, resp)
}

// GenerateDescription writes or polishes a listing description from the
// uploaded image plus whatever fields the artisan filled in.
func (a *AIController) GenerateDescription(ctx *gin.Context) {
	rel, err := a.saveFormImage(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 30*time.Second)
	defer cancel()

	text, err := a.brain.GenerateDescription(
		cctx,
		a.files.AbsPath(rel),
		ctx.PostForm("title"),
		ctx.PostForm("category"),
		ctx.PostForm("material"),
		ctx.PostForm("description"),
	)
	if err != nil {
		respondError(ctx, apperrors.Upstream(err, "description generation unavailable"))
		return
	}

	utils.Success(ctx, gin.H{"description": strings.TrimSpace(text)})
}

// EnhanceImage runs the uploaded image through the image model and stages
// the result on disk. The staged path is adopted by a later artwork upload
// or swept after its TTL.
func (a *AIController) EnhanceImage(ctx *gin.Context) {
	owner, _ := middleware.CurrentUser(ctx)

	rel, err := a.saveFormImage(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	prompt := strings.TrimSpace(ctx.PostForm("prompt"))

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 90*time.Second)
	defer cancel()

	enhanced, err := a.brain.EnhanceImage(cctx, a.files.AbsPath(rel), prompt)
	if err != nil {
		respondError(ctx, apperrors.Upstream(err, "image enhancement unavailable"))
		return
	}

	enhancedRel := rel
	if len(enhanced.Data) > 0 {
		enhancedRel, err = a.files.Save("enhanced.png", bytes.NewReader(enhanced.Data))
		if err != nil {
			respondError(ctx, apperrors.Storage(err, "failed to store enhanced image"))
			return
		}
	}

	ttl := time.Duration(config.Get().StagedUploadTTLMinutes) * time.Minute
	if err := a.staged.Stage(owner, enhancedRel, ttl); err != nil {
		utils.Sugar.Warnw("failed to stage enhanced upload", "owner", owner, "error", err)
	}

	utils.Success(ctx, gin.H{
		"enhanced_image": "/static/" + enhancedRel,
		"staged_file":    enhancedRel,
		"source_url":     enhanced.URL,
	})
}
