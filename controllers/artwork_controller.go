package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devaforgestudios-afk/takneek/ai"
	"github.com/devaforgestudios-afk/takneek/apperrors"
	"github.com/devaforgestudios-afk/takneek/middleware"
	"github.com/devaforgestudios-afk/takneek/storage"
	"github.com/devaforgestudios-afk/takneek/store"
	"github.com/devaforgestudios-afk/takneek/utils"
)

const productsCachePrefix = "cache:products"

// ArtworkController manages the owner side of listings: upload, the
// "my artworks" studio view, deletion, and buyer feedback.
type ArtworkController struct {
	artworks *store.ArtworkStore
	staged   *store.StagedUploadStore
	files    storage.Store
	brain    *ai.Client
}

// NewArtworkController creates a new ArtworkController instance.
func NewArtworkController(artworks *store.ArtworkStore, staged *store.StagedUploadStore, files storage.Store, brain *ai.Client) *ArtworkController {
	return &ArtworkController{artworks: artworks, staged: staged, files: files, brain: brain}
}

// Upload publishes a new artwork from a multipart form. Files may be fresh
// uploads or paths of AI-enhanced images staged earlier in the session.
func (a *ArtworkController) Upload(ctx *gin.Context) {
	owner, _ := middleware.CurrentUser(ctx)

	form, err := ctx.MultipartForm()
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid multipart form")
		return
	}

	title := strings.TrimSpace(ctx.PostForm("title"))
	category := strings.TrimSpace(ctx.PostForm("category"))
	material := strings.TrimSpace(ctx.PostForm("material"))
	description := utils.Sanitize(strings.TrimSpace(ctx.PostForm("description")))

	// Validate everything before the first disk write, so a rejected upload
	// leaves no orphaned media behind.
	if title == "" || category == "" || material == "" || description == "" {
		utils.Error(ctx, http.StatusBadRequest, 40001, "title, category, material and description are required")
		return
	}
	for _, fh := range form.File["files"] {
		if !isAllowedFile(fh.Filename) {
			utils.Error(ctx, http.StatusBadRequest, 40006, "file type not allowed: "+fh.Filename)
			return
		}
	}

	var saved []string
	discardSaved := func() {
		for _, rel := range saved {
			if err := a.files.Delete(rel); err != nil {
				utils.Sugar.Warnw("failed to remove file of rejected upload", "path", rel, "error", err)
			}
		}
	}
	for _, fh := range form.File["files"] {
		src, err := fh.Open()
		if err != nil {
			discardSaved()
			utils.Error(ctx, http.StatusBadRequest, 40007, "unable to read uploaded file")
			return
		}
		rel, err := a.files.Save(fh.Filename, src)
		src.Close()
		if err != nil {
			discardSaved()
			respondError(ctx, apperrors.Storage(err, "failed to store uploaded file"))
			return
		}
		saved = append(saved, rel)
	}

	// Enhanced images were written to disk before the artwork existed; they
	// join the file list here and are claimed once the record commits.
	filePaths := saved
	staged := form.Value["staged_files"]
	for _, rel := range staged {
		rel = strings.TrimSpace(rel)
		if rel != "" {
			filePaths = append(filePaths, rel)
		}
	}

	price := a.resolvePrice(ctx, filePaths, title, category, material, description)

	art, err := a.artworks.Create(store.NewArtwork{
		Owner:       owner,
		Title:       title,
		Category:    category,
		Material:    material,
		Description: description,
		Price:       price,
		Files:       filePaths,
	})
	if err != nil {
		// Staged files stay staged, so the sweeper still reclaims them.
		discardSaved()
		respondError(ctx, err)
		return
	}
	if len(staged) > 0 {
		a.staged.Claim(staged)
	}

	utils.InvalidateByPrefix(productsCachePrefix)
	utils.Success(ctx, gin.H{"message": "Artwork uploaded successfully", "artwork": art})
}

// resolvePrice uses the submitted price when present, otherwise asks the
// model for a suggestion based on the first image. A nil return means the
// listing goes up without a price.
func (a *ArtworkController) resolvePrice(ctx *gin.Context, filePaths []string, title, category, material, description string) *float64 {
	if raw := strings.TrimSpace(ctx.PostForm("price")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			return &v
		}
	}
	if a.brain == nil || len(filePaths) == 0 {
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 20*time.Second)
	defer cancel()

	text, err := a.brain.SuggestPrice(cctx, a.files.AbsPath(filePaths[0]), ai.Details(title, category, material, description))
	if err != nil {
		utils.Sugar.Warnw("price suggestion failed", "title", title, "error", err)
		return nil
	}
	v, err := ai.ParsePrice(text)
	if err != nil {
		utils.Sugar.Warnw("unparseable price suggestion", "text", text)
		return nil
	}
	return &v
}

// MyArtworks lists the authenticated user's listings, newest first.
func (a *ArtworkController) MyArtworks(ctx *gin.Context) {
	owner, _ := middleware.CurrentUser(ctx)
	arts, err := a.artworks.GetByOwner(owner)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"artworks": arts, "count": len(arts)})
}

// Delete removes one of the caller's listings along with its files.
func (a *ArtworkController) Delete(ctx *gin.Context) {
	owner, _ := middleware.CurrentUser(ctx)
	id := ctx.Param("id")

	if err := a.artworks.Delete(id, owner); err != nil {
		respondError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(productsCachePrefix)
	utils.Success(ctx, gin.H{"message": "Artwork deleted successfully"})
}

// Feedback appends a buyer review after it passes moderation. Reviews are
// rejected when moderation cannot run.
func (a *ArtworkController) Feedback(ctx *gin.Context) {
	var req struct {
		Review string `json:"review" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "review text is required")
		return
	}

	review := utils.Sanitize(strings.TrimSpace(req.Review))
	if review == "" {
		utils.Error(ctx, http.StatusBadRequest, 40001, "review text is required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 15*time.Second)
	defer cancel()
	if a.brain == nil || a.brain.ModerateReview(cctx, review) != ai.VerdictGood {
		utils.Error(ctx, http.StatusBadRequest, 40010, "review rejected by moderation")
		return
	}

	if err := a.artworks.AppendFeedback(ctx.Param("id"), review); err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "Feedback added"})
}
