package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/devaforgestudios-afk/takneek/config"
	"github.com/devaforgestudios-afk/takneek/search"
	"github.com/devaforgestudios-afk/takneek/store"
	"github.com/devaforgestudios-afk/takneek/utils"
)

const productsCacheTTL = 60 * time.Second

// MarketplaceController serves the public buyer surface: the feed, product
// detail, likes, QR codes, and weighted search.
type MarketplaceController struct {
	search   *search.Service
	artworks *store.ArtworkStore
	runner   store.TaskRunner
}

// NewMarketplaceController creates a new MarketplaceController instance.
func NewMarketplaceController(svc *search.Service, artworks *store.ArtworkStore, runner store.TaskRunner) *MarketplaceController {
	return &MarketplaceController{search: svc, artworks: artworks, runner: runner}
}

// Products returns every published artwork projected into marketplace cards.
// The feed is cached briefly since it backs the landing page.
func (m *MarketplaceController) Products(ctx *gin.Context) {
	cacheKey := productsCachePrefix + ":all"
	if raw, ok := utils.CacheGetBytes(cacheKey); ok {
		var cached []search.Result
		if json.Unmarshal(raw, &cached) == nil {
			utils.Success(ctx, gin.H{"products": cached, "count": len(cached)})
			return
		}
	}

	results, err := m.search.Listing()
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.CacheSetJSON(cacheKey, results, productsCacheTTL)
	utils.Success(ctx, gin.H{"products": results, "count": len(results)})
}

// ProductDetail returns one artwork and records the view off the request
// path. A full queue just means the view is not counted.
func (m *MarketplaceController) ProductDetail(ctx *gin.Context) {
	id := ctx.Param("id")

	art, err := m.artworks.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if !m.runner.Submit(func() {
		if err := m.artworks.IncrementView(id); err != nil {
			utils.Sugar.Warnw("view increment failed", "artwork", id, "error", err)
		}
	}) {
		utils.Sugar.Warnw("view queue full, dropping increment", "artwork", id)
	}

	utils.Success(ctx, gin.H{"product": m.search.Project(*art)})
}

// Like increments the like counter and returns the new count.
func (m *MarketplaceController) Like(ctx *gin.Context) {
	id := ctx.Param("id")

	likes, err := m.artworks.IncrementLike(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(productsCachePrefix)
	utils.Success(ctx, gin.H{"likes": likes, "message": "Liked"})
}

// GenerateQR renders a PNG QR code pointing at the product's public page.
func (m *MarketplaceController) GenerateQR(ctx *gin.Context) {
	id := ctx.Param("id")

	if _, err := m.artworks.GetByID(id); err != nil {
		respondError(ctx, err)
		return
	}

	link := fmt.Sprintf("%s/product/%s", config.Get().SiteBaseURL, url.PathEscape(id))
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50008, "failed to generate QR code")
		return
	}

	ctx.Header("Cache-Control", "public, max-age=86400")
	ctx.Data(http.StatusOK, "image/png", png)
}

// AISearch runs the weighted keyword search over published artworks. Accepts
// either query parameters or a JSON body, since both frontends exist.
func (m *MarketplaceController) AISearch(ctx *gin.Context) {
	req := struct {
		Query    string `json:"query"`
		Category string `json:"category"`
	}{
		Query:    ctx.Query("query"),
		Category: ctx.Query("category"),
	}
	if req.Query == "" && ctx.Request.Method == http.MethodPost {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
			return
		}
	}

	results, err := m.search.Search(req.Query, req.Category)
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"results": results, "count": len(results), "query": req.Query})
}
