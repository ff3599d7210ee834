// Package search scores and ranks published artworks for the marketplace and
// renders the listing projections the frontend consumes.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/devaforgestudios-afk/takneek/models"
)

// Additive relevance weights per matched field. A field contributes once no
// matter how often the query occurs inside it.
const (
	weightTitle       = 3
	weightCategory    = 2
	weightMaterial    = 2
	weightDescription = 1
)

// CategoryAll disables category pre-filtering.
const CategoryAll = "all"

// PlaceholderImage is shown for artworks without media files.
const PlaceholderImage = "https://via.placeholder.com/400x280/f9fafb/9ca3af?text=No+Image"

// ArtworkSource supplies the published artworks to rank, in storage order.
type ArtworkSource interface {
	GetPublished() ([]models.Artwork, error)
}

// ArtistResolver resolves the owning account for display enrichment.
type ArtistResolver interface {
	GetByEmail(email string) (*models.User, error)
}

// Result is the presentational projection of an artwork: ranking score plus
// artist and image fields resolved for display. Enrichment is pure projection
// and takes no part in ranking.
type Result struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Artist      string    `json:"artist"`
	ArtistEmail string    `json:"artist_email"`
	Category    string    `json:"category"`
	Material    string    `json:"material"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Images      []string  `json:"images"`
	Location    string    `json:"location"`
	Rating      float64   `json:"rating"`
	Reviews     int64     `json:"reviews"`
	Authentic   bool      `json:"authentic"`
	CreatedAt   time.Time `json:"created_at"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Score       int       `json:"score,omitempty"`
}

// Service ranks and projects artworks. It holds no state beyond its sources.
type Service struct {
	artworks ArtworkSource
	artists  ArtistResolver
}

// NewService builds a search service over the given sources.
func NewService(artworks ArtworkSource, artists ArtistResolver) *Service {
	return &Service{artworks: artworks, artists: artists}
}

// Search ranks published artworks against a free-text query. An empty query
// yields an empty result. Unless category is "all", artworks are pre-filtered
// by exact case-insensitive category match. Zero-score artworks are dropped;
// the sort is descending by score and stable, so ties keep storage order.
func (s *Service) Search(query, category string) ([]Result, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Result{}, nil
	}
	if category == "" {
		category = CategoryAll
	}

	artworks, err := s.artworks.GetPublished()
	if err != nil {
		return nil, err
	}

	type scored struct {
		art   models.Artwork
		score int
	}
	matches := make([]scored, 0, len(artworks))
	for _, art := range artworks {
		if !strings.EqualFold(category, CategoryAll) && !strings.EqualFold(art.Category, category) {
			continue
		}
		if score := Score(art, query); score > 0 {
			matches = append(matches, scored{art: art, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		r := s.project(m.art)
		r.Score = m.score
		results = append(results, r)
	}
	return results, nil
}

// Listing renders the plain marketplace feed: every published artwork in
// storage order, projected for display.
func (s *Service) Listing() ([]Result, error) {
	artworks, err := s.artworks.GetPublished()
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(artworks))
	for _, art := range artworks {
		results = append(results, s.project(art))
	}
	return results, nil
}

// Project exposes the display projection for a single artwork, used by the
// detail endpoint.
func (s *Service) Project(art models.Artwork) Result {
	return s.project(art)
}

// Score sums the field weights for every field containing the lowercase query
// as a substring. Exported for the ranking tests.
func Score(art models.Artwork, loweredQuery string) int {
	score := 0
	if strings.Contains(strings.ToLower(art.Title), loweredQuery) {
		score += weightTitle
	}
	if strings.Contains(strings.ToLower(art.Category), loweredQuery) {
		score += weightCategory
	}
	if strings.Contains(strings.ToLower(art.Material), loweredQuery) {
		score += weightMaterial
	}
	if strings.Contains(strings.ToLower(art.Description), loweredQuery) {
		score += weightDescription
	}
	return score
}

func (s *Service) project(art models.Artwork) Result {
	artist := "Anonymous Artisan"
	location := "India"
	if user, err := s.artists.GetByEmail(art.UserEmail); err == nil {
		artist = user.Name
		if user.Location != "" {
			location = user.Location
		}
	}

	price := 0.0
	if art.Price != nil {
		price = *art.Price
	}

	image := PlaceholderImage
	images := make([]string, 0, len(art.Files))
	for _, f := range art.Files {
		images = append(images, "/static/"+f)
	}
	if len(images) > 0 {
		image = images[0]
	}

	return Result{
		ID:          art.ID,
		Name:        art.Title,
		Artist:      artist,
		ArtistEmail: art.UserEmail,
		Category:    art.Category,
		Material:    art.Material,
		Description: art.Description,
		Price:       price,
		Image:       image,
		Images:      images,
		Location:    location,
		Rating:      4.5,
		Reviews:     art.Views,
		Authentic:   true,
		CreatedAt:   art.CreatedAt,
		Views:       art.Views,
		Likes:       art.Likes,
	}
}
