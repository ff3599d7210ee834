package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/devaforgestudios-afk/takneek/apperrors"
	"github.com/devaforgestudios-afk/takneek/models"
)

type stubSource struct {
	arts []models.Artwork
}

func (s *stubSource) GetPublished() ([]models.Artwork, error) {
	return s.arts, nil
}

type stubResolver struct {
	users map[string]*models.User
}

func (r *stubResolver) GetByEmail(email string) (*models.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func ptr(v float64) *float64 { return &v }

func fixtureService() *Service {
	arts := []models.Artwork{
		{
			ID:          "20250101000000000001",
			UserEmail:   "asha@example.com",
			Title:       "Golden Vase",
			Category:    "pottery",
			Material:    "clay",
			Description: "hand painted vase with gold trim",
			Price:       ptr(1200),
			Files:       datatypes.JSONSlice[string]{"uploads/artworks/vase.jpg"},
			Status:      models.ArtworkStatusPublished,
			CreatedAt:   time.Now(),
		},
		{
			ID:        "20250101000000000002",
			UserEmail: "ravi@example.com",
			Title:     "Silk Scarf",
			Category:  "textile",
			Material:  "gold thread silk",
			Price:     ptr(800),
			Status:    models.ArtworkStatusPublished,
			CreatedAt: time.Now(),
		},
		{
			ID:        "20250101000000000003",
			UserEmail: "ravi@example.com",
			Title:     "Clay Lamp",
			Category:  "pottery",
			Material:  "clay",
			Status:    models.ArtworkStatusPublished,
			CreatedAt: time.Now(),
		},
	}
	users := map[string]*models.User{
		"asha@example.com": {Name: "Asha", Email: "asha@example.com", Location: "Jaipur"},
	}
	return NewService(&stubSource{arts: arts}, &stubResolver{users: users})
}

func TestSearch(t *testing.T) {
	svc := fixtureService()

	t.Run("empty query yields no results", func(t *testing.T) {
		results, err := svc.Search("   ", "all")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("title outranks material", func(t *testing.T) {
		// "gold" hits the first artwork's title (weight 3) and the second's
		// material (weight 2)
		results, err := svc.Search("gold", "all")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Golden Vase", results[0].Name)
		assert.Equal(t, "Silk Scarf", results[1].Name)
		assert.Greater(t, results[0].Score, results[1].Score)
	})

	t.Run("zero score artworks are dropped", func(t *testing.T) {
		results, err := svc.Search("gold", "all")
		require.NoError(t, err)
		for _, r := range results {
			assert.NotEqual(t, "Clay Lamp", r.Name)
		}
	})

	t.Run("category filter is exact and case-insensitive", func(t *testing.T) {
		results, err := svc.Search("clay", "Pottery")
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, r := range results {
			assert.Equal(t, "pottery", r.Category)
		}

		results, err = svc.Search("clay", "textile")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("ties keep storage order", func(t *testing.T) {
		// "pottery" only hits the category field, so both pottery artworks
		// score the same and keep id order
		results, err := svc.Search("pottery", "all")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, results[0].Score, results[1].Score)
		assert.Equal(t, "20250101000000000001", results[0].ID)
		assert.Equal(t, "20250101000000000003", results[1].ID)
	})
}

func TestScore(t *testing.T) {
	art := models.Artwork{
		Title:       "Brass Diya",
		Category:    "metalwork",
		Material:    "brass",
		Description: "festival brass lamp",
	}

	assert.Equal(t, 0, Score(art, "pottery"))
	// title + material + description
	assert.Equal(t, 3+2+1, Score(art, "brass"))
	assert.Equal(t, 2, Score(art, "metalwork"))
	assert.Equal(t, 1, Score(art, "festival"))
}

func TestProjection(t *testing.T) {
	svc := fixtureService()

	t.Run("resolved artist and prefixed images", func(t *testing.T) {
		results, err := svc.Listing()
		require.NoError(t, err)
		require.NotEmpty(t, results)

		vase := results[0]
		assert.Equal(t, "Asha", vase.Artist)
		assert.Equal(t, "Jaipur", vase.Location)
		assert.Equal(t, "/static/uploads/artworks/vase.jpg", vase.Image)
		assert.Equal(t, 1200.0, vase.Price)
		assert.Zero(t, vase.Score)
	})

	t.Run("defaults for unknown artist and missing image", func(t *testing.T) {
		results, err := svc.Listing()
		require.NoError(t, err)
		require.Len(t, results, 3)

		scarf := results[1]
		assert.Equal(t, "Anonymous Artisan", scarf.Artist)
		assert.Equal(t, "India", scarf.Location)
		assert.Equal(t, PlaceholderImage, scarf.Image)
	})
}
