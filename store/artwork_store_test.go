package store

import (
	"os"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devaforgestudios-afk/takneek/apperrors"
	"github.com/devaforgestudios-afk/takneek/models"
	"github.com/devaforgestudios-afk/takneek/storage"
)

func openTestStore(t *testing.T) (*Store, storage.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Artwork{},
		&models.CommunityPost{},
		&models.Contact{},
		&models.StagedUpload{},
	))

	files, err := storage.NewFileSystemStore(t.TempDir(), "uploads/artworks")
	require.NoError(t, err)

	return Open(db, files), files
}

func validArtwork(owner string) NewArtwork {
	return NewArtwork{
		Owner:       owner,
		Title:       "Terracotta Horse",
		Category:    "pottery",
		Material:    "terracotta",
		Description: "bankura style horse figure",
		Files:       []string{"uploads/artworks/horse.jpg"},
	}
}

func TestArtworkCreate(t *testing.T) {
	st, _ := openTestStore(t)

	t.Run("rejects missing fields", func(t *testing.T) {
		na := validArtwork("asha@example.com")
		na.Material = "  "
		_, err := st.Artworks.Create(na)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejects empty file list", func(t *testing.T) {
		na := validArtwork("asha@example.com")
		na.Files = nil
		_, err := st.Artworks.Create(na)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("publishes with zeroed counters", func(t *testing.T) {
		art, err := st.Artworks.Create(validArtwork("asha@example.com"))
		require.NoError(t, err)

		assert.Len(t, art.ID, 20)
		assert.Equal(t, models.ArtworkStatusPublished, art.Status)
		assert.Zero(t, art.Views)
		assert.Zero(t, art.Likes)
		assert.Empty(t, []string(art.Feedback))

		published, err := st.Artworks.GetPublished()
		require.NoError(t, err)
		assert.Len(t, published, 1)
	})

	t.Run("drafts never reach the feed", func(t *testing.T) {
		draft := models.Artwork{
			ID:        "20250101000000999999",
			UserEmail: "asha@example.com",
			Title:     "Unfinished",
			Category:  "pottery",
			Material:  "clay",
			Status:    models.ArtworkStatusDraft,
		}
		require.NoError(t, st.Artworks.db.Create(&draft).Error)

		published, err := st.Artworks.GetPublished()
		require.NoError(t, err)
		for _, art := range published {
			assert.Equal(t, models.ArtworkStatusPublished, art.Status)
		}
	})
}

func TestArtworkCounters(t *testing.T) {
	st, _ := openTestStore(t)
	art, err := st.Artworks.Create(validArtwork("asha@example.com"))
	require.NoError(t, err)

	t.Run("views are monotonic", func(t *testing.T) {
		require.NoError(t, st.Artworks.IncrementView(art.ID))
		require.NoError(t, st.Artworks.IncrementView(art.ID))

		got, err := st.Artworks.GetByID(art.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, got.Views)
	})

	t.Run("like returns the new count", func(t *testing.T) {
		likes, err := st.Artworks.IncrementLike(art.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, likes)

		likes, err = st.Artworks.IncrementLike(art.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, likes)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		err := st.Artworks.IncrementView("nope")
		assert.True(t, apperrors.IsNotFound(err))

		_, err = st.Artworks.IncrementLike("nope")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestArtworkDelete(t *testing.T) {
	st, files := openTestStore(t)

	rel, err := files.Save("horse.jpg", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)

	na := validArtwork("asha@example.com")
	na.Files = []string{rel}
	art, err := st.Artworks.Create(na)
	require.NoError(t, err)

	t.Run("only the owner may delete", func(t *testing.T) {
		err := st.Artworks.Delete(art.ID, "mallory@example.com")
		assert.True(t, apperrors.IsForbidden(err))

		_, err = st.Artworks.GetByID(art.ID)
		assert.NoError(t, err)
		_, statErr := os.Stat(files.AbsPath(rel))
		assert.NoError(t, statErr)
	})

	t.Run("owner delete removes record and files", func(t *testing.T) {
		require.NoError(t, st.Artworks.Delete(art.ID, "asha@example.com"))

		_, err := st.Artworks.GetByID(art.ID)
		assert.True(t, apperrors.IsNotFound(err))
		_, statErr := os.Stat(files.AbsPath(rel))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("second delete reports not found", func(t *testing.T) {
		err := st.Artworks.Delete(art.ID, "asha@example.com")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestArtworkFeedback(t *testing.T) {
	st, _ := openTestStore(t)
	art, err := st.Artworks.Create(validArtwork("asha@example.com"))
	require.NoError(t, err)

	require.NoError(t, st.Artworks.AppendFeedback(art.ID, "beautiful finish"))
	require.NoError(t, st.Artworks.AppendFeedback(art.ID, "arrived intact"))

	got, err := st.Artworks.GetByID(art.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"beautiful finish", "arrived intact"}, []string(got.Feedback))

	err = st.Artworks.AppendFeedback("nope", "lost review")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestArtworkOwnership(t *testing.T) {
	st, _ := openTestStore(t)

	_, err := st.Artworks.Create(validArtwork("asha@example.com"))
	require.NoError(t, err)
	second := validArtwork("ravi@example.com")
	second.Title = "Silk Stole"
	_, err = st.Artworks.Create(second)
	require.NoError(t, err)

	mine, err := st.Artworks.GetByOwner("asha@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Terracotta Horse", mine[0].Title)
}
