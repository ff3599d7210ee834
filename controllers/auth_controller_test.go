package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devaforgestudios-afk/takneek/middleware"
	"github.com/devaforgestudios-afk/takneek/models"
	"github.com/devaforgestudios-afk/takneek/storage"
	"github.com/devaforgestudios-afk/takneek/store"
	"github.com/devaforgestudios-afk/takneek/utils"
)

// inlineRunner runs tasks synchronously so tests can assert on their effects.
type inlineRunner struct{}

func (inlineRunner) Submit(task func()) bool { task(); return true }
func (inlineRunner) Close()                  {}

type testEnv struct {
	store *store.Store
	files storage.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	if utils.Sugar == nil {
		utils.Sugar = zap.NewNop().Sugar()
	}

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

	return &testEnv{store: store.Open(db, files), files: files}
}

func (e *testEnv) authRouter() *gin.Engine {
	r := gin.New()
	auth := NewAuthController(e.store.Users)
	r.POST("/signup", auth.Signup)
	r.POST("/login", auth.Login)
	r.POST("/logout", auth.Logout)
	r.GET("/api/check-auth", middleware.OptionalAuth(), auth.CheckAuth)
	return r
}

func postJSON(r http.Handler, path string, body gin.H, token string) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	r := env.authRouter()

	signup := gin.H{"name": "Asha", "email": "asha@example.com", "password": "secret123"}

	t.Run("signup issues a token", func(t *testing.T) {
		w := postJSON(r, "/signup", signup, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		data := envelope(t, w)["data"].(map[string]interface{})
		assert.NotEmpty(t, data["token"])
		user := data["user"].(map[string]interface{})
		assert.Equal(t, "asha@example.com", user["email"])
		assert.NotContains(t, w.Body.String(), "password_hash")
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		w := postJSON(r, "/signup", signup, "")
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		w := postJSON(r, "/login", gin.H{"email": "asha@example.com", "password": "wrong"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email gets the same rejection", func(t *testing.T) {
		w := postJSON(r, "/login", gin.H{"email": "nobody@example.com", "password": "secret123"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("login then check-auth", func(t *testing.T) {
		w := postJSON(r, "/login", gin.H{"email": "asha@example.com", "password": "secret123"}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		token := envelope(t, w)["data"].(map[string]interface{})["token"].(string)

		req := httptest.NewRequest(http.MethodGet, "/api/check-auth", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		cw := httptest.NewRecorder()
		r.ServeHTTP(cw, req)
		require.Equal(t, http.StatusOK, cw.Code)

		data := envelope(t, cw)["data"].(map[string]interface{})
		assert.Equal(t, true, data["logged_in"])
	})

	t.Run("logout accepts the bearer token and clears the cookie", func(t *testing.T) {
		w := postJSON(r, "/login", gin.H{"email": "asha@example.com", "password": "secret123"}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		token := envelope(t, w)["data"].(map[string]interface{})["token"].(string)

		lw := postJSON(r, "/logout", gin.H{}, token)
		require.Equal(t, http.StatusOK, lw.Code, lw.Body.String())

		cleared := false
		for _, c := range lw.Result().Cookies() {
			if c.Name == middleware.TokenCookieName && c.Value == "" && c.MaxAge < 0 {
				cleared = true
			}
		}
		assert.True(t, cleared)
	})

	t.Run("check-auth without a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/check-auth", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		data := envelope(t, w)["data"].(map[string]interface{})
		assert.Equal(t, false, data["logged_in"])
	})
}
