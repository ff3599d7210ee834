package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) contactRouter() *gin.Engine {
	r := gin.New()
	contact := NewContactController(e.store.Contacts, nil, inlineRunner{})
	r.POST("/api/contact", contact.Submit)
	return r
}

func TestContactSubmit(t *testing.T) {
	env := newTestEnv(t)
	r := env.contactRouter()

	valid := gin.H{
		"name":    "Asha",
		"email":   "asha@example.com",
		"subject": "Commission inquiry",
		"message": "Do you take custom orders?",
	}

	t.Run("missing fields are rejected", func(t *testing.T) {
		w := postJSON(r, "/api/contact", gin.H{"name": "Asha"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("fails closed without a moderation client", func(t *testing.T) {
		// Same stance as feedback: when moderation cannot run, nothing is
		// accepted or stored.
		w := postJSON(r, "/api/contact", valid, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		count, err := env.store.Contacts.Count()
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
