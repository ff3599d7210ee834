package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devaforgestudios-afk/takneek/ai"
	"github.com/devaforgestudios-afk/takneek/config"
	"github.com/devaforgestudios-afk/takneek/store"
	"github.com/devaforgestudios-afk/takneek/utils"
)

// ContactController takes contact-form submissions, screens them, and
// notifies the site operator by mail.
type ContactController struct {
	contacts *store.ContactStore
	brain    *ai.Client
	runner   store.TaskRunner
}

// NewContactController creates a new ContactController instance.
func NewContactController(contacts *store.ContactStore, brain *ai.Client, runner store.TaskRunner) *ContactController {
	return &ContactController{contacts: contacts, brain: brain, runner: runner}
}

// Submit stores a screened contact message. Messages the model flags as spam
// or abuse are rejected; the notification mail is best effort.
func (c *ContactController) Submit(ctx *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "name, email, subject and message are required")
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	subject := utils.Sanitize(strings.TrimSpace(req.Subject))
	message := utils.Sanitize(strings.TrimSpace(req.Message))

	// Fail closed: an unconfigured moderation client rejects rather than
	// letting unscreened messages through.
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 15*time.Second)
	defer cancel()
	if c.brain.ModerateContact(cctx, name, subject, message) != ai.VerdictGood {
		utils.Error(ctx, http.StatusBadRequest, 40011, "message rejected by moderation")
		return
	}

	contact, err := c.contacts.Create(name, req.Email, subject, message)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if notify := config.Get().ContactNotifyEmail; notify != "" {
		body := fmt.Sprintf("From: %s <%s>\r\n\r\n%s", name, req.Email, message)
		if !c.runner.Submit(func() {
			if err := utils.SendMail(notify, "[contact] "+subject, body); err != nil {
				utils.Sugar.Warnw("contact notification mail failed", "contact", contact.ID, "error", err)
			}
		}) {
			utils.Sugar.Warnw("task queue full, skipping contact notification", "contact", contact.ID)
		}
	}

	utils.Success(ctx, gin.H{"message": "Thank you for reaching out. We'll get back to you soon."})
}
