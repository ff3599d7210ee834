package controllers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devaforgestudios-afk/takneek/apperrors"
	"github.com/devaforgestudios-afk/takneek/utils"
)

// allowedExtensions are the media types accepted for artwork and community uploads.
var allowedExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".mp4": true, ".mov": true, ".avi": true, ".pdf": true,
}

func isAllowedFile(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// respondError maps an application error onto the response envelope.
// Validation, not-found, forbidden, and conflict messages are safe to show;
// storage and upstream causes are logged and surfaced generically.
func respondError(ctx *gin.Context, err error) {
	var ae *apperrors.Error
	if errors.As(err, &ae) {
		if ae.Public() {
			utils.Error(ctx, ae.HTTPCode, envelopeCode(ae.HTTPCode), ae.Message)
			return
		}
		if utils.Sugar != nil {
			utils.Sugar.Errorf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, ae)
		}
		utils.Error(ctx, ae.HTTPCode, envelopeCode(ae.HTTPCode), "an error occurred, please try again")
		return
	}

	if utils.Sugar != nil {
		utils.Sugar.Errorf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	}
	utils.Error(ctx, http.StatusInternalServerError, 50000, "an error occurred, please try again")
}

func envelopeCode(httpStatus int) int {
	return httpStatus * 100
}
