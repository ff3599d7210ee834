package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devaforgestudios-afk/takneek/utils"
)

const (
	// ContextEmailKey is the key used to store the authenticated user's email in Gin context.
	ContextEmailKey = "user_email"
	// ContextNameKey stores the display name inside Gin context.
	ContextNameKey = "user_name"
	// TokenCookieName is the cookie the frontend session rides on.
	TokenCookieName = "token"
)

// AuthRequired ensures the request is authenticated via JWT, accepted either
// as a Bearer header or as the session cookie the browser frontend uses.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ExtractToken(ctx)
		if token == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "please login first")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(token) {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "token revoked")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextEmailKey, claims.Email)
		ctx.Set(ContextNameKey, claims.Name)
		ctx.Next()
	}
}

// OptionalAuth populates the user context when a valid token is present but
// never rejects the request. Used by check-auth style endpoints.
func OptionalAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := ExtractToken(ctx); token != "" && !utils.IsTokenBlacklisted(token) {
			if claims, err := utils.ParseToken(token); err == nil {
				ctx.Set(ContextEmailKey, claims.Email)
				ctx.Set(ContextNameKey, claims.Name)
			}
		}
		ctx.Next()
	}
}

// CurrentUser returns the authenticated email, if any.
func CurrentUser(ctx *gin.Context) (string, bool) {
	email, ok := ctx.Get(ContextEmailKey)
	if !ok {
		return "", false
	}
	s, ok := email.(string)
	return s, ok && s != ""
}

// ExtractToken returns the raw JWT carried on the request, from the Bearer
// header or the session cookie, without validating it.
func ExtractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := ctx.Cookie(TokenCookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}
