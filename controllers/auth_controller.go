package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devaforgestudios-afk/takneek/middleware"
	"github.com/devaforgestudios-afk/takneek/store"
	"github.com/devaforgestudios-afk/takneek/utils"
)

const tokenLifetime = 72 * time.Hour

// AuthController handles signup, login, logout, and the auth probe the
// frontend polls before showing the studio.
type AuthController struct {
	users *store.UserStore
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(users *store.UserStore) *AuthController {
	return &AuthController{users: users}
}

// Signup registers an account and logs the user in immediately.
func (a *AuthController) Signup(ctx *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to hash password")
		return
	}

	user, err := a.users.Create(strings.TrimSpace(req.Name), req.Email, hash)
	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := utils.GenerateToken(user.Email, user.Name, tokenLifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}

	setSessionCookie(ctx, token)
	utils.Success(ctx, gin.H{"user": user, "token": token, "message": "Account created successfully"})
}

// Login authenticates by email and password.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	user, err := a.users.GetByEmail(req.Email)
	if err != nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		// One message for both cases so the endpoint doesn't leak which emails exist
		utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.Email, user.Name, tokenLifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}

	setSessionCookie(ctx, token)
	utils.Success(ctx, gin.H{"user": user, "token": token, "message": "Login successful"})
}

// Logout revokes the current token and clears the session cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	token := middleware.ExtractToken(ctx)
	if token != "" {
		if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
			utils.BlacklistToken(token, claims.ExpiresAt.Time)
		}
	}
	ctx.SetCookie(middleware.TokenCookieName, "", -1, "/", "", false, true)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// CheckAuth reports whether the request carries a valid session and returns
// the account when it does.
func (a *AuthController) CheckAuth(ctx *gin.Context) {
	email, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Success(ctx, gin.H{"logged_in": false})
		return
	}
	user, err := a.users.GetByEmail(email)
	if err != nil {
		utils.Success(ctx, gin.H{"logged_in": false})
		return
	}
	utils.Success(ctx, gin.H{"logged_in": true, "user": user})
}

func setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetCookie(middleware.TokenCookieName, token, int(tokenLifetime.Seconds()), "/", "", false, true)
}
