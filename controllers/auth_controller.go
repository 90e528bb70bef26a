package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/services"
	"github.com/cppla/yatube/utils"
)

// AuthController handles local registration and bearer token sessions.
type AuthController struct {
	users     *services.UserService
	tokens    *utils.TokenManager
	blacklist *utils.TokenBlacklist
	isAdmin   func(username string) bool
}

// NewAuthController creates an AuthController.
func NewAuthController(users *services.UserService, tokens *utils.TokenManager, blacklist *utils.TokenBlacklist, isAdmin func(string) bool) *AuthController {
	return &AuthController{users: users, tokens: tokens, blacklist: blacklist, isAdmin: isAdmin}
}

// Register creates an account and signs the user in.
func (a *AuthController) Register(ctx *gin.Context) {
	var form services.RegisterForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	user, err := a.users.Register(ctx.Request.Context(), form)
	if err != nil {
		respondServiceError(ctx, err, 40410, 50002, "failed to create user")
		return
	}

	token, expiresAt, err := a.tokens.Generate(user.ID, user.Username)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       a.userResponse(*user),
	})
}

// Login verifies user credentials and issues a JWT. A local next query value
// is echoed back as redirect.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	user, err := a.users.Authenticate(ctx.Request.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrBadCredentials) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}
	if err != nil {
		respondServiceError(ctx, err, 40410, 50004, "failed to authenticate")
		return
	}

	token, expiresAt, err := a.tokens.Generate(user.ID, user.Username)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	resp := gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       a.userResponse(*user),
	}
	if next := safeNext(ctx.Query("next")); next != "" {
		resp["redirect"] = next
	}
	utils.Success(ctx, resp)
}

// Logout revokes the current token until it would have expired.
func (a *AuthController) Logout(ctx *gin.Context) {
	claims, ok := middleware.CurrentClaims(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	if claims.ExpiresAt != nil {
		a.blacklist.Revoke(ctx.Request.Context(), claims.ID, claims.ExpiresAt.Time)
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the current user.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := a.users.ByID(ctx.Request.Context(), userID)
	if err != nil {
		respondServiceError(ctx, err, 40411, 50005, "failed to load user")
		return
	}
	utils.Success(ctx, gin.H{"user": a.userResponse(*user)})
}

func (a *AuthController) userResponse(user models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"created_at": user.CreatedAt,
		"is_admin":   a.isAdmin(user.Username),
	}
}
