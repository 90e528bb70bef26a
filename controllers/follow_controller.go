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

// FollowController handles subscriptions and the personal feed.
type FollowController struct {
	users *services.UserService
	graph *services.FollowGraph
	feed  *services.Feed
}

// NewFollowController creates a FollowController.
func NewFollowController(users *services.UserService, graph *services.FollowGraph, feed *services.Feed) *FollowController {
	return &FollowController{users: users, graph: graph, feed: feed}
}

// Follow subscribes the current user to :username. Following twice succeeds.
func (f *FollowController) Follow(ctx *gin.Context) {
	followerID, _ := middleware.CurrentUserID(ctx)
	author, err := f.users.ByUsername(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		respondServiceError(ctx, err, 40411, 50080, "failed to get user")
		return
	}

	err = f.graph.Follow(ctx.Request.Context(), followerID, author.ID)
	if err != nil && !errors.Is(err, services.ErrAlreadyExists) {
		respondServiceError(ctx, err, 40411, 50081, "failed to follow")
		return
	}
	utils.Success(ctx, gin.H{"following": true, "redirect": profilePath(author.Username)})
}

// Unfollow removes the subscription if it exists.
func (f *FollowController) Unfollow(ctx *gin.Context) {
	followerID, _ := middleware.CurrentUserID(ctx)
	author, err := f.users.ByUsername(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		respondServiceError(ctx, err, 40411, 50082, "failed to get user")
		return
	}
	if err := f.graph.Unfollow(ctx.Request.Context(), followerID, author.ID); err != nil {
		respondServiceError(ctx, err, 40411, 50083, "failed to unfollow")
		return
	}
	utils.Success(ctx, gin.H{"following": false, "redirect": profilePath(author.Username)})
}

// Feed lists posts of followed authors, newest first.
func (f *FollowController) Feed(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	page, err := utils.Paginate[models.Post](f.feed.Query(ctx.Request.Context(), userID), ctx.Query("page"), utils.PostsPerPage, services.PostPreloads...)
	if err != nil {
		respondServiceError(ctx, err, 40400, 50084, "failed to load feed")
		return
	}
	utils.Success(ctx, page)
}
