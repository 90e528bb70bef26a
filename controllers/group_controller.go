package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/services"
	"github.com/cppla/yatube/utils"
)

// GroupController exposes groups and their post listings.
type GroupController struct {
	groups *services.GroupService
	posts  *services.PostService
}

// NewGroupController creates a GroupController.
func NewGroupController(groups *services.GroupService, posts *services.PostService) *GroupController {
	return &GroupController{groups: groups, posts: posts}
}

// ListGroups returns every group.
func (g *GroupController) ListGroups(ctx *gin.Context) {
	groups, err := g.groups.List(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err, 40420, 50060, "failed to list groups")
		return
	}
	utils.Success(ctx, gin.H{"items": groups})
}

// CreateGroup is restricted to admins by the router.
func (g *GroupController) CreateGroup(ctx *gin.Context) {
	var form services.GroupForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}
	group, err := g.groups.Create(ctx.Request.Context(), form)
	if err != nil {
		respondServiceError(ctx, err, 40420, 50061, "failed to create group")
		return
	}
	utils.Success(ctx, gin.H{"group": group})
}

// GroupPosts lists the posts of one group, newest first.
func (g *GroupController) GroupPosts(ctx *gin.Context) {
	group, query, err := g.posts.ByGroup(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		respondServiceError(ctx, err, 40420, 50062, "failed to load group")
		return
	}
	page, err := utils.Paginate[models.Post](query, ctx.Query("page"), utils.PostsPerPage, services.PostPreloads...)
	if err != nil {
		respondServiceError(ctx, err, 40420, 50063, "failed to list posts")
		return
	}
	utils.Success(ctx, gin.H{
		"group":      group,
		"items":      page.Items,
		"pagination": page.Pagination,
	})
}
