package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/services"
	"github.com/cppla/yatube/utils"
)

// IndexCacheKey holds the public listing. It is shared by every page and
// every visitor and is never invalidated by writes.
const IndexCacheKey = "cache:posts:index"

// PostController serves post listings, post detail, writes and comments.
type PostController struct {
	posts    *services.PostService
	users    *services.UserService
	graph    *services.FollowGraph
	cache    utils.Cache
	cacheTTL time.Duration
}

// NewPostController creates a new PostController instance.
func NewPostController(posts *services.PostService, users *services.UserService, graph *services.FollowGraph, cache utils.Cache, cacheTTL time.Duration) *PostController {
	return &PostController{posts: posts, users: users, graph: graph, cache: cache, cacheTTL: cacheTTL}
}

// ListPosts returns the public listing, served from cache while the entry lives.
func (p *PostController) ListPosts(ctx *gin.Context) {
	if b, ok := p.cache.Get(ctx.Request.Context(), IndexCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	page, err := utils.Paginate[models.Post](p.posts.All(ctx.Request.Context()), ctx.Query("page"), utils.PostsPerPage, services.PostPreloads...)
	if err != nil {
		respondServiceError(ctx, err, 40400, 50022, "failed to list posts")
		return
	}

	b, err := utils.CacheSetJSON(ctx.Request.Context(), p.cache, IndexCacheKey, utils.SuccessEnvelope(page), p.cacheTTL)
	if err != nil {
		utils.Success(ctx, page)
		return
	}
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
}

// ClearCache drops the public listing entry.
func (p *PostController) ClearCache(ctx *gin.Context) {
	if err := p.cache.Clear(ctx.Request.Context()); err != nil {
		respondServiceError(ctx, err, 40400, 50070, "failed to clear cache")
		return
	}
	utils.Success(ctx, gin.H{"cleared": true})
}

// GetPost returns a single post with its comments oldest first, plus an
// HTML-safe rendering of the text.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	post, err := p.posts.Get(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err, 40401, 50023, "failed to load post")
		return
	}
	utils.Success(ctx, gin.H{"post": post, "text_html": utils.Sanitize(post.Text)})
}

// CreatePost publishes a post and points the client to the author's profile.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var form services.PostForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)
	username, _ := middleware.CurrentUsername(ctx)

	post, err := p.posts.Create(ctx.Request.Context(), userID, form)
	if err != nil {
		respondServiceError(ctx, err, 40402, 50020, "failed to create post")
		return
	}
	utils.Success(ctx, gin.H{"post": post, "redirect": profilePath(username)})
}

// UpdatePost edits text, group and image. Only the author may edit.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	var form services.PostForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	post, err := p.posts.Update(ctx.Request.Context(), id, userID, form)
	if err != nil {
		respondServiceError(ctx, err, 40401, 50024, "failed to update post")
		return
	}
	utils.Success(ctx, gin.H{"post": post, "redirect": postPath(post.ID)})
}

// CreateComment adds a comment and points the client back to the post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	var form services.CommentForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	comment, err := p.posts.AddComment(ctx.Request.Context(), id, userID, form)
	if err != nil {
		respondServiceError(ctx, err, 40401, 50030, "failed to create comment")
		return
	}
	utils.Success(ctx, gin.H{"comment": comment, "redirect": postPath(id)})
}

// Profile lists an author's posts with follow counters. Signed in visitors
// also get whether they follow the author.
func (p *PostController) Profile(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	author, err := p.users.ByUsername(reqCtx, ctx.Param("username"))
	if err != nil {
		respondServiceError(ctx, err, 40411, 50051, "failed to get user")
		return
	}

	page, err := utils.Paginate[models.Post](p.posts.ByAuthor(reqCtx, author.ID), ctx.Query("page"), utils.PostsPerPage, services.PostPreloads...)
	if err != nil {
		respondServiceError(ctx, err, 40411, 50052, "failed to list posts")
		return
	}
	counts, err := p.graph.Counts(reqCtx, author.ID)
	if err != nil {
		respondServiceError(ctx, err, 40411, 50053, "failed to count follows")
		return
	}

	following := false
	if viewerID, ok := middleware.CurrentUserID(ctx); ok && viewerID != author.ID {
		if following, err = p.graph.IsFollowing(reqCtx, viewerID, author.ID); err != nil {
			respondServiceError(ctx, err, 40411, 50054, "failed to check follow")
			return
		}
	}

	utils.Success(ctx, gin.H{
		"author":     gin.H{"id": author.ID, "username": author.Username},
		"counts":     counts,
		"following":  following,
		"items":      page.Items,
		"pagination": page.Pagination,
	})
}
