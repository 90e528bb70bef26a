package routes

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/controllers"
	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/services"
	"github.com/cppla/yatube/utils"
)

// Deps are the collaborators the router hands to controllers.
type Deps struct {
	Config config.AppConfig
	DB     *gorm.DB
	// PageCache holds the public listing
	PageCache utils.Cache
	// TokenCache holds revoked token ids
	TokenCache utils.Cache
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(d Deps) *gin.Engine {
	cfg := d.Config
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log and panic recovery go to their own rolling file
	if gl, err := ginLogger(cfg); err == nil {
		r.Use(ginzap.Ginzap(gl, time.RFC3339, true))
		r.Use(ginzap.RecoveryWithZap(gl, true))
	} else {
		// fallback to default recovery if logger failed to init
		utils.Sugar.Warnf("gin access log disabled: %v", err)
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL())
	blacklist := utils.NewTokenBlacklist(d.TokenCache)
	authRequired := middleware.AuthRequired(tokens, blacklist)
	optionalAuth := middleware.OptionalAuth(tokens, blacklist)
	adminRequired := middleware.AdminRequired(cfg.IsAdmin)
	writeLimit := middleware.NewIPRateLimiter(cfg.RateLimitPerMinute).Middleware()
	authLimit := middleware.NewIPRateLimiter(cfg.RateLimitPerMinute).Middleware()

	users := services.NewUserService(d.DB)
	posts := services.NewPostService(d.DB)
	groups := services.NewGroupService(d.DB)
	graph := services.NewFollowGraph(d.DB)
	feed := services.NewFeed(d.DB, graph)

	authController := controllers.NewAuthController(users, tokens, blacklist, cfg.IsAdmin)
	postController := controllers.NewPostController(posts, users, graph, d.PageCache, cfg.IndexCacheTTL())
	groupController := controllers.NewGroupController(groups, posts)
	followController := controllers.NewFollowController(users, graph, feed)
	statsController := controllers.NewStatsController(d.DB)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(authLimit)
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", authRequired, authController.Logout)
	authGroup.GET("/me", authRequired, authController.Me)

	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:id", postController.GetPost)
	api.GET("/groups", groupController.ListGroups)
	api.GET("/groups/:slug", groupController.GroupPosts)
	api.GET("/profile/:username", optionalAuth, postController.Profile)
	api.GET("/stats", statsController.GetStats)

	protected := api.Group("")
	protected.Use(authRequired)
	protected.GET("/follow", followController.Feed)

	writes := protected.Group("")
	writes.Use(writeLimit)
	writes.POST("/posts", postController.CreatePost)
	writes.PUT("/posts/:id", postController.UpdatePost)
	writes.POST("/posts/:id/comments", postController.CreateComment)
	writes.POST("/profile/:username/follow", followController.Follow)
	writes.POST("/profile/:username/unfollow", followController.Unfollow)

	admin := protected.Group("")
	admin.Use(adminRequired)
	admin.POST("/groups", groupController.CreateGroup)
	admin.DELETE("/cache", postController.ClearCache)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
	})

	return r
}

func ginLogger(cfg config.AppConfig) (*zap.Logger, error) {
	if cfg.GinPath == "" {
		return nil, errors.New("GinPath not configured")
	}
	return utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg)
}
