package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/utils"
)

const (
	// ContextUserIDKey is the key used to store authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey stores the username inside Gin context.
	ContextUsernameKey = "username"
	// ContextClaimsKey stores the parsed token claims.
	ContextClaimsKey = "claims"

	// LoginPath is where unauthenticated clients are sent.
	LoginPath = "/api/v1/auth/login"
)

var (
	errNoHeader      = errors.New("authorization header missing")
	errBadHeader     = errors.New("invalid authorization header format")
	errEmptyToken    = errors.New("empty bearer token")
	errTokenRevoked  = errors.New("token revoked")
	errTokenRejected = errors.New("invalid token")
)

// LoginURL returns the login endpoint carrying next as the return location.
func LoginURL(next string) string {
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// AuthRequired rejects requests without a valid bearer token. The 401 body
// carries login_url so the client can come back to the original request.
func AuthRequired(tokens *utils.TokenManager, blacklist *utils.TokenBlacklist) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := authenticate(ctx, tokens, blacklist)
		if err != nil {
			utils.ErrorWithData(ctx, http.StatusUnauthorized, unauthorizedCode(err), err.Error(), gin.H{
				"login_url": LoginURL(ctx.Request.URL.RequestURI()),
			})
			ctx.Abort()
			return
		}
		setIdentity(ctx, claims)
		ctx.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(tokens *utils.TokenManager, blacklist *utils.TokenBlacklist) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if claims, err := authenticate(ctx, tokens, blacklist); err == nil {
			setIdentity(ctx, claims)
		}
		ctx.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired(isAdmin func(username string) bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, _ := CurrentUsername(ctx)
		if !isAdmin(username) {
			utils.Error(ctx, http.StatusForbidden, 40300, "admin privileges required")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CurrentUsername returns the authenticated username, if any.
func CurrentUsername(ctx *gin.Context) (string, bool) {
	name := ctx.GetString(ContextUsernameKey)
	return name, name != ""
}

// CurrentClaims returns the token claims of the request.
func CurrentClaims(ctx *gin.Context) (*utils.Claims, bool) {
	v, ok := ctx.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	c, ok := v.(*utils.Claims)
	return c, ok
}

func authenticate(ctx *gin.Context, tokens *utils.TokenManager, blacklist *utils.TokenBlacklist) (*utils.Claims, error) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errNoHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errBadHeader
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, errEmptyToken
	}

	claims, err := tokens.Parse(tokenString)
	if err != nil {
		return nil, errTokenRejected
	}
	if blacklist != nil && blacklist.IsRevoked(ctx.Request.Context(), claims.ID) {
		return nil, errTokenRevoked
	}
	return claims, nil
}

func setIdentity(ctx *gin.Context, claims *utils.Claims) {
	ctx.Set(ContextUserIDKey, claims.UserID)
	ctx.Set(ContextUsernameKey, claims.Username)
	ctx.Set(ContextClaimsKey, claims)
}

func unauthorizedCode(err error) int {
	switch err {
	case errNoHeader:
		return 40101
	case errBadHeader:
		return 40102
	case errEmptyToken:
		return 40103
	case errTokenRevoked:
		return 40104
	default:
		return 40105
	}
}
