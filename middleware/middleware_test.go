package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/yatube/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestIPRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(4)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"), "burst is half the per minute limit")
	assert.True(t, l.Allow("2.2.2.2"), "buckets are per key")

	now = now.Add(15 * time.Second)
	assert.True(t, l.Allow("1.1.1.1"))

	now = now.Add(limiterIdle + time.Second)
	l.Allow("3.3.3.3")
	assert.Len(t, l.limiters, 1, "idle buckets are dropped")
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/api/v1/auth/login?next=%2Fapi%2Fv1%2Fposts%2F1%2Fcomments", LoginURL("/api/v1/posts/1/comments"))
}

func newAuthEngine(tokens *utils.TokenManager, blacklist *utils.TokenBlacklist) *gin.Engine {
	r := gin.New()
	r.GET("/private", AuthRequired(tokens, blacklist), func(ctx *gin.Context) {
		id, _ := CurrentUserID(ctx)
		name, _ := CurrentUsername(ctx)
		ctx.JSON(http.StatusOK, gin.H{"id": id, "name": name})
	})
	r.GET("/public", OptionalAuth(tokens, blacklist), func(ctx *gin.Context) {
		_, ok := CurrentUserID(ctx)
		ctx.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})
	r.GET("/admin", AuthRequired(tokens, blacklist), AdminRequired(func(u string) bool { return u == "root" }), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	blacklist := utils.NewTokenBlacklist(utils.NewMemoryCache())
	r := newAuthEngine(tokens, blacklist)

	w := do(r, "/private?x=1", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"login_url":"/api/v1/auth/login?next=%2Fprivate%3Fx%3D1"`)

	w = do(r, "/private", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, exp, err := tokens.Generate(3, "leo")
	require.NoError(t, err)
	w = do(r, "/private", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"name":"leo"}`, w.Body.String())

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	blacklist.Revoke(context.Background(), claims.ID, exp)
	w = do(r, "/private", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthAndAdmin(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	r := newAuthEngine(tokens, nil)

	w := do(r, "/public", "")
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	token, _, err := tokens.Generate(1, "leo")
	require.NoError(t, err)
	w = do(r, "/public", token)
	assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())

	w = do(r, "/admin", token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	root, _, err := tokens.Generate(2, "root")
	require.NoError(t, err)
	w = do(r, "/admin", root)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
