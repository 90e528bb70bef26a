package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/yatube/services"
	"github.com/cppla/yatube/utils"
)

// respondServiceError maps service errors onto the response envelope.
// failCode is used for unexpected failures, which are also logged.
func respondServiceError(ctx *gin.Context, err error, notFoundCode, failCode int, failMsg string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ErrorWithData(ctx, http.StatusBadRequest, 40000, "validation failed", gin.H{"errors": verr.Fields})
	case errors.Is(err, services.ErrPermissionDenied):
		utils.Error(ctx, http.StatusForbidden, 40301, "permission denied")
	case errors.Is(err, services.ErrInvalidOperation):
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid operation")
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, notFoundCode, "not found")
	default:
		utils.Logger.Error(failMsg,
			zap.Error(err),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path))
		utils.Error(ctx, http.StatusInternalServerError, failCode, failMsg)
	}
}

// parseID reads a positive numeric path parameter.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(ctx.Param(name)), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// safeNext accepts only local absolute paths as a post-login destination.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return ""
	}
	return next
}

func profilePath(username string) string {
	return "/api/v1/profile/" + username
}

func postPath(id uint) string {
	return "/api/v1/posts/" + strconv.FormatUint(uint64(id), 10)
}
