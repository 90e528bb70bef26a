package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/yatube/services"
	"github.com/cppla/yatube/utils"
)

// StatsController provides site counters.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics for the site.
func (s *StatsController) GetStats(ctx *gin.Context) {
	st, err := services.CountAll(ctx.Request.Context(), s.db)
	if err != nil {
		respondServiceError(ctx, err, 40400, 50090, "failed to count")
		return
	}
	utils.Success(ctx, st)
}
